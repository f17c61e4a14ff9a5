package artifacts

import (
	"context"
	"errors"
	"sort"
	"sync"

	"artifact-host/core/mre"
	"artifact-host/feature/contentpack"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// errNoPrefab marks a model container that holds no spawnable template.
var errNoPrefab = errors.New("model has no prefab")

// PreloadReport lists the outcome of a preload per artifact key.
type PreloadReport struct {
	Loaded  []string          `json:"loaded"`
	Skipped []string          `json:"skipped"`
	Failed  map[string]string `json:"failed"`
}

// Preloader loads the models of a content pack into a PrefabCache.
type Preloader struct {
	loader      mre.AssetLoader
	logger      *zap.Logger
	concurrency int
}

// NewPreloader creates a preloader. concurrency <= 0 means unbounded.
func NewPreloader(loader mre.AssetLoader, logger *zap.Logger, concurrency int) *Preloader {
	return &Preloader{loader: loader, logger: logger, concurrency: concurrency}
}

// Preload loads every descriptor's model concurrently and caches the first prefab asset.
// A failed load is logged and leaves its key uncached; it never stops the others.
func (p *Preloader) Preload(ctx context.Context, db contentpack.Database, cache *PrefabCache) PreloadReport {
	report := PreloadReport{
		Loaded:  []string{},
		Skipped: []string{},
		Failed:  map[string]string{},
	}
	var mu sync.Mutex

	var g errgroup.Group
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	}

	for _, key := range db.Keys() {
		d := db[key]
		if d.ResourceName == "" {
			report.Skipped = append(report.Skipped, key)
			continue
		}
		g.Go(func() error {
			asset, err := p.loadPrefab(ctx, d.ResourceName)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				p.logger.Warn("Failed to preload artifact model",
					zap.String("artifact", key),
					zap.String("resource", d.ResourceName),
					zap.Error(err),
				)
				report.Failed[key] = err.Error()
				return nil
			}
			cache.Set(key, asset)
			report.Loaded = append(report.Loaded, key)
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(report.Loaded)
	p.logger.Info("Preloaded artifact models",
		zap.Int("loaded", len(report.Loaded)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failed", len(report.Failed)),
	)
	return report
}

func (p *Preloader) loadPrefab(ctx context.Context, resourceName string) (mre.Asset, error) {
	assets, err := p.loader.LoadAssets(ctx, resourceName)
	if err != nil {
		return mre.Asset{}, err
	}
	for _, a := range assets {
		if a.Kind == mre.AssetPrefab {
			return a, nil
		}
	}
	return mre.Asset{}, errNoPrefab
}
