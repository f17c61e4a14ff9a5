package contentpack

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

// Loader fetches and decodes content packs.
// Decoded packs are cached per id for the configured TTL; concurrent loads of
// the same id share one fetch.
type Loader struct {
	fetcher Fetcher
	ttl     time.Duration

	mu     sync.RWMutex
	cache  map[string]*cachedPack
	flight singleflight.Group
}

type cachedPack struct {
	db    Database
	built time.Time
}

// NewLoader creates a loader. ttl <= 0 disables caching.
func NewLoader(fetcher Fetcher, ttl time.Duration) *Loader {
	return &Loader{
		fetcher: fetcher,
		ttl:     ttl,
		cache:   make(map[string]*cachedPack),
	}
}

// Load returns the artifact database of a content pack.
// An empty id yields an empty database without any I/O.
func (l *Loader) Load(ctx context.Context, id string) (Database, error) {
	if id == "" {
		return Database{}, nil
	}

	if db, ok := l.cached(id); ok {
		return db, nil
	}

	// id becomes a map key that outlives the caller's buffer.
	id = strings.Clone(id)
	result, err, _ := l.flight.Do(id, func() (interface{}, error) {
		if db, ok := l.cached(id); ok {
			return db, nil
		}

		db, err := l.fetch(ctx, id)
		if err != nil {
			return nil, err
		}

		if l.ttl > 0 {
			l.mu.Lock()
			l.cache[id] = &cachedPack{db: db, built: time.Now()}
			l.mu.Unlock()
		}
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(Database), nil
}

// Invalidate drops a cached pack so the next Load refetches it.
func (l *Loader) Invalidate(id string) {
	l.mu.Lock()
	delete(l.cache, id)
	l.mu.Unlock()
}

func (l *Loader) cached(id string) (Database, bool) {
	if l.ttl <= 0 {
		return nil, false
	}
	l.mu.RLock()
	entry, ok := l.cache[id]
	l.mu.RUnlock()
	if !ok || time.Since(entry.built) > l.ttl {
		return nil, false
	}
	return entry.db, true
}

func (l *Loader) fetch(ctx context.Context, id string) (Database, error) {
	rc, err := l.fetcher.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("content pack %q: fetch: %w", id, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("content pack %q: read: %w", id, err)
	}

	var db Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("content pack %q: parse: %w", id, err)
	}
	if db == nil {
		db = Database{}
	}
	return db, nil
}
