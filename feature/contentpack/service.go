package contentpack

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"artifact-host/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Integrity statuses.
const (
	StatusPass    = "PASS"
	StatusWarning = "WARNING"
	StatusFail    = "FAIL"
)

// statConcurrency bounds parallel model existence checks.
const statConcurrency = 16

// IntegrityReport summarizes whether a content pack can be fully shown.
// UnreferencedModels lists stored model files no descriptor points at and
// does not affect Status.
type IntegrityReport struct {
	PackID             string   `json:"pack_id"`
	TotalArtifacts     int      `json:"total_artifacts"`
	LibraryArtifacts   int      `json:"library_artifacts"`
	ModelArtifacts     int      `json:"model_artifacts"`
	ModelsChecked      bool     `json:"models_checked"`
	MissingModels      []string `json:"missing_models"`
	UnreferencedModels []string `json:"unreferenced_models"`
	Malformed          []string `json:"malformed"`
	Status             string   `json:"status"`
	GeneratedAt        string   `json:"generated_at"`
	ExecutionTime      string   `json:"execution_time"`
}

// Service exposes content-pack lookups and integrity checks.
type Service struct {
	loader      *Loader
	client      storage.Client
	bucket      string
	modelPrefix string
	logger      *zap.Logger
}

// NewService creates a content-pack service. client may be nil, in which case
// integrity reports skip the model existence check.
func NewService(loader *Loader, client storage.Client, bucket, modelPrefix string, logger *zap.Logger) *Service {
	return &Service{
		loader:      loader,
		client:      client,
		bucket:      bucket,
		modelPrefix: modelPrefix,
		logger:      logger,
	}
}

// GetPack returns the artifact database of a content pack.
func (s *Service) GetPack(ctx context.Context, id string) (Database, error) {
	return s.loader.Load(ctx, id)
}

// CheckIntegrity validates every descriptor and verifies that model files exist in storage.
func (s *Service) CheckIntegrity(ctx context.Context, id string) (*IntegrityReport, error) {
	start := time.Now()

	db, err := s.loader.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &IntegrityReport{
		PackID:             id,
		TotalArtifacts:     len(db),
		MissingModels:      []string{},
		UnreferencedModels: []string{},
		Malformed:          []string{},
	}

	var models []string
	for _, key := range db.Keys() {
		d := db[key]
		if d.ResourceID != "" {
			report.LibraryArtifacts++
		}
		if d.ResourceName != "" {
			report.ModelArtifacts++
			models = append(models, key)
		}
		for _, issue := range d.Validate() {
			report.Malformed = append(report.Malformed, fmt.Sprintf("%s: %s", key, issue))
		}
	}

	if s.client != nil {
		missing, err := s.missingModels(ctx, db, models)
		if err != nil {
			return nil, fmt.Errorf("model check failed: %w", err)
		}
		report.MissingModels = missing
		report.ModelsChecked = true

		unreferenced, err := s.unreferencedModels(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("model listing failed: %w", err)
		}
		report.UnreferencedModels = unreferenced
	}

	switch {
	case len(report.MissingModels) > 0:
		report.Status = StatusFail
	case len(report.Malformed) > 0:
		report.Status = StatusWarning
	default:
		report.Status = StatusPass
	}

	report.GeneratedAt = time.Now().Format(time.RFC3339)
	report.ExecutionTime = time.Since(start).String()
	return report, nil
}

func (s *Service) missingModels(ctx context.Context, db Database, keys []string) ([]string, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s not found", s.bucket)
	}

	var (
		mu      sync.Mutex
		missing = []string{}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statConcurrency)

	for _, key := range keys {
		object := s.modelPrefix + db[key].ResourceName
		g.Go(func() error {
			_, err := s.client.StatObject(gctx, s.bucket, object, minio.StatObjectOptions{})
			if err == nil {
				return nil
			}
			if !storage.IsNotFound(err) {
				return fmt.Errorf("stat %s: %w", object, err)
			}
			mu.Lock()
			missing = append(missing, key)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(missing)
	return missing, nil
}

func (s *Service) unreferencedModels(ctx context.Context, db Database) ([]string, error) {
	referenced := make(map[string]struct{}, len(db))
	for _, d := range db {
		if d.ResourceName != "" {
			referenced[s.modelPrefix+d.ResourceName] = struct{}{}
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unreferenced := []string{}
	opts := minio.ListObjectsOptions{Prefix: s.modelPrefix, Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s: %w", s.modelPrefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if _, ok := referenced[obj.Key]; !ok {
			unreferenced = append(unreferenced, strings.TrimPrefix(obj.Key, s.modelPrefix))
		}
	}

	sort.Strings(unreferenced)
	return unreferenced, nil
}
