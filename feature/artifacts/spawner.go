package artifacts

import (
	"context"
	"errors"
	"fmt"

	"artifact-host/core/mre"
	"artifact-host/feature/contentpack"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoResource is returned when an artifact has neither a loaded prefab nor a library resource.
var ErrNoResource = errors.New("artifact has no prefab or library resource")

// staticBody is the physics body of artifacts with rigidBody set: massless,
// unaffected by gravity, but colliding.
var staticBody = mre.RigidBody{Mass: 0, UseGravity: false, DetectCollisions: true}

// Spawned pairs an artifact key with its live actor.
type Spawned struct {
	Key   string
	Actor mre.Actor
}

// Spawner creates actors for content-pack artifacts.
type Spawner struct {
	factory mre.ActorFactory
	prefabs *PrefabCache
	logger  *zap.Logger
}

// NewSpawner creates a spawner reading prefabs from cache.
func NewSpawner(factory mre.ActorFactory, prefabs *PrefabCache, logger *zap.Logger) *Spawner {
	return &Spawner{factory: factory, prefabs: prefabs, logger: logger}
}

// SpawnAll places every library-resource artifact of db in the shared space.
// Artifacts without a resource id are skipped. Creation runs concurrently and a
// failed artifact is logged without affecting the others. Results are in key order.
func (s *Spawner) SpawnAll(ctx context.Context, db contentpack.Database) []Spawned {
	keys := make([]string, 0, len(db))
	for _, key := range db.Keys() {
		if db[key].ResourceID != "" {
			keys = append(keys, key)
		}
	}

	actors := make([]mre.Actor, len(keys))
	var g errgroup.Group
	for i, key := range keys {
		d := db[key]
		g.Go(func() error {
			actor, err := s.create(ctx, key, d, "", ResolveTransform(d), nil)
			if err != nil {
				s.logger.Warn("Failed to spawn artifact", zap.String("artifact", key), zap.Error(err))
				return nil
			}
			actors[i] = actor
			return nil
		})
	}
	_ = g.Wait()

	spawned := make([]Spawned, 0, len(keys))
	for i, actor := range actors {
		if actor != nil {
			spawned = append(spawned, Spawned{Key: keys[i], Actor: actor})
		}
	}
	s.logger.Info("Spawned artifacts", zap.Int("spawned", len(spawned)), zap.Int("candidates", len(keys)))
	return spawned
}

// SpawnAttached creates an artifact attached to a user, preferring its preloaded
// prefab over the library resource.
func (s *Spawner) SpawnAttached(ctx context.Context, key string, d contentpack.Descriptor, attachment mre.Attachment) (mre.Actor, error) {
	prefabID := ""
	if asset, ok := s.prefabs.Get(key); ok {
		prefabID = asset.ID
	}
	return s.create(ctx, key, d, prefabID, ResolveWornTransform(d), &attachment)
}

func (s *Spawner) create(ctx context.Context, key string, d contentpack.Descriptor, prefabID string, t mre.Transform, attachment *mre.Attachment) (mre.Actor, error) {
	name := d.DisplayName
	if name == "" {
		name = key
	}
	spec := mre.ActorSpec{
		Name:       name,
		Transform:  t,
		Attachment: attachment,
	}

	var (
		actor mre.Actor
		err   error
	)
	switch {
	case prefabID != "":
		actor, err = s.factory.CreateFromPrefab(ctx, prefabID, spec)
	case d.ResourceID != "":
		actor, err = s.factory.CreateFromLibrary(ctx, d.ResourceID, spec)
	default:
		return nil, fmt.Errorf("artifact %s: %w", key, ErrNoResource)
	}
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", key, err)
	}

	s.configure(key, actor, d)
	return actor, nil
}

// configure applies grab and physics flags once the actor exists.
func (s *Spawner) configure(key string, actor mre.Actor, d contentpack.Descriptor) {
	if d.Grabbable {
		if err := actor.SetGrabbable(true); err != nil {
			s.logger.Warn("Failed to make artifact grabbable", zap.String("artifact", key), zap.Error(err))
		}
	}
	if d.RigidBody {
		if err := actor.EnableRigidBody(staticBody); err != nil {
			s.logger.Warn("Failed to enable artifact rigid body", zap.String("artifact", key), zap.Error(err))
		}
	}
}
