package memory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"artifact-host/core/mre"

	"go.uber.org/zap"
)

// ErrAssetNotFound is returned when creating from a prefab that was never loaded.
var ErrAssetNotFound = errors.New("asset not found")

// Publisher receives session events after each state change.
type Publisher interface {
	Publish(evt mre.Event)
}

// Runtime is an in-process implementation of mre.Runtime.
// It keeps the actor graph in memory and fans state changes out to a Publisher.
type Runtime struct {
	mu         sync.Mutex
	models     ModelSource
	logger     *zap.Logger
	publisher  Publisher
	users      map[mre.UserID]mre.User
	actors     map[mre.ActorID]*actor
	containers map[string][]mre.Asset
	prefabs    map[string]struct{}
	nextSeq    uint64
	joined     []func(mre.User)
	left       []func(mre.User)
}

// New creates an empty runtime loading models from the given source.
func New(models ModelSource, logger *zap.Logger) *Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runtime{
		models:     models,
		logger:     logger,
		users:      make(map[mre.UserID]mre.User),
		actors:     make(map[mre.ActorID]*actor),
		containers: make(map[string][]mre.Asset),
		prefabs:    make(map[string]struct{}),
	}
}

// SetPublisher installs the event sink. Events are dropped while none is set.
func (r *Runtime) SetPublisher(p Publisher) {
	r.mu.Lock()
	r.publisher = p
	r.mu.Unlock()
}

// OnUserJoined implements mre.Runtime.
func (r *Runtime) OnUserJoined(handler func(mre.User)) {
	r.mu.Lock()
	r.joined = append(r.joined, handler)
	r.mu.Unlock()
}

// OnUserLeft implements mre.Runtime.
func (r *Runtime) OnUserLeft(handler func(mre.User)) {
	r.mu.Lock()
	r.left = append(r.left, handler)
	r.mu.Unlock()
}

// LoadAssets implements mre.AssetLoader. Containers are cached by resource name.
func (r *Runtime) LoadAssets(ctx context.Context, resourceName string) ([]mre.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	cached, ok := r.containers[resourceName]
	r.mu.Unlock()
	if ok {
		return append([]mre.Asset(nil), cached...), nil
	}

	if r.models == nil {
		return nil, fmt.Errorf("load %s: no model source configured", resourceName)
	}
	rc, err := r.models.Open(ctx, resourceName)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", resourceName, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", resourceName, err)
	}

	assets, err := decodeContainer(resourceName, data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", resourceName, err)
	}

	r.mu.Lock()
	r.containers[resourceName] = assets
	for _, a := range assets {
		if a.Kind == mre.AssetPrefab {
			r.prefabs[a.ID] = struct{}{}
		}
	}
	r.mu.Unlock()

	r.logger.Debug("Loaded model", zap.String("resource", resourceName), zap.Int("bytes", len(data)))
	return append([]mre.Asset(nil), assets...), nil
}

// UnloadAssets implements mre.Runtime.
func (r *Runtime) UnloadAssets() error {
	r.mu.Lock()
	n := len(r.containers)
	r.containers = make(map[string][]mre.Asset)
	r.prefabs = make(map[string]struct{})
	r.mu.Unlock()

	r.logger.Debug("Unloaded assets", zap.Int("containers", n))
	return nil
}

// CreateFromPrefab implements mre.ActorFactory.
func (r *Runtime) CreateFromPrefab(ctx context.Context, prefabID string, spec mre.ActorSpec) (mre.Actor, error) {
	return r.create(ctx, prefabID, spec, func() error {
		if _, ok := r.prefabs[prefabID]; !ok {
			return fmt.Errorf("prefab %s: %w", prefabID, ErrAssetNotFound)
		}
		return nil
	})
}

// CreateFromLibrary implements mre.ActorFactory.
func (r *Runtime) CreateFromLibrary(ctx context.Context, resourceID string, spec mre.ActorSpec) (mre.Actor, error) {
	return r.create(ctx, resourceID, spec, func() error {
		if resourceID == "" {
			return errors.New("empty library resource id")
		}
		return nil
	})
}

// CreatePrimitive implements mre.ActorFactory.
func (r *Runtime) CreatePrimitive(ctx context.Context, spec mre.ActorSpec) (mre.Actor, error) {
	return r.create(ctx, "", spec, nil)
}

// create validates and registers a new actor; check runs under the lock.
func (r *Runtime) create(ctx context.Context, resource string, spec mre.ActorSpec, check func() error) (mre.Actor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	if check != nil {
		if err := check(); err != nil {
			r.mu.Unlock()
			return nil, err
		}
	}
	if spec.Attachment != nil {
		if _, ok := r.users[spec.Attachment.UserID]; !ok {
			r.mu.Unlock()
			return nil, mre.ErrUserNotFound
		}
	}

	r.nextSeq++
	a := &actor{
		rt:        r,
		seq:       r.nextSeq,
		id:        mre.ActorID(fmt.Sprintf("actor-%d", r.nextSeq)),
		name:      spec.Name,
		resource:  resource,
		transform: spec.Transform,
		hidden:    spec.Hidden,
		subscribe: spec.SubscribeTransform,
	}
	if spec.Collider != nil {
		c := *spec.Collider
		a.collider = &c
	}
	if spec.Attachment != nil {
		att := *spec.Attachment
		a.attached = &att
	}
	r.actors[a.id] = a
	evt := a.eventLocked(mre.EventActorCreated)
	r.mu.Unlock()

	r.publish(evt)
	return a, nil
}

// Join adds a user to the session and notifies user-joined handlers.
func (r *Runtime) Join(user mre.User) {
	r.mu.Lock()
	r.users[user.ID] = user
	handlers := append([]func(mre.User){}, r.joined...)
	r.mu.Unlock()

	u := user
	r.publish(mre.Event{Type: mre.EventUserJoined, User: &u})
	for _, h := range handlers {
		h(user)
	}
}

// Leave notifies user-left handlers, then removes the user and detaches
// whatever is still attached to them.
func (r *Runtime) Leave(id mre.UserID) {
	r.mu.Lock()
	user, ok := r.users[id]
	handlers := append([]func(mre.User){}, r.left...)
	r.mu.Unlock()
	if !ok {
		return
	}

	for _, h := range handlers {
		h(user)
	}

	r.mu.Lock()
	delete(r.users, id)
	var events []mre.Event
	for _, a := range r.sortedActorsLocked() {
		if a.attached != nil && a.attached.UserID == id {
			a.attached = nil
			events = append(events, a.eventLocked(mre.EventActorUpdated))
		}
	}
	r.mu.Unlock()

	for _, evt := range events {
		r.publish(evt)
	}
	r.publish(mre.Event{Type: mre.EventUserLeft, User: &user})
}

// Snapshot returns the actor states sent to a newly connected client.
// Attachment relationships are not part of the snapshot; clients learn them
// from actor-updated events only.
func (r *Runtime) Snapshot() []mre.ActorState {
	r.mu.Lock()
	defer r.mu.Unlock()

	states := make([]mre.ActorState, 0, len(r.actors))
	for _, a := range r.sortedActorsLocked() {
		states = append(states, a.stateLocked(false))
	}
	return states
}

// Actors returns the full state of every live actor, attachments included.
func (r *Runtime) Actors() []mre.ActorState {
	r.mu.Lock()
	defer r.mu.Unlock()

	states := make([]mre.ActorState, 0, len(r.actors))
	for _, a := range r.sortedActorsLocked() {
		states = append(states, a.stateLocked(true))
	}
	return states
}

// Users returns the users currently in the session, ordered by id.
func (r *Runtime) Users() []mre.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]mre.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func (r *Runtime) sortedActorsLocked() []*actor {
	list := make([]*actor, 0, len(r.actors))
	for _, a := range r.actors {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].seq < list[j].seq })
	return list
}

func (r *Runtime) publish(evt mre.Event) {
	r.mu.Lock()
	p := r.publisher
	r.mu.Unlock()
	if p != nil {
		p.Publish(evt)
	}
}
