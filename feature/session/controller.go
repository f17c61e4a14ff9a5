package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"artifact-host/core/logger"
	"artifact-host/core/mre"
	"artifact-host/feature/artifacts"
	"artifact-host/feature/attachments"
	"artifact-host/feature/contentpack"
	"artifact-host/feature/journal"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotStarted is returned by operations that need a started session.
	ErrNotStarted = errors.New("session not started")
	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("session already started")
	// ErrUnknownArtifact is returned when wearing a key missing from the pack.
	ErrUnknownArtifact = errors.New("unknown artifact")
	// ErrUnknownUser is returned when wearing for a user not in the session.
	ErrUnknownUser = errors.New("unknown user")
)

const trackerName = "tracker"

// PackLoader resolves a content-pack id to its artifact database.
type PackLoader interface {
	Load(ctx context.Context, id string) (contentpack.Database, error)
}

// Controller drives a single hosted session.
// All user events, wear requests and resync sweeps are serialized on mu.
type Controller struct {
	runtime mre.Runtime
	packs   PackLoader
	journal *journal.Journal
	cfg     Config
	logger  *zap.Logger
	id      string

	prefabs   *artifacts.PrefabCache
	preloader *artifacts.Preloader
	spawner   *artifacts.Spawner
	registry  *attachments.Registry

	mu         sync.Mutex
	started    bool
	subscribed bool
	startedAt  time.Time
	packID     string
	db         contentpack.Database
	preload    artifacts.PreloadReport
	spawned    []artifacts.Spawned
	users      map[mre.UserID]mre.User
	timer      *attachments.ResyncTimer
	lastSweep  attachments.SweepResult
}

// NewController creates a controller. The journal may be nil.
func NewController(runtime mre.Runtime, packs PackLoader, j *journal.Journal, cfg Config, l *zap.Logger) *Controller {
	id := j.SessionID()
	if id == "" {
		id = uuid.NewString()
	}
	prefabs := artifacts.NewPrefabCache()
	return &Controller{
		runtime:   runtime,
		packs:     packs,
		journal:   j,
		cfg:       cfg,
		logger:    logger.WithSession(l, id, ""),
		id:        id,
		prefabs:   prefabs,
		preloader: artifacts.NewPreloader(runtime, l, cfg.PreloadConcurrency),
		spawner:   artifacts.NewSpawner(runtime, prefabs, l),
		registry:  attachments.NewRegistry(),
		users:     make(map[mre.UserID]mre.User),
	}
}

// ID returns the session id.
func (c *Controller) ID() string {
	return c.id
}

// Registry exposes the attachment registry.
func (c *Controller) Registry() *attachments.Registry {
	return c.registry
}

// Start loads the content pack named by params (cpack, then content_pack,
// then the configured default), preloads its models, spawns its library
// artifacts, subscribes to user events and starts the resync timer.
// A pack that cannot be fetched or parsed fails the start.
func (c *Controller) Start(ctx context.Context, params map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return ErrAlreadyStarted
	}

	packID := contentpack.IDFromParams(params)
	if packID == "" {
		packID = c.cfg.ContentPack
	}
	db, err := c.packs.Load(ctx, packID)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	l := c.logger.With(zap.String("content_pack", packID))
	l.Info("Content pack loaded", zap.Int("artifacts", len(db)))

	c.packID = packID
	c.db = db
	c.preload = c.preloader.Preload(ctx, db, c.prefabs)
	c.spawned = c.spawner.SpawnAll(ctx, db)

	if !c.subscribed {
		c.runtime.OnUserJoined(c.UserJoined)
		c.runtime.OnUserLeft(c.UserLeft)
		c.subscribed = true
	}

	c.timer = attachments.NewResyncTimer(c.cfg.ResyncInterval(), func() { c.Resync() }, c.logger)
	c.started = true
	c.startedAt = time.Now()

	l.Info("Session started",
		zap.Int("prefabs", c.prefabs.Len()),
		zap.Int("spawned", len(c.spawned)),
		zap.Duration("resync_interval", c.cfg.ResyncInterval()),
	)
	return nil
}

// UserJoined attaches a hidden tracker sphere to the user and registers it.
func (c *Controller) UserJoined(user mre.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.users[user.ID] = user
	if c.timer != nil {
		c.timer.UserJoined(user.ID)
	}
	point := c.cfg.trackerPoint()

	tracker, err := c.runtime.CreatePrimitive(context.Background(), mre.ActorSpec{
		Name:      trackerName,
		Transform: mre.IdentityTransform(),
		Collider: &mre.Collider{
			Shape:     mre.ColliderSphere,
			Radius:    c.trackerRadius(),
			IsTrigger: true,
		},
		Attachment:         &mre.Attachment{UserID: user.ID, AttachPoint: point},
		Hidden:             true,
		SubscribeTransform: true,
	})
	if err != nil {
		c.logger.Warn("Failed to create user tracker", zap.String("user", string(user.ID)), zap.Error(err))
		return
	}

	c.registry.Add(user.ID, tracker)
	c.record(journal.AttachmentEvent{
		UserID:      string(user.ID),
		ActorID:     string(tracker.ID()),
		AttachPoint: point,
		Kind:        journal.KindTracker,
	})
	c.logger.Info("User joined", zap.String("user", string(user.ID)), zap.String("name", user.Name))
}

// UserLeft detaches and destroys every actor registered for the user.
func (c *Controller) UserLeft(user mre.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.users, user.ID)
	actors, ok := c.registry.Take(user.ID)
	if !ok {
		return
	}

	destroyed := 0
	for _, actor := range actors {
		if err := actor.Detach(); err != nil && !errors.Is(err, mre.ErrActorNotFound) {
			c.logger.Warn("Failed to detach actor", zap.String("actor", string(actor.ID())), zap.Error(err))
		}
		if err := actor.Destroy(); err != nil {
			c.logger.Debug("Actor already gone", zap.String("actor", string(actor.ID())), zap.Error(err))
			continue
		}
		destroyed++
	}

	c.record(journal.AttachmentEvent{UserID: string(user.ID), Kind: journal.KindLeave})
	c.logger.Info("User left", zap.String("user", string(user.ID)), zap.Int("destroyed", destroyed))
}

// Wear spawns the artifact key attached to the user at its attach point.
func (c *Controller) Wear(ctx context.Context, userID mre.UserID, key string) (mre.Actor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil, ErrNotStarted
	}
	d, ok := c.db[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArtifact, key)
	}
	if _, ok := c.users[userID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, userID)
	}

	point := d.AttachPoint
	if point == "" {
		point = c.cfg.defaultPoint()
	}
	actor, err := c.spawner.SpawnAttached(ctx, key, d, mre.Attachment{UserID: userID, AttachPoint: point})
	if err != nil {
		return nil, err
	}

	c.registry.Add(userID, actor)
	c.record(journal.AttachmentEvent{
		UserID:      string(userID),
		ActorID:     string(actor.ID()),
		ArtifactKey: key,
		AttachPoint: point,
		Kind:        journal.KindWear,
	})
	return actor, nil
}

// Resync runs one attachment resync sweep.
func (c *Controller) Resync() attachments.SweepResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastSweep = attachments.Resync(c.registry, c.logger)
	return c.lastSweep
}

// Close stops the resync timer and releases every loaded asset.
func (c *Controller) Close() error {
	c.mu.Lock()
	timer := c.timer
	c.timer = nil
	c.started = false
	c.mu.Unlock()

	// The timer callback takes mu, so it must be stopped unlocked.
	if timer != nil {
		timer.Stop()
	}

	c.prefabs.Clear()
	if err := c.runtime.UnloadAssets(); err != nil {
		return fmt.Errorf("unload assets: %w", err)
	}
	c.logger.Info("Session closed")
	return nil
}

// Summary describes the session state.
type Summary struct {
	SessionID   string                  `json:"session_id"`
	ContentPack string                  `json:"content_pack"`
	Started     bool                    `json:"started"`
	StartedAt   *time.Time              `json:"started_at,omitempty"`
	Artifacts   int                     `json:"artifacts"`
	Spawned     []string                `json:"spawned"`
	Preload     artifacts.PreloadReport `json:"preload"`
	Users       []string                `json:"users"`
	Timer       *attachments.TimerStats `json:"timer,omitempty"`
	LastSweep   attachments.SweepResult `json:"last_sweep"`
}

// Summary returns a snapshot of the session state.
func (c *Controller) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{
		SessionID:   c.id,
		ContentPack: c.packID,
		Started:     c.started,
		Artifacts:   len(c.db),
		Spawned:     make([]string, 0, len(c.spawned)),
		Preload:     c.preload,
		Users:       make([]string, 0, len(c.users)),
		LastSweep:   c.lastSweep,
	}
	if c.started {
		at := c.startedAt
		s.StartedAt = &at
	}
	for _, sp := range c.spawned {
		s.Spawned = append(s.Spawned, sp.Key)
	}
	for id := range c.users {
		s.Users = append(s.Users, string(id))
	}
	sort.Strings(s.Users)
	if c.timer != nil {
		stats := c.timer.Stats()
		s.Timer = &stats
	}
	return s
}

// AttachmentView is one registered actor as reported by Attachments.
type AttachmentView struct {
	ActorID     string `json:"actor_id"`
	Name        string `json:"name"`
	AttachPoint string `json:"attach_point,omitempty"`
	Attached    bool   `json:"attached"`
}

// Attachments lists the registry contents with each actor's live attachment.
func (c *Controller) Attachments() map[string][]AttachmentView {
	snap := c.registry.Snapshot()
	out := make(map[string][]AttachmentView, len(snap))
	for user, actors := range snap {
		views := make([]AttachmentView, 0, len(actors))
		for _, a := range actors {
			v := AttachmentView{ActorID: string(a.ID()), Name: a.Name()}
			if att, ok := a.Attachment(); ok {
				v.AttachPoint = att.AttachPoint
				v.Attached = true
			}
			views = append(views, v)
		}
		out[string(user)] = views
	}
	return out
}

// History returns the journaled events of a user in this session.
func (c *Controller) History(ctx context.Context, userID string) ([]journal.AttachmentEvent, error) {
	return c.journal.ForUser(ctx, userID)
}

func (c *Controller) trackerRadius() float64 {
	if c.cfg.TrackerRadius <= 0 {
		return 0.1
	}
	return c.cfg.TrackerRadius
}

// record journals evt; failures are logged only.
func (c *Controller) record(evt journal.AttachmentEvent) {
	if c.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.journal.Record(ctx, evt); err != nil {
		c.logger.Warn("Failed to journal attachment event", zap.Error(err))
	}
}
