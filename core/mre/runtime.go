package mre

import "context"

// Actor is a live, networked object in the session.
type Actor interface {
	ID() ActorID
	Name() string
	// Attachment returns the current attachment, if any.
	Attachment() (Attachment, bool)
	Attach(user UserID, attachPoint string) error
	Detach() error
	Destroy() error
	SetGrabbable(grabbable bool) error
	EnableRigidBody(body RigidBody) error
}

// AssetLoader loads model containers by resource name.
type AssetLoader interface {
	LoadAssets(ctx context.Context, resourceName string) ([]Asset, error)
}

// ActorFactory creates actors.
type ActorFactory interface {
	// CreateFromPrefab instantiates a preloaded prefab asset.
	CreateFromPrefab(ctx context.Context, prefabID string, spec ActorSpec) (Actor, error)
	// CreateFromLibrary instantiates a hosted catalog resource.
	CreateFromLibrary(ctx context.Context, resourceID string, spec ActorSpec) (Actor, error)
	// CreatePrimitive creates an actor with no model, only the spec's collider.
	CreatePrimitive(ctx context.Context, spec ActorSpec) (Actor, error)
}

// Runtime is the session-hosting engine the application runs on.
type Runtime interface {
	AssetLoader
	ActorFactory
	OnUserJoined(handler func(User))
	OnUserLeft(handler func(User))
	// UnloadAssets releases every loaded asset container.
	UnloadAssets() error
}
