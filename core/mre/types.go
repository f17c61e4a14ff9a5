package mre

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrActorNotFound is returned by actor operations on a destroyed or unknown actor.
var ErrActorNotFound = errors.New("actor not found")

// ErrUserNotFound is returned when an attachment targets a user not in the session.
var ErrUserNotFound = errors.New("user not found")

// UserID identifies a user within a session.
type UserID string

// ActorID identifies an actor within a session.
type ActorID string

// User is a participant of the shared session.
type User struct {
	ID   UserID `json:"id"`
	Name string `json:"name"`
}

// Transform places an actor in its parent (or user attach point) space.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// IdentityTransform is the origin with unit scale and no rotation.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// ColliderShape names a collider geometry.
type ColliderShape string

const (
	ColliderSphere ColliderShape = "sphere"
	ColliderBox    ColliderShape = "box"
)

// Collider describes the collision volume of an actor.
type Collider struct {
	Shape     ColliderShape `json:"shape"`
	Radius    float64       `json:"radius,omitempty"`
	Size      mgl64.Vec3    `json:"size,omitempty"`
	IsTrigger bool          `json:"isTrigger"`
}

// RigidBody describes the physics body of an actor.
type RigidBody struct {
	Mass             float64 `json:"mass"`
	UseGravity       bool    `json:"useGravity"`
	DetectCollisions bool    `json:"detectCollisions"`
}

// Attachment binds an actor to a named point on a user's avatar.
type Attachment struct {
	UserID      UserID `json:"userId"`
	AttachPoint string `json:"attachPoint"`
}

// AssetKind classifies the entries of a loaded asset container.
type AssetKind string

const (
	AssetPrefab   AssetKind = "prefab"
	AssetMesh     AssetKind = "mesh"
	AssetMaterial AssetKind = "material"
)

// Asset is one entry of a loaded model container.
type Asset struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Kind   AssetKind `json:"kind"`
	Source string    `json:"source"`
}

// ActorSpec configures actor creation.
type ActorSpec struct {
	Name       string
	Transform  Transform
	Collider   *Collider
	Attachment *Attachment
	Hidden     bool
	// SubscribeTransform makes transform updates visible to every observer,
	// not only the owning user.
	SubscribeTransform bool
}
