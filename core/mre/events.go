package mre

import "github.com/go-gl/mathgl/mgl64"

// EventType names a session event published to clients.
type EventType string

const (
	EventUserJoined     EventType = "user-joined"
	EventUserLeft       EventType = "user-left"
	EventActorCreated   EventType = "actor-created"
	EventActorUpdated   EventType = "actor-updated"
	EventActorDestroyed EventType = "actor-destroyed"
)

// ActorState is the wire form of an actor.
type ActorState struct {
	ID         ActorID     `json:"id"`
	Name       string      `json:"name"`
	Resource   string      `json:"resource,omitempty"`
	Position   [3]float64  `json:"position"`
	Rotation   [4]float64  `json:"rotation"`
	Scale      [3]float64  `json:"scale"`
	Hidden     bool        `json:"hidden,omitempty"`
	Grabbable  bool        `json:"grabbable,omitempty"`
	Collider   *Collider   `json:"collider,omitempty"`
	RigidBody  *RigidBody  `json:"rigidBody,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// Event is a session change broadcast to connected clients.
type Event struct {
	Type  EventType   `json:"type"`
	User  *User       `json:"user,omitempty"`
	Actor *ActorState `json:"actor,omitempty"`
}

// NewActorState converts a transform to wire arrays. Rotation is x, y, z, w.
func NewActorState(id ActorID, name string, t Transform) ActorState {
	return ActorState{
		ID:       id,
		Name:     name,
		Position: vecArray(t.Position),
		Rotation: [4]float64{t.Rotation.V[0], t.Rotation.V[1], t.Rotation.V[2], t.Rotation.W},
		Scale:    vecArray(t.Scale),
	}
}

func vecArray(v mgl64.Vec3) [3]float64 {
	return [3]float64{v[0], v[1], v[2]}
}
