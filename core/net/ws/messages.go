package ws

import "artifact-host/core/mre"

// Message types sent by the relay. Runtime events are sent as mre.Event.
const (
	TypeWelcome = "welcome"
	TypeWorn    = "worn"
	TypeError   = "error"
	TypeWear    = "wear"
)

type clientMessage struct {
	Type     string `json:"type"`
	Artifact string `json:"artifact"`
}

type welcomeMessage struct {
	Type   string           `json:"type"`
	User   mre.User         `json:"user"`
	Actors []mre.ActorState `json:"actors"`
}

type wornMessage struct {
	Type     string      `json:"type"`
	Artifact string      `json:"artifact"`
	ActorID  mre.ActorID `json:"actor_id"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
