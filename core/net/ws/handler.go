package ws

import (
	"context"
	"net/http"
	"strings"

	"artifact-host/core/mre"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const maxMessageSize = 4096

// Session is the runtime side of the relay.
type Session interface {
	Snapshot() []mre.ActorState
	Join(user mre.User)
	Leave(id mre.UserID)
}

// Commands executes client requests.
type Commands interface {
	Wear(ctx context.Context, userID mre.UserID, key string) (mre.Actor, error)
}

// Handler upgrades relay connections and runs one read loop per client.
type Handler struct {
	hub      *Hub
	session  Session
	commands Commands
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a relay handler.
func NewHandler(hub *Hub, session Session, commands Commands, logger *zap.Logger) *Handler {
	return &Handler{
		hub:      hub,
		session:  session,
		commands: commands,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	user := mre.User{ID: mre.UserID(uuid.NewString()), Name: name}
	l := h.logger.With(zap.String("user", string(user.ID)))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	c := &client{conn: conn}
	if err := h.welcome(user, c); err != nil {
		l.Warn("Failed to send welcome", zap.Error(err))
		h.hub.remove(user.ID)
		return
	}

	h.session.Join(user)
	l.Info("Client connected", zap.String("name", name))

	defer func() {
		h.hub.remove(user.ID)
		h.session.Leave(user.ID)
		l.Info("Client disconnected")
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				l.Debug("Websocket read failed", zap.Error(err))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			l.Debug("Discarding malformed message", zap.Error(err))
			continue
		}

		var reply any
		switch msg.Type {
		case TypeWear:
			actor, err := h.commands.Wear(r.Context(), user.ID, msg.Artifact)
			if err != nil {
				reply = errorMessage{Type: TypeError, Error: err.Error()}
				break
			}
			reply = wornMessage{Type: TypeWorn, Artifact: msg.Artifact, ActorID: actor.ID()}
		default:
			reply = errorMessage{Type: TypeError, Error: "unknown message type " + msg.Type}
		}

		data, err := json.Marshal(reply)
		if err != nil {
			l.Error("Failed to marshal reply", zap.Error(err))
			continue
		}
		if err := c.write(data); err != nil {
			return
		}
	}
}

// welcome registers the client and sends the snapshot while holding its
// write lock, so no event can reach the client ahead of the snapshot.
func (h *Handler) welcome(user mre.User, c *client) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	h.hub.add(user.ID, c)
	data, err := json.Marshal(welcomeMessage{
		Type:   TypeWelcome,
		User:   user,
		Actors: h.session.Snapshot(),
	})
	if err != nil {
		return err
	}
	return c.writeLocked(data)
}
