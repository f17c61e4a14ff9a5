package attachments

import (
	"errors"

	"artifact-host/core/mre"

	"go.uber.org/zap"
)

// errNotAttached marks a registered actor that has no attachment to restore.
var errNotAttached = errors.New("actor is not attached")

// SweepResult counts the outcome of one resync sweep.
type SweepResult struct {
	Users    int `json:"users"`
	Actors   int `json:"actors"`
	Resynced int `json:"resynced"`
	Skipped  int `json:"skipped"`
}

// Resync detaches and reattaches every registered actor at the attach point it
// had before the sweep, forcing the runtime to rebroadcast each attachment.
// Stale actors are logged and skipped; the sweep always visits every entry.
func Resync(registry *Registry, logger *zap.Logger) SweepResult {
	var res SweepResult
	for _, user := range registry.Users() {
		actors, ok := registry.Get(user)
		if !ok {
			continue
		}
		res.Users++
		for _, actor := range actors {
			res.Actors++
			if err := reattach(user, actor); err != nil {
				res.Skipped++
				logger.Debug("Skipped attachment resync",
					zap.String("user", string(user)),
					zap.String("actor", string(actor.ID())),
					zap.Error(err),
				)
				continue
			}
			res.Resynced++
		}
	}
	return res
}

func reattach(user mre.UserID, actor mre.Actor) error {
	att, ok := actor.Attachment()
	if !ok {
		return errNotAttached
	}
	if err := actor.Detach(); err != nil {
		return err
	}
	return actor.Attach(user, att.AttachPoint)
}
