package session

import (
	"errors"

	"artifact-host/core/logger"
	"artifact-host/feature/journal"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the hosted session.
type Handler struct {
	controller *Controller
}

// NewHandler creates a new HTTP handler.
func NewHandler(controller *Controller) *Handler {
	return &Handler{controller: controller}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/session")
	group.Get("/", h.HandleSummary)
	group.Get("/attachments", h.HandleAttachments)
	group.Post("/resync", h.HandleResync)
	group.Get("/users/:id/history", h.HandleHistory)
}

// HandleSummary returns the session state.
// @Summary Get Session
// @Description Returns the loaded content pack, preload outcome, spawned artifacts, users and resync timer stats.
// @Tags session
// @Produce json
// @Success 200 {object} session.Summary "Session summary"
// @Router /session [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	return c.JSON(h.controller.Summary())
}

// HandleAttachments lists registered actors per user.
// @Summary List Attachments
// @Description Lists every registered actor per user with its current attach point.
// @Tags session
// @Produce json
// @Success 200 {object} map[string][]session.AttachmentView "Attachments by user"
// @Router /session/attachments [get]
func (h *Handler) HandleAttachments(c *fiber.Ctx) error {
	return c.JSON(h.controller.Attachments())
}

// HandleResync runs a resync sweep immediately.
// @Summary Resync Attachments
// @Description Detaches and reattaches every registered actor at its current attach point.
// @Tags session
// @Produce json
// @Success 200 {object} attachments.SweepResult "Sweep result"
// @Router /session/resync [post]
func (h *Handler) HandleResync(c *fiber.Ctx) error {
	res := h.controller.Resync()
	if res.Skipped > 0 {
		logger.WithRayID(h.controller.logger, c).Warn("Resync skipped stale actors", zap.Int("skipped", res.Skipped))
	}
	return c.JSON(res)
}

// HandleHistory returns the journaled attachment events of a user.
// @Summary Get User Attachment History
// @Description Returns the wear, tracker and leave events recorded for a user in this session.
// @Tags session
// @Produce json
// @Param id path string true "User id"
// @Success 200 {array} journal.AttachmentEvent "Journal events"
// @Failure 503 {object} map[string]string "Journal disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /session/users/{id}/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	events, err := h.controller.History(c.Context(), id)
	if errors.Is(err, journal.ErrNoDatabase) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.controller.logger, c).Error("Journal query failed", zap.String("user", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(events)
}
