package contentpack

import (
	"artifact-host/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for content packs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the content-pack routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/packs")
	group.Get("/:id", h.HandleGetPack)
	group.Get("/:id/integrity", h.HandleIntegrity)
}

// HandleGetPack returns the artifact database of a content pack.
// @Summary Get Content Pack
// @Description Fetches a content pack and returns its artifact descriptors keyed by artifact key.
// @Tags packs
// @Produce json
// @Param id path string true "Content pack id"
// @Success 200 {object} map[string]contentpack.Descriptor "Artifact database"
// @Failure 502 {object} map[string]string "Content pack unavailable"
// @Router /packs/{id} [get]
func (h *Handler) HandleGetPack(c *fiber.Ctx) error {
	// Params are only valid for the request; the id outlives it as a cache key.
	id := utils.CopyString(c.Params("id"))
	l := logger.WithRayID(h.service.logger, c)

	db, err := h.service.GetPack(c.Context(), id)
	if err != nil {
		l.Error("Content pack fetch failed", zap.String("pack", id), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(db)
}

// HandleIntegrity checks a content pack against storage.
// @Summary Check Content Pack Integrity
// @Description Validates descriptors and verifies that every referenced model file exists in storage.
// @Tags packs
// @Produce json
// @Param id path string true "Content pack id"
// @Success 200 {object} contentpack.IntegrityReport "Integrity report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /packs/{id}/integrity [get]
func (h *Handler) HandleIntegrity(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckIntegrity(c.Context(), id)
	if err != nil {
		l.Error("Content pack integrity check failed", zap.String("pack", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if report.Status != StatusPass {
		l.Warn("Content pack integrity issues",
			zap.String("pack", id),
			zap.Strings("missing_models", report.MissingModels),
			zap.Int("malformed", len(report.Malformed)),
		)
	}
	return c.JSON(report)
}
