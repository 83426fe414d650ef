package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Zayne-Feng/group-assessment-v3/internal/dto"
	"github.com/Zayne-Feng/group-assessment-v3/internal/service"
	"github.com/Zayne-Feng/group-assessment-v3/internal/utils"
)

// AlertHandler exposes alert triage and stress event listings for staff.
type AlertHandler struct {
	service service.AlertService
	logger  zerolog.Logger
}

// NewAlertHandler constructs the handler.
func NewAlertHandler(service service.AlertService, logger zerolog.Logger) *AlertHandler {
	return &AlertHandler{
		service: service,
		logger:  logger.With().Str("component", "alert_handler").Logger(),
	}
}

// Register attaches alert routes to the router group.
func (h *AlertHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Patch("/:id/resolve", h.resolve)
	router.Delete("/:id", h.delete)
}

// RegisterStressEvents attaches the stress event listing to the router group.
func (h *AlertHandler) RegisterStressEvents(router fiber.Router) {
	router.Get("", h.listStressEvents)
}

func (h *AlertHandler) list(c *fiber.Ctx) error {
	studentID, err := parseOptionalUintQuery(c, "student_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
	}

	unresolved := false
	if raw := c.Query("unresolved"); raw != "" {
		unresolved, err = strconv.ParseBool(raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid unresolved flag")
		}
	}

	alerts, err := h.service.List(c.UserContext(), dto.AlertListRequest{StudentID: studentID, UnresolvedOnly: unresolved})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list alerts")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list alerts")
	}

	return utils.SendSuccess(c, "alerts", alerts)
}

func (h *AlertHandler) resolve(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	alert, err := h.service.Resolve(c.UserContext(), id)
	if err != nil {
		return h.writeError(c, err, "failed to resolve alert")
	}

	return utils.SendSuccess(c, "alert resolved", alert)
}

func (h *AlertHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.writeError(c, err, "failed to delete alert")
	}

	return utils.SendSuccess(c, "alert deleted", nil)
}

func (h *AlertHandler) listStressEvents(c *fiber.Ctx) error {
	studentID, err := parseOptionalUintQuery(c, "student_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
	}

	events, err := h.service.ListStressEvents(c.UserContext(), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list stress events")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list stress events")
	}

	return utils.SendSuccess(c, "stress events", events)
}

func (h *AlertHandler) writeError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, service.ErrAlertNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "alert not found")
	}
	requestLogger(h.logger, c).Error().Err(err).Msg(message)
	return utils.SendError(c, fiber.StatusInternalServerError, message)
}
