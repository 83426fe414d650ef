package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Zayne-Feng/group-assessment-v3/internal/dto"
	"github.com/Zayne-Feng/group-assessment-v3/internal/service"
	"github.com/Zayne-Feng/group-assessment-v3/internal/utils"
)

// SurveyHandler exposes weekly wellbeing survey endpoints.
type SurveyHandler struct {
	service service.SurveyResponseService
	logger  zerolog.Logger
}

// NewSurveyHandler constructs the handler.
func NewSurveyHandler(service service.SurveyResponseService, logger zerolog.Logger) *SurveyHandler {
	return &SurveyHandler{
		service: service,
		logger:  logger.With().Str("component", "survey_handler").Logger(),
	}
}

// Register attaches survey routes. Writes pass through limiter; reads and deletes require staff.
func (h *SurveyHandler) Register(router fiber.Router, staff, limiter fiber.Handler) {
	router.Post("", limiter, h.create)
	router.Put("/:id", limiter, h.update)
	router.Get("", staff, h.list)
	router.Get("/:id", staff, h.get)
	router.Delete("/:id", staff, h.delete)
}

func (h *SurveyHandler) create(c *fiber.Ctx) error {
	var payload dto.SurveyResponseRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	result, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return h.writeError(c, err, "failed to record survey response")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "survey response recorded", result)
}

func (h *SurveyHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SurveyResponseRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	result, err := h.service.Update(c.UserContext(), id, payload)
	if err != nil {
		return h.writeError(c, err, "failed to update survey response")
	}

	return utils.SendSuccess(c, "survey response updated", result)
}

func (h *SurveyHandler) list(c *fiber.Ctx) error {
	studentID, err := parseOptionalUintQuery(c, "student_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	moduleID, err := parseOptionalUintQuery(c, "module_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid module_id")
	}
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	req := dto.SurveyListRequest{StudentID: studentID, ModuleID: moduleID, Page: page, PageSize: pageSize}
	if c.Query("week_number") != "" {
		week, err := parseQueryInt(c, "week_number")
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid week_number")
		}
		req.WeekNumber = &week
	}

	result, err := h.service.List(c.UserContext(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list survey responses")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list survey responses")
	}

	return utils.OK(c, result.Items, "survey responses", result.Pagination)
}

func (h *SurveyHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.writeError(c, err, "failed to load survey response")
	}

	return utils.SendSuccess(c, "survey response", result)
}

func (h *SurveyHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.writeError(c, err, "failed to delete survey response")
	}

	return utils.SendSuccess(c, "survey response deleted", nil)
}

func (h *SurveyHandler) writeError(c *fiber.Ctx, err error, message string) error {
	switch {
	case isValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(err))
	case errors.Is(err, service.ErrSurveyResponseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "survey response not found")
	case errors.Is(err, service.ErrDetectionFailed):
		requestLogger(h.logger, c).Error().Err(err).Msg("stress detection failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to process survey response")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(message)
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}
}
