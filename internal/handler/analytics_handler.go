package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Zayne-Feng/group-assessment-v3/internal/dto"
	"github.com/Zayne-Feng/group-assessment-v3/internal/service"
	"github.com/Zayne-Feng/group-assessment-v3/internal/utils"
)

// AnalyticsHandler exposes wellbeing and academic analytics for staff.
type AnalyticsHandler struct {
	service   service.AnalyticsService
	defaults  service.RiskThresholds
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAnalyticsHandler constructs the handler. defaults seed the high-risk thresholds when a request omits them.
func NewAnalyticsHandler(service service.AnalyticsService, defaults service.RiskThresholds, validate *validator.Validate, logger zerolog.Logger) *AnalyticsHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &AnalyticsHandler{
		service:   service,
		defaults:  defaults,
		validator: validate,
		logger:    logger.With().Str("component", "analytics_handler").Logger(),
	}
}

// Register attaches analytics routes to the router group.
func (h *AnalyticsHandler) Register(router fiber.Router) {
	router.Get("/students/:id/stress-trend", h.stressTrend)
	router.Get("/students/:id/attendance-trend", h.attendanceTrend)
	router.Get("/students/:id/average-attendance", h.averageAttendance)
	router.Get("/overall-attendance-rate", h.overallAttendanceRate)
	router.Get("/grade-distribution", h.gradeDistribution)
	router.Get("/stress-grade-correlation", h.stressGradeCorrelation)
	router.Get("/dashboard-summary", h.dashboardSummary)
	router.Get("/submission-status-distribution", h.submissionStatusDistribution)
	router.Get("/high-risk-students", h.highRiskStudents)
	router.Get("/stress-by-module", h.stressByModule)
}

func (h *AnalyticsHandler) stressTrend(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	series, err := h.service.StressTrend(c.UserContext(), studentID)
	if err != nil {
		return h.fail(c, err, "failed to load stress trend")
	}

	return utils.SendSuccess(c, "stress trend", series)
}

func (h *AnalyticsHandler) attendanceTrend(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	series, err := h.service.AttendanceTrend(c.UserContext(), studentID)
	if err != nil {
		return h.fail(c, err, "failed to load attendance trend")
	}

	return utils.SendSuccess(c, "attendance trend", series)
}

func (h *AnalyticsHandler) averageAttendance(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	average, err := h.service.AverageAttendance(c.UserContext(), studentID)
	if err != nil {
		return h.fail(c, err, "failed to load average attendance")
	}

	return utils.SendSuccess(c, "average attendance", average)
}

func (h *AnalyticsHandler) overallAttendanceRate(c *fiber.Ctx) error {
	average, err := h.service.OverallAttendanceRate(c.UserContext())
	if err != nil {
		return h.fail(c, err, "failed to load attendance rate")
	}

	return utils.SendSuccess(c, "overall attendance rate", average)
}

func (h *AnalyticsHandler) gradeDistribution(c *fiber.Ctx) error {
	distribution, err := h.service.GradeDistribution(c.UserContext())
	if err != nil {
		return h.fail(c, err, "failed to load grade distribution")
	}

	return utils.SendSuccess(c, "grade distribution", distribution)
}

func (h *AnalyticsHandler) stressGradeCorrelation(c *fiber.Ctx) error {
	correlation, err := h.service.StressGradeCorrelation(c.UserContext())
	if err != nil {
		return h.fail(c, err, "failed to load stress grade correlation")
	}

	return utils.SendSuccess(c, "stress grade correlation", correlation)
}

func (h *AnalyticsHandler) dashboardSummary(c *fiber.Ctx) error {
	summary, err := h.service.DashboardSummary(c.UserContext())
	if err != nil {
		return h.fail(c, err, "failed to load dashboard summary")
	}

	return utils.SendSuccess(c, "dashboard summary", summary)
}

func (h *AnalyticsHandler) submissionStatusDistribution(c *fiber.Ctx) error {
	distribution, err := h.service.SubmissionStatusDistribution(c.UserContext())
	if err != nil {
		return h.fail(c, err, "failed to load submission status distribution")
	}

	return utils.SendSuccess(c, "submission status distribution", distribution)
}

func (h *AnalyticsHandler) highRiskStudents(c *fiber.Ctx) error {
	var req dto.RiskThresholdsRequest
	var err error
	if req.Attendance, err = parseOptionalFloatQuery(c, "attendance_threshold"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid attendance_threshold")
	}
	if req.Grade, err = parseOptionalFloatQuery(c, "grade_threshold"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid grade_threshold")
	}
	if req.Stress, err = parseOptionalFloatQuery(c, "stress_threshold"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid stress_threshold")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(err))
	}

	thresholds := h.defaults
	if req.Attendance != nil {
		thresholds.AttendancePercent = *req.Attendance
	}
	if req.Grade != nil {
		thresholds.Grade = *req.Grade
	}
	if req.Stress != nil {
		thresholds.Stress = *req.Stress
	}

	students, err := h.service.HighRiskStudents(c.UserContext(), thresholds)
	if err != nil {
		return h.fail(c, err, "failed to load high risk students")
	}

	return utils.SendSuccess(c, "high risk students", students)
}

func (h *AnalyticsHandler) stressByModule(c *fiber.Ctx) error {
	series, err := h.service.StressByModule(c.UserContext())
	if err != nil {
		return h.fail(c, err, "failed to load stress by module")
	}

	return utils.SendSuccess(c, "stress by module", series)
}

func (h *AnalyticsHandler) fail(c *fiber.Ctx, err error, message string) error {
	requestLogger(h.logger, c).Error().Err(err).Msg(message)
	return utils.SendError(c, fiber.StatusInternalServerError, message)
}
