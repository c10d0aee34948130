package handler

import (
	"learnloop/internal/domain"
	"learnloop/internal/dto"
	"learnloop/internal/middleware"
	"learnloop/internal/service"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler handles mastery statistics HTTP requests
type StatsHandler struct {
	service service.StatsService
}

// NewStatsHandler creates a new StatsHandler instance
func NewStatsHandler(service service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetMyStats godoc
// @Summary Get the authenticated student's skill stats
// @Tags stats
// @Produce json
// @Param subject query string true "Subject"
// @Security BearerAuth
// @Success 200 {object} dto.SkillStatsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /students/me/skill-stats [get]
func (h *StatsHandler) GetMyStats(c *fiber.Ctx) error {
	studentID, ok := c.Locals(middleware.StudentIDKey).(string)
	if !ok || studentID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "student identity missing")
	}

	subject := c.Query("subject")
	resp, err := h.service.GetStudentStats(c.Context(), studentID, subject)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetMyAttempts godoc
// @Summary Get the authenticated student's attempt history
// @Tags stats
// @Produce json
// @Param subject query string true "Subject"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Security BearerAuth
// @Success 200 {object} dto.AttemptListResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /students/me/attempts [get]
func (h *StatsHandler) GetMyAttempts(c *fiber.Ctx) error {
	studentID, ok := c.Locals(middleware.StudentIDKey).(string)
	if !ok || studentID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "student identity missing")
	}

	subject := c.Query("subject")
	limit := c.QueryInt("limit", 10)
	offset := c.QueryInt("offset", 0)

	resp, err := h.service.GetStudentAttempts(c.Context(), studentID, subject, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetClassStats godoc
// @Summary Aggregate skill stats across a class roster
// @Description Roster resolution is owned by the caller; this endpoint aggregates over the given student ids
// @Tags stats
// @Accept json
// @Produce json
// @Param request body dto.ClassStatsRequest true "Roster"
// @Security BearerAuth
// @Success 200 {object} dto.ClassStatsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /classes/skill-stats [post]
func (h *StatsHandler) GetClassStats(c *fiber.Ctx) error {
	var req dto.ClassStatsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.GetClassStats(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
