package handler

import (
	"learnloop/internal/domain"
	"learnloop/internal/dto"
	"learnloop/internal/middleware"
	"learnloop/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

// GenerateQuiz godoc
// @Summary Serve a quiz for a curriculum coordinate
// @Description Reuses an unattempted question set for the coordinate when one exists, otherwise generates a new one
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Curriculum coordinate"
// @Security BearerAuth
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	studentID, ok := c.Locals(middleware.StudentIDKey).(string)
	if !ok || studentID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "student identity missing")
	}

	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.GenerateQuiz(c.Context(), studentID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitQuiz godoc
// @Summary Submit quiz answers for grading
// @Description Grades the submission, records the attempt and updates the student's skill stats
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.SubmitQuizRequest true "Answers"
// @Security BearerAuth
// @Success 200 {object} dto.SubmitQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	studentID, ok := c.Locals(middleware.StudentIDKey).(string)
	if !ok || studentID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "student identity missing")
	}

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.SubmitQuiz(c.Context(), studentID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
