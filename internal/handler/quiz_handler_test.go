package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"learnloop/internal/domain"
	"learnloop/internal/dto"
	"learnloop/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MockQuizService ---
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, studentID string, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	args := m.Called(ctx, studentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GenerateQuizResponse), args.Error(1)
}

func (m *MockQuizService) SubmitQuiz(ctx context.Context, studentID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	args := m.Called(ctx, studentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubmitQuizResponse), args.Error(1)
}

// fakeAuth stands in for the JWT middleware and injects a fixed student id.
func fakeAuth(studentID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.StudentIDKey, studentID)
		return c.Next()
	}
}

func newQuizApp(svc *MockQuizService, studentID string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewQuizHandler(svc)
	app.Post("/api/quiz/generate", fakeAuth(studentID), h.GenerateQuiz)
	app.Post("/api/quiz/submit", fakeAuth(studentID), h.SubmitQuiz)
	return app
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	return bytes.NewReader(payload)
}

func TestGenerateQuizHandler(t *testing.T) {
	svc := new(MockQuizService)
	svc.On("GenerateQuiz", mock.Anything, "student-1", mock.AnythingOfType("*dto.GenerateQuizRequest")).
		Return(&dto.GenerateQuizResponse{SetID: "set-1", IsNewSet: true, DifficultyLevel: 7}, nil)

	app := newQuizApp(svc, "student-1")

	req := httptest.NewRequest("POST", "/api/quiz/generate", jsonBody(t, dto.GenerateQuizRequest{
		ClassNumber: 8, Subject: "science", Chapter: "Light", Topic: "Refraction",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var parsed dto.GenerateQuizResponse
	body, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, "set-1", parsed.SetID)
	assert.True(t, parsed.IsNewSet)
	svc.AssertExpectations(t)
}

func TestGenerateQuizHandlerContentUnavailable(t *testing.T) {
	svc := new(MockQuizService)
	svc.On("GenerateQuiz", mock.Anything, "student-1", mock.Anything).
		Return(nil, domain.NewContentUnavailableError(domain.CurriculumCoordinate{ClassNumber: 8, Subject: "science", Chapter: "sound"}))

	app := newQuizApp(svc, "student-1")

	req := httptest.NewRequest("POST", "/api/quiz/generate", jsonBody(t, dto.GenerateQuizRequest{
		ClassNumber: 8, Subject: "science", Chapter: "sound", Topic: "echo",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubmitQuizHandler(t *testing.T) {
	svc := new(MockQuizService)
	svc.On("SubmitQuiz", mock.Anything, "student-1", mock.AnythingOfType("*dto.SubmitQuizRequest")).
		Return(&dto.SubmitQuizResponse{AttemptID: "attempt-1", CorrectCount: 7, TotalQuestions: 10, ScorePercentage: 70}, nil)

	app := newQuizApp(svc, "student-1")

	req := httptest.NewRequest("POST", "/api/quiz/submit", jsonBody(t, dto.SubmitQuizRequest{
		SetID:   "set-1",
		Answers: []dto.SubmittedAnswer{{QuestionID: "q1", SelectedOption: 0}},
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var parsed dto.SubmitQuizResponse
	body, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, "attempt-1", parsed.AttemptID)
	assert.Equal(t, 7, parsed.CorrectCount)
}

func TestSubmitQuizHandlerBadBody(t *testing.T) {
	svc := new(MockQuizService)
	app := newQuizApp(svc, "student-1")

	req := httptest.NewRequest("POST", "/api/quiz/submit", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "SubmitQuiz", mock.Anything, mock.Anything, mock.Anything)
}
