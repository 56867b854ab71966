package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/newslens-app/newslens/internal/dto"
	"github.com/newslens-app/newslens/internal/middleware"
	"github.com/newslens-app/newslens/internal/services"
	"github.com/newslens-app/newslens/internal/survey"
)

type SurveyHandler struct {
	authService *services.AuthService
}

func NewSurveyHandler(authService *services.AuthService) *SurveyHandler {
	return &SurveyHandler{authService: authService}
}

func (h *SurveyHandler) Questions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"questions": survey.Questions})
}

// SubmitAnswers scores the answers by plurality and stores the outcome on
// the profile. An empty answer set counts as skipping (leaning stays
// unspecified, survey marked completed).
func (h *SurveyHandler) SubmitAnswers(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SurveyAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	leaning := survey.Score(req.Answers)
	if err := h.authService.SetPoliticalLeaning(userID, leaning); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save survey results",
		})
	}

	return c.JSON(dto.SurveyResultResponse{
		PoliticalLeaning: leaning,
		SurveyCompleted:  true,
	})
}
