package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/newslens-app/newslens/internal/config"
	"github.com/newslens-app/newslens/internal/dto"
	"github.com/newslens-app/newslens/internal/middleware"
	"github.com/newslens-app/newslens/internal/services"
)

type EngagementHandler struct {
	engagementService *services.EngagementService
	cfg               *config.Config
}

func NewEngagementHandler(engagementService *services.EngagementService, cfg *config.Config) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService, cfg: cfg}
}

func (h *EngagementHandler) Like(c *fiber.Ctx) error {
	return h.userAction(c, h.engagementService.Like)
}

func (h *EngagementHandler) Unlike(c *fiber.Ctx) error {
	return h.userAction(c, h.engagementService.Unlike)
}

func (h *EngagementHandler) Save(c *fiber.Ctx) error {
	return h.userAction(c, h.engagementService.Save)
}

func (h *EngagementHandler) Unsave(c *fiber.Ctx) error {
	return h.userAction(c, h.engagementService.Unsave)
}

// Share needs no authentication. The response carries the canonical share
// link so clients don't have to guess the public host.
func (h *EngagementHandler) Share(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.engagementService.Share(id); err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to share article",
		})
	}
	return c.JSON(dto.ShareResponse{
		Message: "Share recorded",
		Link:    strings.TrimRight(h.cfg.PublicBaseURL, "/") + "/article/" + id,
	})
}

func (h *EngagementHandler) userAction(c *fiber.Ctx, action func(userID, articleID string) error) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := action(userID.String(), c.Params("id")); err != nil {
		if errors.Is(err, services.ErrArticleNotFound) || errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update engagement",
		})
	}

	return c.JSON(fiber.Map{"message": "OK"})
}
