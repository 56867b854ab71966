package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/newslens-app/newslens/internal/dto"
	"github.com/newslens-app/newslens/internal/services"
)

// ModerationHandler is the admin panel: pending submissions plus the
// privileged auto-approved creation path.
type ModerationHandler struct {
	articleService *services.ArticleService
}

func NewModerationHandler(articleService *services.ArticleService) *ModerationHandler {
	return &ModerationHandler{articleService: articleService}
}

func (h *ModerationHandler) ListPending(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	if limit > 100 {
		limit = 100
	}

	articles, total, err := h.articleService.ListPending(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch pending articles",
		})
	}

	return c.JSON(dto.PendingArticlesResponse{
		Articles: articles,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

func (h *ModerationHandler) Approve(c *fiber.Ctx) error {
	return h.transition(c, h.articleService.Approve, "Article approved")
}

func (h *ModerationHandler) Reject(c *fiber.Ctx) error {
	return h.transition(c, h.articleService.Reject, "Article rejected")
}

func (h *ModerationHandler) transition(c *fiber.Ctx, action func(id string) error, message string) error {
	if err := action(c.Params("id")); err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update article status",
		})
	}
	return c.JSON(fiber.Map{"message": message})
}

// Create inserts an article that goes live immediately.
func (h *ModerationHandler) Create(c *fiber.Ctx) error {
	var req dto.ArticleDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	id, err := h.articleService.Create(draftFromRequest(&req, true))
	if err != nil {
		if errors.Is(err, services.ErrInvalidArticle) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create article",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ArticleCreatedResponse{ID: id})
}
