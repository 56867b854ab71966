package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/newslens-app/newslens/internal/dto"
	"github.com/newslens-app/newslens/internal/models"
	"github.com/newslens-app/newslens/internal/services"
)

type ArticleHandler struct {
	articleService *services.ArticleService
}

func NewArticleHandler(articleService *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// List serves the public feed. Filters arrive as comma-separated query
// params: topics, wordCounts, leaning, limit.
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	query := services.ArticleQuery{
		Leaning: models.PoliticalLeaning(c.Query("leaning")),
	}

	if raw := c.Query("topics"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			query.Topics = append(query.Topics, models.Topic(t))
		}
	}
	if raw := c.Query("wordCounts"); raw != "" {
		for _, w := range strings.Split(raw, ",") {
			n, err := strconv.Atoi(w)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error: true, Message: "Invalid wordCounts filter",
				})
			}
			query.WordCounts = append(query.WordCounts, models.WordCount(n))
		}
	}
	if raw := c.Query("limit"); raw != "" {
		query.Limit, _ = strconv.Atoi(raw)
	}

	articles, err := h.articleService.List(query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch articles",
		})
	}

	return c.JSON(dto.ArticleListResponse{Articles: articles})
}

// Get returns a single article; absent ids yield 404, not 500.
func (h *ArticleHandler) Get(c *fiber.Ctx) error {
	article, err := h.articleService.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch article",
		})
	}
	if article == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Article not found",
		})
	}
	return c.JSON(article)
}

// Submit accepts a public submission; status is forced to pending.
func (h *ArticleHandler) Submit(c *fiber.Ctx) error {
	var req dto.ArticleDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	id, err := h.articleService.Submit(draftFromRequest(&req, false))
	if err != nil {
		if errors.Is(err, services.ErrInvalidArticle) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to submit article",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ArticleCreatedResponse{ID: id})
}

func draftFromRequest(req *dto.ArticleDraftRequest, honorPublishedDate bool) services.ArticleDraft {
	draft := services.ArticleDraft{
		Title:            req.Title,
		Content:          req.Content,
		Summary:          req.Summary,
		Author:           req.Author,
		Topics:           req.Topics,
		WordCount:        req.WordCount,
		ImageURL:         req.ImageURL,
		PoliticalLeaning: req.PoliticalLeaning,
	}
	if honorPublishedDate {
		draft.PublishedDate = req.PublishedDate
	}
	return draft
}
