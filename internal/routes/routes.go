package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/newslens-app/newslens/internal/config"
	"github.com/newslens-app/newslens/internal/handlers"
	"github.com/newslens-app/newslens/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	articleHandler *handlers.ArticleHandler,
	engagementHandler *handlers.EngagementHandler,
	moderationHandler *handlers.ModerationHandler,
	surveyHandler *handlers.SurveyHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)
	api.Put("/auth/leaning", middleware.JWTProtected(cfg), authHandler.SetLeaning)

	// Articles — public feed, single article, public submission, share
	api.Get("/articles", articleHandler.List)
	api.Get("/articles/:id", articleHandler.Get)
	api.Post("/articles/submit", articleHandler.Submit)
	api.Post("/articles/:id/share", engagementHandler.Share)

	// Engagement — identity required
	api.Post("/articles/:id/like", middleware.JWTProtected(cfg), engagementHandler.Like)
	api.Post("/articles/:id/unlike", middleware.JWTProtected(cfg), engagementHandler.Unlike)
	api.Post("/articles/:id/save", middleware.JWTProtected(cfg), engagementHandler.Save)
	api.Post("/articles/:id/unsave", middleware.JWTProtected(cfg), engagementHandler.Unsave)

	// Survey
	api.Get("/survey", surveyHandler.Questions)
	api.Post("/survey/answers", middleware.JWTProtected(cfg), surveyHandler.SubmitAnswers)

	// Admin moderation panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/articles/pending", moderationHandler.ListPending)
	admin.Put("/articles/:id/approve", moderationHandler.Approve)
	admin.Put("/articles/:id/reject", moderationHandler.Reject)
	admin.Post("/articles", moderationHandler.Create)
}
