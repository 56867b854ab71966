package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/newslens-app/newslens/internal/config"
	"github.com/newslens-app/newslens/internal/dto"
	"github.com/newslens-app/newslens/internal/handlers"
	"github.com/newslens-app/newslens/internal/models"
	"github.com/newslens-app/newslens/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.RefreshToken{},
		&models.SystemLog{},
	))

	cfg := &config.Config{
		JWTSecret:        "route-test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		AdminToken:       "moderator-token",
		PublicBaseURL:    "https://public.example.com",
	}

	authService := services.NewAuthService(db, cfg)
	articleService := services.NewArticleService(db)
	engagementService := services.NewEngagementService(db)

	app := fiber.New()
	Setup(app, cfg, db,
		handlers.NewAuthHandler(authService),
		handlers.NewArticleHandler(articleService),
		handlers.NewEngagementHandler(engagementService, cfg),
		handlers.NewModerationHandler(articleService),
		handlers.NewSurveyHandler(authService),
		handlers.NewHealthHandler(),
	)
	return app, db, cfg
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func register(t *testing.T, app *fiber.App, email string) dto.AuthResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email:    email,
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.AuthResponse](t, resp)
}

func TestSubmissionModerationFlow(t *testing.T) {
	app, _, cfg := setupApp(t)
	auth := register(t, app, "reader@example.com")

	// Public submission lands as pending.
	resp := doJSON(t, app, http.MethodPost, "/api/articles/submit", "", dto.ArticleDraftRequest{
		Title:     "Port Expansion Approved",
		Content:   "The council cleared the expansion plan.",
		Topics:    []models.Topic{models.TopicInfrastructure},
		WordCount: models.WordCount100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ArticleCreatedResponse](t, resp)

	// Not visible in the public feed yet.
	resp = doJSON(t, app, http.MethodGet, "/api/articles", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	feed := decode[dto.ArticleListResponse](t, resp)
	assert.Empty(t, feed.Articles)

	// Approve through the admin panel using the shared moderation token.
	req := httptest.NewRequest(http.MethodPut, "/api/admin/articles/"+created.ID+"/approve", nil)
	req.Header.Set("Authorization", "Bearer "+auth.AccessToken)
	req.Header.Set("X-Admin-Token", cfg.AdminToken)
	approveResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, approveResp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/articles", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	feed = decode[dto.ArticleListResponse](t, resp)
	require.Len(t, feed.Articles, 1)
	assert.Equal(t, created.ID, feed.Articles[0].ID.String())
}

func TestModerationRequiresAdmin(t *testing.T) {
	app, _, _ := setupApp(t)
	auth := register(t, app, "plain@example.com")

	resp := doJSON(t, app, http.MethodGet, "/api/admin/articles/pending", auth.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/admin/articles/pending", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEngagementEndpoints(t *testing.T) {
	app, db, _ := setupApp(t)
	auth := register(t, app, "reader@example.com")

	article := models.Article{
		ID:            uuid.New(),
		Title:         "Broadband Bill Passes",
		Content:       "Rural coverage funding doubles.",
		PublishedDate: time.Now().UTC(),
		WordCount:     models.WordCount50,
		Status:        models.StatusApproved,
	}
	require.NoError(t, db.Create(&article).Error)
	id := article.ID.String()

	// Like needs a token.
	resp := doJSON(t, app, http.MethodPost, "/api/articles/"+id+"/like", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/articles/"+id+"/like", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Share is public and returns the canonical link.
	resp = doJSON(t, app, http.MethodPost, "/api/articles/"+id+"/share", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	shared := decode[dto.ShareResponse](t, resp)
	assert.Equal(t, "https://public.example.com/article/"+id, shared.Link)

	var got models.Article
	require.NoError(t, db.First(&got, "id = ?", article.ID).Error)
	assert.Equal(t, 1, got.Likes)
	assert.Equal(t, 1, got.Shares)

	resp = doJSON(t, app, http.MethodPost, "/api/articles/"+id+"/unlike", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, db.First(&got, "id = ?", article.ID).Error)
	assert.Equal(t, 0, got.Likes)
}

func TestSurveyFlow(t *testing.T) {
	app, _, _ := setupApp(t)
	auth := register(t, app, "survey@example.com")

	resp := doJSON(t, app, http.MethodGet, "/api/survey", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/survey/answers", auth.AccessToken, dto.SurveyAnswersRequest{
		Answers: []models.PoliticalLeaning{
			models.LeaningGreen,
			models.LeaningGreen,
			models.LeaningModerate,
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[dto.SurveyResultResponse](t, resp)
	assert.Equal(t, models.LeaningGreen, result.PoliticalLeaning)

	// The profile now carries the survey outcome.
	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decode[models.User](t, resp)
	assert.Equal(t, models.LeaningGreen, profile.PoliticalLeaning)
	assert.True(t, profile.SurveyCompleted)
}

func TestArticleNotFound(t *testing.T) {
	app, _, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/articles/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
