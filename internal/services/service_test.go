package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/newslens-app/newslens/internal/config"
	"github.com/newslens-app/newslens/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens a uniquely named shared in-memory database so every
// connection in gorm's pool sees the same data.
func setupDB(t *testing.T) *gorm.DB {
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
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:               uuid.New(),
		Email:            email,
		Password:         string(hash),
		PoliticalLeaning: models.LeaningUnspecified,
		SavedArticles:    datatypes.JSONSlice[string]{},
		LikedArticles:    datatypes.JSONSlice[string]{},
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedArticle(t *testing.T, db *gorm.DB, mutate ...func(*models.Article)) *models.Article {
	t.Helper()

	article := models.Article{
		ID:               uuid.New(),
		Title:            "The State of the Grid",
		Content:          "Infrastructure spending is back on the agenda.",
		Summary:          "A look at grid investment.",
		Author:           "R. Ellis",
		PublishedDate:    time.Now().UTC(),
		Topics:           datatypes.JSONSlice[models.Topic]{models.TopicInfrastructure},
		WordCount:        models.WordCount100,
		PoliticalLeaning: models.LeaningModerate,
		Status:           models.StatusApproved,
	}
	for _, fn := range mutate {
		fn(&article)
	}
	require.NoError(t, db.Create(&article).Error)
	return &article
}
