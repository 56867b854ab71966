package services

import (
	"sync"
	"testing"

	"github.com/newslens-app/newslens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeUnlikeRoundTrip(t *testing.T) {
	db := setupDB(t)
	svc := NewEngagementService(db)

	user := seedUser(t, db, "reader@example.com")
	article := seedArticle(t, db)
	articleID := article.ID.String()

	require.NoError(t, svc.Like(user.ID.String(), articleID))

	var got models.Article
	require.NoError(t, db.First(&got, "id = ?", article.ID).Error)
	assert.Equal(t, 1, got.Likes)

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, "id = ?", user.ID).Error)
	assert.True(t, gotUser.HasLiked(articleID))

	require.NoError(t, svc.Unlike(user.ID.String(), articleID))

	require.NoError(t, db.First(&got, "id = ?", article.ID).Error)
	assert.Equal(t, 0, got.Likes)
	require.NoError(t, db.First(&gotUser, "id = ?", user.ID).Error)
	assert.False(t, gotUser.HasLiked(articleID))
}

func TestDoubleLikeMovesCounterOnce(t *testing.T) {
	db := setupDB(t)
	svc := NewEngagementService(db)

	user := seedUser(t, db, "reader@example.com")
	article := seedArticle(t, db)

	require.NoError(t, svc.Like(user.ID.String(), article.ID.String()))
	require.NoError(t, svc.Like(user.ID.String(), article.ID.String()))

	var got models.Article
	require.NoError(t, db.First(&got, "id = ?", article.ID).Error)
	assert.Equal(t, 1, got.Likes)

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, "id = ?", user.ID).Error)
	assert.Len(t, gotUser.LikedArticles, 1)
}

func TestConcurrentDuplicateLikes(t *testing.T) {
	db := setupDB(t)
	svc := NewEngagementService(db)

	user := seedUser(t, db, "reader@example.com")
	article := seedArticle(t, db)

	// Two in-flight likes from the same user serialize on the locked user
	// row, so the counter moves exactly once.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.Like(user.ID.String(), article.ID.String())
		}()
	}
	wg.Wait()

	var got models.Article
	require.NoError(t, db.First(&got, "id = ?", article.ID).Error)
	assert.Equal(t, 1, got.Likes)

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, "id = ?", user.ID).Error)
	assert.Len(t, gotUser.LikedArticles, 1)
}

func TestUnlikeWithoutLikeIsNoop(t *testing.T) {
	db := setupDB(t)
	svc := NewEngagementService(db)

	user := seedUser(t, db, "reader@example.com")
	article := seedArticle(t, db, func(a *models.Article) { a.Likes = 3 })

	require.NoError(t, svc.Unlike(user.ID.String(), article.ID.String()))

	var got models.Article
	require.NoError(t, db.First(&got, "id = ?", article.ID).Error)
	assert.Equal(t, 3, got.Likes)
}

func TestUnlikeNeverGoesNegative(t *testing.T) {
	db := setupDB(t)
	svc := NewEngagementService(db)

	article := seedArticle(t, db) // likes starts at 0
	user := seedUser(t, db, "reader@example.com")

	// Liked-set and counter out of sync: the counter still floors at 0.
	user.LikedArticles = append(user.LikedArticles, article.ID.String())
	require.NoError(t, db.Model(user).Update("liked_articles", user.LikedArticles).Error)

	require.NoError(t, svc.Unlike(user.ID.String(), article.ID.String()))

	var got models.Article
	require.NoError(t, db.First(&got, "id = ?", article.ID).Error)
	assert.Equal(t, 0, got.Likes)
}

func TestLikeUnknownArticle(t *testing.T) {
	db := setupDB(t)
	svc := NewEngagementService(db)

	user := seedUser(t, db, "reader@example.com")

	err := svc.Like(user.ID.String(), "8f14e45f-ceea-467f-a0f6-dd7c6b9e3a01")
	assert.ErrorIs(t, err, ErrArticleNotFound)

	err = svc.Like("not-a-uuid", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSaveUnsaveRoundTrip(t *testing.T) {
	db := setupDB(t)
	svc := NewEngagementService(db)

	user := seedUser(t, db, "reader@example.com")
	article := seedArticle(t, db)
	articleID := article.ID.String()

	require.NoError(t, svc.Save(user.ID.String(), articleID))
	require.NoError(t, svc.Save(user.ID.String(), articleID)) // duplicate no-op

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, "id = ?", user.ID).Error)
	assert.Len(t, gotUser.SavedArticles, 1)
	assert.True(t, gotUser.HasSaved(articleID))

	require.NoError(t, svc.Unsave(user.ID.String(), articleID))

	require.NoError(t, db.First(&gotUser, "id = ?", user.ID).Error)
	assert.False(t, gotUser.HasSaved(articleID))
}

func TestShareIncrements(t *testing.T) {
	db := setupDB(t)
	svc := NewEngagementService(db)

	article := seedArticle(t, db)

	require.NoError(t, svc.Share(article.ID.String()))
	require.NoError(t, svc.Share(article.ID.String()))

	var got models.Article
	require.NoError(t, db.First(&got, "id = ?", article.ID).Error)
	assert.Equal(t, 2, got.Shares)
}

func TestShareUnknownArticle(t *testing.T) {
	db := setupDB(t)
	svc := NewEngagementService(db)

	assert.ErrorIs(t, svc.Share("8f14e45f-ceea-467f-a0f6-dd7c6b9e3a01"), ErrArticleNotFound)
	assert.ErrorIs(t, svc.Share("garbage"), ErrArticleNotFound)
}
