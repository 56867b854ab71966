package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/newslens-app/newslens/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementService couples the per-user liked/saved sets with the article
// counters. The original two uncoupled document writes are wrapped in a
// single transaction here; a duplicate like is a no-op, so the counter moves
// exactly once per (user, article) pair.
type EngagementService struct {
	db *gorm.DB
}

func NewEngagementService(db *gorm.DB) *EngagementService {
	return &EngagementService{db: db}
}

func (s *EngagementService) Like(userID, articleID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		if user.HasLiked(articleID) {
			return nil
		}

		aid, err := uuid.Parse(articleID)
		if err != nil {
			return ErrArticleNotFound
		}
		var article models.Article
		if err := tx.First(&article, "id = ?", aid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrArticleNotFound
			}
			return fmt.Errorf("fetch article: %w", err)
		}

		user.LikedArticles = append(user.LikedArticles, articleID)
		if err := tx.Model(user).Update("liked_articles", user.LikedArticles).Error; err != nil {
			return fmt.Errorf("update liked set: %w", err)
		}
		return tx.Model(&models.Article{}).Where("id = ?", aid).
			Update("likes", gorm.Expr("likes + 1")).Error
	})
}

func (s *EngagementService) Unlike(userID, articleID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		if !user.HasLiked(articleID) {
			return nil
		}

		user.LikedArticles = remove(user.LikedArticles, articleID)
		if err := tx.Model(user).Update("liked_articles", user.LikedArticles).Error; err != nil {
			return fmt.Errorf("update liked set: %w", err)
		}
		// The stored counter must never be observed negative.
		return tx.Model(&models.Article{}).Where("id = ?", articleID).
			Update("likes", gorm.Expr("CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")).Error
	})
}

func (s *EngagementService) Save(userID, articleID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		if user.HasSaved(articleID) {
			return nil
		}
		user.SavedArticles = append(user.SavedArticles, articleID)
		return tx.Model(user).Update("saved_articles", user.SavedArticles).Error
	})
}

func (s *EngagementService) Unsave(userID, articleID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		if !user.HasSaved(articleID) {
			return nil
		}
		user.SavedArticles = remove(user.SavedArticles, articleID)
		return tx.Model(user).Update("saved_articles", user.SavedArticles).Error
	})
}

// Share bumps the share counter. No authentication involved.
func (s *EngagementService) Share(articleID string) error {
	aid, err := uuid.Parse(articleID)
	if err != nil {
		return ErrArticleNotFound
	}

	result := s.db.Model(&models.Article{}).Where("id = ?", aid).
		Update("shares", gorm.Expr("shares + 1"))
	if result.Error != nil {
		return fmt.Errorf("share article: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

// lockUser reads the user row FOR UPDATE so that two concurrent engagement
// transactions on the same user serialize on the liked/saved sets. Without
// the lock, two read-committed Like transactions would both see an empty
// liked-set and both bump the counter.
func lockUser(tx *gorm.DB, userID string) (*models.User, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	return &user, nil
}

func remove(ids []string, target string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
