package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/newslens-app/newslens/internal/models"
	"gorm.io/gorm"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrInvalidArticle  = errors.New("invalid article data")
)

// ArticleQuery describes the public feed filters. Empty sets mean no filter;
// all provided predicates combine with AND, the topic set with OR inside.
type ArticleQuery struct {
	Topics     []models.Topic
	WordCounts []models.WordCount
	Leaning    models.PoliticalLeaning
	Limit      int
}

// ArticleDraft carries the caller-supplied fields of a new article.
type ArticleDraft struct {
	Title            string
	Content          string
	Summary          string
	Author           string
	Topics           []models.Topic
	WordCount        models.WordCount
	ImageURL         string
	PoliticalLeaning models.PoliticalLeaning
	PublishedDate    time.Time
}

// ArticleService handles the articles collection: feed queries, creation,
// submission and the pending/approved/rejected lifecycle.
type ArticleService struct {
	db *gorm.DB
}

func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{db: db}
}

// List returns approved articles matching the query, newest first. An empty
// result is not an error.
func (s *ArticleService) List(q ArticleQuery) ([]models.Article, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	db := s.db.Where("status = ?", models.StatusApproved)
	if len(q.WordCounts) > 0 {
		db = db.Where("word_count IN ?", q.WordCounts)
	}
	if q.Leaning != "" && q.Leaning != models.LeaningUnspecified {
		db = db.Where("political_leaning = ?", q.Leaning)
	}
	db = db.Order("published_date DESC")

	// The topic predicate is a set intersection over a JSON column; it is
	// applied after the SQL predicates, so the limit can only be pushed
	// down when no topic filter is present.
	if len(q.Topics) == 0 {
		db = db.Limit(limit)
	}

	var articles []models.Article
	if err := db.Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("fetch articles: %w", err)
	}

	if len(q.Topics) > 0 {
		matched := make([]models.Article, 0, limit)
		for i := range articles {
			if articles[i].HasAnyTopic(q.Topics) {
				matched = append(matched, articles[i])
				if len(matched) == limit {
					break
				}
			}
		}
		articles = matched
	}

	return articles, nil
}

// GetByID returns the article or (nil, nil) when absent.
func (s *ArticleService) GetByID(id string) (*models.Article, error) {
	articleID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	var article models.Article
	if err := s.db.First(&article, "id = ?", articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch article: %w", err)
	}
	return &article, nil
}

// Create inserts an auto-approved article (privileged path).
func (s *ArticleService) Create(draft ArticleDraft) (string, error) {
	return s.insert(draft, models.StatusApproved)
}

// Submit inserts a pending article regardless of input (public path).
func (s *ArticleService) Submit(draft ArticleDraft) (string, error) {
	return s.insert(draft, models.StatusPending)
}

func (s *ArticleService) insert(draft ArticleDraft, status models.ArticleStatus) (string, error) {
	if err := validateDraft(&draft); err != nil {
		return "", err
	}

	published := draft.PublishedDate
	if published.IsZero() {
		published = time.Now().UTC()
	}

	article := models.Article{
		ID:               uuid.New(),
		Title:            draft.Title,
		Content:          draft.Content,
		Summary:          draft.Summary,
		Author:           draft.Author,
		PublishedDate:    published,
		Topics:           draft.Topics,
		WordCount:        draft.WordCount,
		ImageURL:         draft.ImageURL,
		PoliticalLeaning: draft.PoliticalLeaning,
		Status:           status,
	}

	if err := s.db.Create(&article).Error; err != nil {
		return "", fmt.Errorf("create article: %w", err)
	}
	return article.ID.String(), nil
}

func validateDraft(draft *ArticleDraft) error {
	if draft.Title == "" || draft.Content == "" {
		return fmt.Errorf("%w: title and content are required", ErrInvalidArticle)
	}
	if len(draft.Topics) == 0 {
		return fmt.Errorf("%w: at least one topic is required", ErrInvalidArticle)
	}
	for _, t := range draft.Topics {
		if !models.ValidTopic(t) {
			return fmt.Errorf("%w: unknown topic %q", ErrInvalidArticle, t)
		}
	}
	if !models.ValidWordCount(draft.WordCount) {
		return fmt.Errorf("%w: word count must be one of 50/100/250/500", ErrInvalidArticle)
	}
	if draft.PoliticalLeaning == "" {
		draft.PoliticalLeaning = models.LeaningUnspecified
	}
	if !models.ValidLeaning(draft.PoliticalLeaning) {
		return fmt.Errorf("%w: unknown political leaning %q", ErrInvalidArticle, draft.PoliticalLeaning)
	}
	return nil
}

// Approve transitions an article to approved. Idempotent.
func (s *ArticleService) Approve(id string) error {
	return s.setStatus(id, models.StatusApproved)
}

// Reject transitions an article to rejected. Idempotent.
func (s *ArticleService) Reject(id string) error {
	return s.setStatus(id, models.StatusRejected)
}

func (s *ArticleService) setStatus(id string, status models.ArticleStatus) error {
	articleID, err := uuid.Parse(id)
	if err != nil {
		return ErrArticleNotFound
	}

	var article models.Article
	if err := s.db.First(&article, "id = ?", articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("fetch article: %w", err)
	}

	if article.Status == status {
		return nil
	}
	return s.db.Model(&article).Update("status", status).Error
}

// ListPending returns pending submissions for the moderation panel.
func (s *ArticleService) ListPending(limit, offset int) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := s.db.Model(&models.Article{}).Where("status = ?", models.StatusPending)
	query.Count(&total)

	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&articles).Error

	return articles, total, err
}
