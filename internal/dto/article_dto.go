package dto

import (
	"time"

	"github.com/newslens-app/newslens/internal/models"
)

// ArticleDraftRequest is shared by the public submission path and the admin
// creation path; only the latter honors PublishedDate.
type ArticleDraftRequest struct {
	Title            string                  `json:"title"`
	Content          string                  `json:"content"`
	Summary          string                  `json:"summary"`
	Author           string                  `json:"author"`
	Topics           []models.Topic          `json:"topics"`
	WordCount        models.WordCount        `json:"wordCount"`
	ImageURL         string                  `json:"imageUrl,omitempty"`
	PoliticalLeaning models.PoliticalLeaning `json:"politicalLeaning"`
	PublishedDate    time.Time               `json:"publishedDate,omitempty"`
}

type ArticleCreatedResponse struct {
	ID string `json:"id"`
}

type ArticleListResponse struct {
	Articles []models.Article `json:"articles"`
}

type PendingArticlesResponse struct {
	Articles []models.Article `json:"articles"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

type LeaningRequest struct {
	PoliticalLeaning models.PoliticalLeaning `json:"politicalLeaning"`
}

// ShareResponse carries the canonical share link, built server-side from the
// configured public base URL.
type ShareResponse struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

type SurveyAnswersRequest struct {
	Answers []models.PoliticalLeaning `json:"answers"`
}

type SurveyResultResponse struct {
	PoliticalLeaning models.PoliticalLeaning `json:"politicalLeaning"`
	SurveyCompleted  bool                    `json:"surveyCompleted"`
}
