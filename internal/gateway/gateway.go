// Package gateway defines the capability set the client core uses to reach
// the hosted backend, plus its HTTP implementation.
package gateway

import (
	"time"

	"github.com/newslens-app/newslens/internal/models"
)

// Identity is the authenticated principal as seen by the client. A nil
// *Identity means signed out.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	IsAdmin     bool
}

// ArticleQuery carries the feed filters. Empty sets match everything; an
// unspecified leaning is not sent.
type ArticleQuery struct {
	Topics     []models.Topic
	WordCounts []models.WordCount
	Leaning    models.PoliticalLeaning
	Limit      int
}

// ArticleDraft is the payload for creation and public submission.
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

// Gateway wraps every remote action the client performs. Fetches return
// (nil, nil) for absent entities; all transport and query failures surface
// as *BackendError.
type Gateway interface {
	FetchArticles(q ArticleQuery) ([]models.Article, error)
	FetchArticleByID(id string) (*models.Article, error)
	CreateArticle(draft ArticleDraft) (string, error)
	SubmitArticle(draft ArticleDraft) (string, error)
	Approve(id string) error
	Reject(id string) error

	Like(userID, articleID string) error
	Unlike(userID, articleID string) error
	Save(userID, articleID string) error
	Unsave(userID, articleID string) error

	// Share records the share and returns the canonical share link.
	Share(articleID string) (string, error)

	Register(email, password, displayName string) (*Identity, error)
	Login(email, password string) (*Identity, error)
	Logout() error

	// Subscribe registers an identity-change callback and invokes it
	// immediately with the current identity. The returned func removes the
	// subscription.
	Subscribe(fn func(*Identity)) func()

	Profile(uid string) (*models.User, error)
	SetPoliticalLeaning(uid string, leaning models.PoliticalLeaning) error
}
