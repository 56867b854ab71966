package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Article is a publishable unit in the articles collection. Only approved
// articles are ever returned by the public feed.
type Article struct {
	ID               uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string                     `gorm:"size:255;not null" json:"title"`
	Content          string                     `gorm:"type:text;not null" json:"content"`
	Summary          string                     `gorm:"size:1000" json:"summary"`
	Author           string                     `gorm:"size:100" json:"author"`
	PublishedDate    time.Time                  `gorm:"not null;index" json:"publishedDate"`
	Topics           datatypes.JSONSlice[Topic] `json:"topics"`
	WordCount        WordCount                  `gorm:"not null" json:"wordCount"`
	ImageURL         string                     `gorm:"size:500" json:"imageUrl,omitempty"`
	Likes            int                        `gorm:"not null;default:0" json:"likes"`
	Shares           int                        `gorm:"not null;default:0" json:"shares"`
	PoliticalLeaning PoliticalLeaning           `gorm:"size:20;not null;default:'unspecified'" json:"politicalLeaning"`
	Status           ArticleStatus              `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt        time.Time                  `json:"-"`
	UpdatedAt        time.Time                  `json:"-"`
	DeletedAt        gorm.DeletedAt             `gorm:"index" json:"-"`
}

func (Article) TableName() string { return "articles" }

// HasAnyTopic reports whether the article's topic set intersects the filter.
func (a *Article) HasAnyTopic(filter []Topic) bool {
	for _, want := range filter {
		for _, t := range a.Topics {
			if t == want {
				return true
			}
		}
	}
	return false
}
