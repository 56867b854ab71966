package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is the profile document paired with an auth identity. JSON field
// names mirror the users collection schema and must not change.
type User struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string                      `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password         string                      `gorm:"not null" json:"-"`
	DisplayName      string                      `gorm:"size:100" json:"displayName,omitempty"`
	PoliticalLeaning PoliticalLeaning            `gorm:"size:20;not null;default:'unspecified'" json:"politicalLeaning"`
	SavedArticles    datatypes.JSONSlice[string] `json:"savedArticles"`
	LikedArticles    datatypes.JSONSlice[string] `json:"likedArticles"`
	SurveyCompleted  bool                        `gorm:"not null;default:false" json:"surveyCompleted"`
	IsAdmin          bool                        `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"-"`
	DeletedAt        gorm.DeletedAt              `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// HasLiked reports membership in the liked-set.
func (u *User) HasLiked(articleID string) bool {
	for _, id := range u.LikedArticles {
		if id == articleID {
			return true
		}
	}
	return false
}

// HasSaved reports membership in the saved-set.
func (u *User) HasSaved(articleID string) bool {
	for _, id := range u.SavedArticles {
		if id == articleID {
			return true
		}
	}
	return false
}
