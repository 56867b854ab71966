// Package engagement implements like/save/share as two-phase operations:
// a remote write, then a local reconciliation applied only on success.
package engagement

import (
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/newslens-app/newslens/internal/feed"
	"github.com/newslens-app/newslens/internal/gateway"
	"github.com/newslens-app/newslens/internal/models"
	"github.com/newslens-app/newslens/internal/session"
)

// Clipboard receives the shareable link. Copy failures are logged, never
// fatal: the share itself already succeeded remotely.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

type Operations struct {
	gw      gateway.Gateway
	session *session.Session
	feed    *feed.Feed
	clip    Clipboard
	baseURL string
}

func New(gw gateway.Gateway, sess *session.Session, f *feed.Feed, baseURL string) *Operations {
	return &Operations{
		gw:      gw,
		session: sess,
		feed:    f,
		clip:    systemClipboard{},
		baseURL: baseURL,
	}
}

// SetClipboard overrides the clipboard sink.
func (o *Operations) SetClipboard(clip Clipboard) {
	o.clip = clip
}

func (o *Operations) Like(articleID string) error {
	uid, err := o.authedUID()
	if err != nil {
		return err
	}
	if err := o.gw.Like(uid, articleID); err != nil {
		return err
	}
	o.feed.AdjustLikes(articleID, +1)
	o.session.Apply(session.Delta{Kind: session.DeltaLikeAdded, ArticleID: articleID})
	return nil
}

func (o *Operations) Unlike(articleID string) error {
	uid, err := o.authedUID()
	if err != nil {
		return err
	}
	if err := o.gw.Unlike(uid, articleID); err != nil {
		return err
	}
	o.feed.AdjustLikes(articleID, -1)
	o.session.Apply(session.Delta{Kind: session.DeltaLikeRemoved, ArticleID: articleID})
	return nil
}

func (o *Operations) Save(articleID string) error {
	uid, err := o.authedUID()
	if err != nil {
		return err
	}
	if err := o.gw.Save(uid, articleID); err != nil {
		return err
	}
	o.session.Apply(session.Delta{Kind: session.DeltaSaveAdded, ArticleID: articleID})
	return nil
}

func (o *Operations) Unsave(articleID string) error {
	uid, err := o.authedUID()
	if err != nil {
		return err
	}
	if err := o.gw.Unsave(uid, articleID); err != nil {
		return err
	}
	o.session.Apply(session.Delta{Kind: session.DeltaSaveRemoved, ArticleID: articleID})
	return nil
}

// Share records the share remotely, bumps the cached counter, and copies the
// share link to the clipboard. The backend supplies the canonical link; the
// configured base URL is only a fallback. No identity required.
func (o *Operations) Share(articleID string) error {
	link, err := o.gw.Share(articleID)
	if err != nil {
		return err
	}
	o.feed.AdjustShares(articleID)

	if link == "" {
		link = o.baseURL + "/article/" + articleID
	}
	if err := o.clip.WriteAll(link); err != nil {
		slog.Warn("clipboard copy failed", "article_id", articleID, "error", err)
	}
	return nil
}

// SavedArticles resolves the profile's saved-set into articles. Saved ids
// are weak references: an article deleted or rejected after saving resolves
// to nothing and is dropped from the result, never treated as fatal.
func (o *Operations) SavedArticles() ([]models.Article, error) {
	snap := o.session.Snapshot()
	if snap.State != session.StateAuthenticated {
		return nil, session.ErrNotAuthenticated
	}
	if snap.Profile == nil {
		return nil, nil
	}

	articles := make([]models.Article, 0, len(snap.Profile.SavedArticles))
	for _, id := range snap.Profile.SavedArticles {
		article, err := o.gw.FetchArticleByID(id)
		if err != nil {
			slog.Warn("saved article lookup failed", "article_id", id, "error", err)
			continue
		}
		if article == nil {
			continue
		}
		articles = append(articles, *article)
	}
	return articles, nil
}

// IsLiked reports whether the current profile's liked-set holds the id.
func (o *Operations) IsLiked(articleID string) bool {
	snap := o.session.Snapshot()
	return snap.Profile != nil && snap.Profile.HasLiked(articleID)
}

// IsSaved reports whether the current profile's saved-set holds the id.
func (o *Operations) IsSaved(articleID string) bool {
	snap := o.session.Snapshot()
	return snap.Profile != nil && snap.Profile.HasSaved(articleID)
}

func (o *Operations) authedUID() (string, error) {
	snap := o.session.Snapshot()
	if snap.State != session.StateAuthenticated {
		return "", session.ErrNotAuthenticated
	}
	return snap.Identity.UID, nil
}
