// Package feed holds the filtered article list shown to the reader.
package feed

import (
	"sync"

	"github.com/newslens-app/newslens/internal/gateway"
	"github.com/newslens-app/newslens/internal/models"
	"github.com/newslens-app/newslens/internal/session"
)

// Feed recomputes its article list whenever the filter sets change or the
// session resolves a profile (whose leaning becomes an implied filter). The
// list is replaced wholesale on every refresh. Concurrent refreshes are not
// coalesced: whichever resolves last wins.
type Feed struct {
	mu         sync.Mutex
	gw         gateway.Gateway
	topics     []models.Topic
	wordCounts []models.WordCount
	leaning    models.PoliticalLeaning
	articles   []models.Article
	loading    bool
	err        error
	listeners  []func()
}

func New(gw gateway.Gateway, sess *session.Session) *Feed {
	f := &Feed{gw: gw}

	if sess != nil {
		sess.Watch(func(snap session.Snapshot) {
			if snap.State != session.StateAuthenticated || snap.Profile == nil {
				return
			}
			f.mu.Lock()
			changed := f.leaning != snap.Profile.PoliticalLeaning
			f.leaning = snap.Profile.PoliticalLeaning
			f.mu.Unlock()
			if changed {
				go f.Refresh()
			}
		})
	}

	return f
}

// OnChange registers a callback fired after every state change.
func (f *Feed) OnChange(fn func()) {
	f.mu.Lock()
	f.listeners = append(f.listeners, fn)
	f.mu.Unlock()
}

func (f *Feed) notify() {
	f.mu.Lock()
	listeners := append([]func(){}, f.listeners...)
	f.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// SetTopicFilters replaces the topic filter set and refreshes asynchronously.
func (f *Feed) SetTopicFilters(topics []models.Topic) {
	f.mu.Lock()
	f.topics = append([]models.Topic{}, topics...)
	f.mu.Unlock()
	go f.Refresh()
}

// SetWordCountFilters replaces the length filter set and refreshes asynchronously.
func (f *Feed) SetWordCountFilters(wordCounts []models.WordCount) {
	f.mu.Lock()
	f.wordCounts = append([]models.WordCount{}, wordCounts...)
	f.mu.Unlock()
	go f.Refresh()
}

// Refresh re-runs the feed query and replaces the result list. The error
// slot and the list are mutually exclusive.
func (f *Feed) Refresh() error {
	f.mu.Lock()
	f.loading = true
	f.err = nil
	query := gateway.ArticleQuery{
		Topics:     append([]models.Topic{}, f.topics...),
		WordCounts: append([]models.WordCount{}, f.wordCounts...),
		Leaning:    f.leaning,
	}
	f.mu.Unlock()
	f.notify()

	articles, err := f.gw.FetchArticles(query)

	f.mu.Lock()
	f.loading = false
	if err != nil {
		f.err = err
		f.articles = nil
	} else {
		f.err = nil
		f.articles = articles
	}
	f.mu.Unlock()
	f.notify()

	return err
}

// Articles returns a copy of the current result list.
func (f *Feed) Articles() []models.Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Article{}, f.articles...)
}

func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Feed) TopicFilters() []models.Topic {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Topic{}, f.topics...)
}

func (f *Feed) WordCountFilters() []models.WordCount {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.WordCount{}, f.wordCounts...)
}

func (f *Feed) Leaning() models.PoliticalLeaning {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.leaning
}

// AdjustLikes patches the cached like counter of an article, floored at 0.
// A miss is fine: the article may not be in the current list.
func (f *Feed) AdjustLikes(articleID string, delta int) {
	f.adjust(articleID, func(a *models.Article) {
		a.Likes += delta
		if a.Likes < 0 {
			a.Likes = 0
		}
	})
}

// AdjustShares patches the cached share counter of an article.
func (f *Feed) AdjustShares(articleID string) {
	f.adjust(articleID, func(a *models.Article) {
		a.Shares++
	})
}

func (f *Feed) adjust(articleID string, patch func(*models.Article)) {
	f.mu.Lock()
	for i := range f.articles {
		if f.articles[i].ID.String() == articleID {
			patch(&f.articles[i])
			break
		}
	}
	f.mu.Unlock()
	f.notify()
}
