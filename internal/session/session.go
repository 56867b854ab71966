// Package session tracks the current authenticated identity and its profile
// document.
package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/newslens-app/newslens/internal/gateway"
	"github.com/newslens-app/newslens/internal/models"
	"github.com/newslens-app/newslens/internal/survey"
)

// ErrNotAuthenticated is returned by operations that require an identity.
var ErrNotAuthenticated = errors.New("not authenticated")

type State int

const (
	// StateResolving is the initial state, before the first identity
	// callback fires. It is never re-entered.
	StateResolving State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "resolving"
	}
}

// Snapshot is a read-only copy of the session. Profile may be nil even when
// authenticated: a failed profile fetch degrades profile-dependent features
// but leaves the identity valid.
type Snapshot struct {
	State    State
	Identity *gateway.Identity
	Profile  *models.User
}

// DeltaKind enumerates profile id-set changes produced by engagement
// operations.
type DeltaKind int

const (
	DeltaLikeAdded DeltaKind = iota
	DeltaLikeRemoved
	DeltaSaveAdded
	DeltaSaveRemoved
)

// Delta is a message describing one id-set change; engagement operations
// return these instead of reaching into the shared profile.
type Delta struct {
	Kind      DeltaKind
	ArticleID string
}

type Session struct {
	mu       sync.Mutex
	gw       gateway.Gateway
	state    State
	identity *gateway.Identity
	profile  *models.User
	watchers []func(Snapshot)

	unsubscribe func()
}

// New subscribes to the gateway's identity changes. The session starts in
// StateResolving and transitions on the first callback.
func New(gw gateway.Gateway) *Session {
	s := &Session{gw: gw, state: StateResolving}
	s.unsubscribe = gw.Subscribe(s.onIdentity)
	return s
}

// Close detaches from the gateway.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func (s *Session) onIdentity(identity *gateway.Identity) {
	var profile *models.User
	if identity != nil {
		p, err := s.gw.Profile(identity.UID)
		if err != nil {
			// Soft failure: stay authenticated with an absent profile.
			slog.Warn("profile fetch failed", "user_id", identity.UID, "error", err)
		} else {
			profile = p
		}
	}

	s.mu.Lock()
	s.identity = identity
	s.profile = profile
	if identity == nil {
		s.state = StateAnonymous
	} else {
		s.state = StateAuthenticated
	}
	snap := s.snapshotLocked()
	watchers := append([]func(Snapshot){}, s.watchers...)
	s.mu.Unlock()

	for _, w := range watchers {
		w(snap)
	}
}

// Watch registers a callback invoked after every state or profile change.
func (s *Session) Watch(fn func(Snapshot)) {
	s.mu.Lock()
	s.watchers = append(s.watchers, fn)
	s.mu.Unlock()
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state}
	if s.identity != nil {
		id := *s.identity
		snap.Identity = &id
	}
	if s.profile != nil {
		p := *s.profile
		p.SavedArticles = append(p.SavedArticles[:0:0], p.SavedArticles...)
		p.LikedArticles = append(p.LikedArticles[:0:0], p.LikedArticles...)
		snap.Profile = &p
	}
	return snap
}

// SetPoliticalLeaning applies the leaning to the in-memory profile first,
// then persists it. The optimistic update is kept even when the remote
// write fails; the error is surfaced to the caller.
func (s *Session) SetPoliticalLeaning(leaning models.PoliticalLeaning) error {
	s.mu.Lock()
	if s.state != StateAuthenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	uid := s.identity.UID
	if s.profile != nil {
		s.profile.PoliticalLeaning = leaning
		s.profile.SurveyCompleted = true
	}
	snap := s.snapshotLocked()
	watchers := append([]func(Snapshot){}, s.watchers...)
	s.mu.Unlock()

	for _, w := range watchers {
		w(snap)
	}

	return s.gw.SetPoliticalLeaning(uid, leaning)
}

// CompleteSurvey scores the answers by plurality and stores the outcome.
func (s *Session) CompleteSurvey(answers []models.PoliticalLeaning) (models.PoliticalLeaning, error) {
	leaning := survey.Score(answers)
	return leaning, s.SetPoliticalLeaning(leaning)
}

// Apply folds an engagement delta into the profile's id-sets. Unknown
// sessions (no profile) ignore deltas.
func (s *Session) Apply(d Delta) {
	s.mu.Lock()
	if s.profile == nil {
		s.mu.Unlock()
		return
	}

	switch d.Kind {
	case DeltaLikeAdded:
		if !s.profile.HasLiked(d.ArticleID) {
			s.profile.LikedArticles = append(s.profile.LikedArticles, d.ArticleID)
		}
	case DeltaLikeRemoved:
		s.profile.LikedArticles = removeID(s.profile.LikedArticles, d.ArticleID)
	case DeltaSaveAdded:
		if !s.profile.HasSaved(d.ArticleID) {
			s.profile.SavedArticles = append(s.profile.SavedArticles, d.ArticleID)
		}
	case DeltaSaveRemoved:
		s.profile.SavedArticles = removeID(s.profile.SavedArticles, d.ArticleID)
	}

	snap := s.snapshotLocked()
	watchers := append([]func(Snapshot){}, s.watchers...)
	s.mu.Unlock()

	for _, w := range watchers {
		w(snap)
	}
}

func removeID(ids []string, target string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
