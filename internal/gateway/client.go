package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/newslens-app/newslens/internal/dto"
	"github.com/newslens-app/newslens/internal/models"
)

// Client is the HTTP-backed Gateway. It keeps the bearer token pair and
// fans identity changes out to subscribers.
type Client struct {
	http *resty.Client

	mu           sync.Mutex
	identity     *Identity
	refreshToken string
	subscribers  map[int]func(*Identity)
	nextSub      int
}

func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(15 * time.Second),
		subscribers: make(map[int]func(*Identity)),
	}
}

func (c *Client) Subscribe(fn func(*Identity)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = fn
	current := c.identity
	c.mu.Unlock()

	// Initial resolution: the callback always fires once immediately.
	fn(current)

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

func (c *Client) setIdentity(identity *Identity, auth *dto.AuthResponse) {
	c.mu.Lock()
	c.identity = identity
	if auth != nil {
		c.refreshToken = auth.RefreshToken
		c.http.SetAuthToken(auth.AccessToken)
	} else {
		c.refreshToken = ""
		c.http.SetAuthToken("")
	}
	subs := make([]func(*Identity), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(identity)
	}
}

func (c *Client) Register(email, password, displayName string) (*Identity, error) {
	var auth dto.AuthResponse
	resp, err := c.http.R().
		SetBody(dto.RegisterRequest{Email: email, Password: password, DisplayName: displayName}).
		SetResult(&auth).
		Post("/api/auth/register")
	if err := wrap("register", resp, err); err != nil {
		return nil, err
	}

	identity := identityFromAuth(&auth)
	c.setIdentity(identity, &auth)
	return identity, nil
}

func (c *Client) Login(email, password string) (*Identity, error) {
	var auth dto.AuthResponse
	resp, err := c.http.R().
		SetBody(dto.LoginRequest{Email: email, Password: password}).
		SetResult(&auth).
		Post("/api/auth/login")
	if err := wrap("login", resp, err); err != nil {
		return nil, err
	}

	identity := identityFromAuth(&auth)
	c.setIdentity(identity, &auth)
	return identity, nil
}

func (c *Client) Logout() error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()

	var remoteErr error
	if refresh != "" {
		resp, err := c.http.R().
			SetBody(dto.LogoutRequest{RefreshToken: refresh}).
			Post("/api/auth/logout")
		remoteErr = wrap("logout", resp, err)
	}

	// Local sign-out happens regardless of the remote outcome.
	c.setIdentity(nil, nil)
	return remoteErr
}

func (c *Client) Profile(uid string) (*models.User, error) {
	var user models.User
	resp, err := c.http.R().
		SetResult(&user).
		Get("/api/auth/me")
	if err := wrap("fetch profile", resp, err); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) SetPoliticalLeaning(uid string, leaning models.PoliticalLeaning) error {
	resp, err := c.http.R().
		SetBody(dto.LeaningRequest{PoliticalLeaning: leaning}).
		Put("/api/auth/leaning")
	return wrap("update political leaning", resp, err)
}

func (c *Client) FetchArticles(q ArticleQuery) ([]models.Article, error) {
	req := c.http.R()

	if len(q.Topics) > 0 {
		parts := make([]string, len(q.Topics))
		for i, t := range q.Topics {
			parts[i] = string(t)
		}
		req.SetQueryParam("topics", strings.Join(parts, ","))
	}
	if len(q.WordCounts) > 0 {
		parts := make([]string, len(q.WordCounts))
		for i, w := range q.WordCounts {
			parts[i] = strconv.Itoa(int(w))
		}
		req.SetQueryParam("wordCounts", strings.Join(parts, ","))
	}
	if q.Leaning != "" && q.Leaning != models.LeaningUnspecified {
		req.SetQueryParam("leaning", string(q.Leaning))
	}
	if q.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(q.Limit))
	}

	var result dto.ArticleListResponse
	resp, err := req.SetResult(&result).Get("/api/articles")
	if err := wrap("fetch articles", resp, err); err != nil {
		return nil, err
	}
	return result.Articles, nil
}

func (c *Client) FetchArticleByID(id string) (*models.Article, error) {
	var article models.Article
	resp, err := c.http.R().
		SetResult(&article).
		Get("/api/articles/" + id)
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if err := wrap("fetch article", resp, err); err != nil {
		return nil, err
	}
	return &article, nil
}

func (c *Client) SubmitArticle(draft ArticleDraft) (string, error) {
	return c.postDraft("/api/articles/submit", "submit article", draft)
}

func (c *Client) CreateArticle(draft ArticleDraft) (string, error) {
	return c.postDraft("/api/admin/articles", "create article", draft)
}

func (c *Client) postDraft(path, op string, draft ArticleDraft) (string, error) {
	var created dto.ArticleCreatedResponse
	resp, err := c.http.R().
		SetBody(dto.ArticleDraftRequest{
			Title:            draft.Title,
			Content:          draft.Content,
			Summary:          draft.Summary,
			Author:           draft.Author,
			Topics:           draft.Topics,
			WordCount:        draft.WordCount,
			ImageURL:         draft.ImageURL,
			PoliticalLeaning: draft.PoliticalLeaning,
			PublishedDate:    draft.PublishedDate,
		}).
		SetResult(&created).
		Post(path)
	if err := wrap(op, resp, err); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (c *Client) Approve(id string) error {
	resp, err := c.http.R().Put("/api/admin/articles/" + id + "/approve")
	return wrap("approve article", resp, err)
}

func (c *Client) Reject(id string) error {
	resp, err := c.http.R().Put("/api/admin/articles/" + id + "/reject")
	return wrap("reject article", resp, err)
}

func (c *Client) Like(userID, articleID string) error {
	resp, err := c.http.R().Post("/api/articles/" + articleID + "/like")
	return wrap("like article", resp, err)
}

func (c *Client) Unlike(userID, articleID string) error {
	resp, err := c.http.R().Post("/api/articles/" + articleID + "/unlike")
	return wrap("unlike article", resp, err)
}

func (c *Client) Save(userID, articleID string) error {
	resp, err := c.http.R().Post("/api/articles/" + articleID + "/save")
	return wrap("save article", resp, err)
}

func (c *Client) Unsave(userID, articleID string) error {
	resp, err := c.http.R().Post("/api/articles/" + articleID + "/unsave")
	return wrap("unsave article", resp, err)
}

func (c *Client) Share(articleID string) (string, error) {
	var shared dto.ShareResponse
	resp, err := c.http.R().
		SetResult(&shared).
		Post("/api/articles/" + articleID + "/share")
	if err := wrap("share article", resp, err); err != nil {
		return "", err
	}
	return shared.Link, nil
}

func identityFromAuth(auth *dto.AuthResponse) *Identity {
	return &Identity{
		UID:         auth.User.ID.String(),
		Email:       auth.User.Email,
		DisplayName: auth.User.DisplayName,
		IsAdmin:     auth.User.IsAdmin,
	}
}

// wrap normalizes transport errors and non-2xx responses into BackendError.
func wrap(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &BackendError{Op: op, Err: err}
	}
	if resp.IsError() {
		var body dto.ErrorResponse
		if jsonErr := json.Unmarshal(resp.Body(), &body); jsonErr == nil && body.Message != "" {
			return &BackendError{Op: op, Err: fmt.Errorf("%s (status %d)", body.Message, resp.StatusCode())}
		}
		return &BackendError{Op: op, Err: errors.New("unexpected status " + resp.Status())}
	}
	return nil
}
