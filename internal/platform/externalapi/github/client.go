package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"devsocial_backend/internal/feature/profile/domain/entity"
	"devsocial_backend/internal/feature/profile/usecase"
	"devsocial_backend/internal/platform/externalapi/github/dto"
	"devsocial_backend/internal/shared/ratelimiter"
)

// reposPerUser is how many of the most recently created repos are returned.
const reposPerUser = 5

// Client fetches repositories from the GitHub REST API.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// Clientがusecase.RepoFinderを実装していることをコンパイル時に検証します。
var _ usecase.RepoFinder = (*Client)(nil)

// NewClient returns a Client. A nil limiter disables throttling.
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	if limiter == nil {
		limiter = ratelimiter.NewRateLimiter(0, 0)
	}
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// GetRepos returns the most recently created public repositories of username.
// Any non-200 answer is reported as usecase.ErrGitHubUserNotFound.
func (c *Client) GetRepos(ctx context.Context, username string) ([]entity.Repo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("per_page", fmt.Sprint(reposPerUser))
	q.Set("sort", "created")
	q.Set("direction", "desc")
	u := fmt.Sprintf("%s/users/%s/repos?%s", strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(username), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		slog.Info("github repos lookup rejected", "username", username, "status", res.StatusCode)
		return nil, usecase.ErrGitHubUserNotFound
	}

	var body []dto.RepoResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode github repos: %w", err)
	}

	repos := make([]entity.Repo, 0, len(body))
	for _, r := range body {
		repos = append(repos, entity.Repo{
			ID:              r.ID,
			Name:            r.Name,
			FullName:        r.FullName,
			HTMLURL:         r.HTMLURL,
			Description:     deref(r.Description),
			Language:        deref(r.Language),
			StargazersCount: r.StargazersCount,
			WatchersCount:   r.WatchersCount,
			ForksCount:      r.ForksCount,
			CreatedAt:       r.CreatedAt,
		})
	}
	return repos, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
