package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	ghapi "github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/repository"
)

// DefaultHost is the GitHub hostname used when none is configured
const DefaultHost = "github.com"

// DefaultTimeout bounds the single release lookup
const DefaultTimeout = 30 * time.Second

// acceptHeader is the media type GitHub recommends for REST v3 calls
const acceptHeader = "application/vnd.github+json"

// ReleaseFetcher interface allows mocking the release lookup for testing
type ReleaseFetcher interface {
	LatestRelease(ctx context.Context, repo repository.Repository) (*Release, error)
}

// ReleaseClient looks up releases through the GitHub REST API
type ReleaseClient struct {
	http *http.Client
	opts ClientOptions
}

// ClientOptions configures the API client
type ClientOptions struct {
	// Host is the GitHub hostname (default: github.com)
	Host string

	// BaseURL overrides the REST API root derived from Host
	BaseURL string

	// Token is sent as a bearer token when non-empty
	Token string

	// UserAgent identifies the client to GitHub
	UserAgent string

	// Timeout bounds the whole request (default: 30s)
	Timeout time.Duration

	// HTTPClient replaces the default client; its Timeout is left untouched
	HTTPClient *http.Client
}

// NewReleaseClient creates a new API client with the given options
func NewReleaseClient(opts ClientOptions) *ReleaseClient {
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &ReleaseClient{http: client, opts: opts}
}

// RESTBaseURL returns the REST API root for a GitHub host.
// github.com is served from api.github.com; Enterprise Server hosts serve /api/v3.
func RESTBaseURL(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" || host == DefaultHost || host == "api.github.com" {
		return "https://api.github.com"
	}
	return fmt.Sprintf("https://%s/api/v3", host)
}

func (c *ReleaseClient) baseURL() string {
	if c.opts.BaseURL != "" {
		return strings.TrimRight(c.opts.BaseURL, "/")
	}
	return RESTBaseURL(c.opts.Host)
}

// LatestReleaseURL returns the releases/latest endpoint for a repository
func (c *ReleaseClient) LatestReleaseURL(repo repository.Repository) string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL(), repo.Owner, repo.Name)
}

// LatestRelease fetches the latest published release of repo.
// A release without a tag name is an error; nothing is retried.
func (c *ReleaseClient) LatestRelease(ctx context.Context, repo repository.Repository) (*Release, error) {
	resource := repo.Owner + "/" + repo.Name

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.LatestReleaseURL(repo), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, WrapError("fetch latest release", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, WrapError("fetch latest release", resource, ghapi.HandleHTTPError(resp))
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to parse latest release of %s: %w", resource, err)
	}

	release.TagName = strings.TrimSpace(release.TagName)
	if release.TagName == "" {
		return nil, &APIError{Operation: "fetch latest release", Resource: resource, Err: ErrMissingTag}
	}

	return &release, nil
}

// ParseRepo parses an upstream repository identifier. It accepts OWNER/REPO,
// HOST/OWNER/REPO and repository URLs.
func ParseRepo(s string) (repository.Repository, error) {
	repo, err := repository.Parse(strings.TrimSpace(s))
	if err != nil {
		return repository.Repository{}, fmt.Errorf("invalid repository %q: %w", s, err)
	}
	return repo, nil
}
