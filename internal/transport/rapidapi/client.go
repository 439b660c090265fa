// Package rapidapi fetches public profile data through a RapidAPI-hosted
// LinkedIn data provider.
package rapidapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hireloop/talentscout/internal/domain"
)

// ProfileResponse is the provider's profile payload. Every field is
// optional; absent keys decode to zero values.
type ProfileResponse struct {
	ID            json.Number      `json:"id"`
	URN           string           `json:"urn"`
	FirstName     string           `json:"firstName"`
	LastName      string           `json:"lastName"`
	Headline      string           `json:"headline"`
	Summary       string           `json:"summary"`
	Position      []PositionEntry  `json:"position"`
	FullPositions []PositionEntry  `json:"fullPositions"`
	Skills        []SkillEntry     `json:"skills"`
	Educations    []EducationEntry `json:"educations"`
}

// PositionEntry is one work experience record.
type PositionEntry struct {
	Title       string `json:"title"`
	CompanyName string `json:"companyName"`
}

// SkillEntry is one named skill.
type SkillEntry struct {
	Name string `json:"name"`
}

// EducationEntry is one education record.
type EducationEntry struct {
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	SchoolName   string `json:"schoolName"`
}

// StatusError reports a non-200 provider response for a username.
type StatusError struct {
	Username string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("profile %s: provider returned status %d", e.Username, e.Code)
}

func (e *StatusError) Unwrap() error { return domain.ErrProfileUnavailable }

// Config holds provider connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Host    string
	Timeout time.Duration
}

// Client calls the profile data provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	host       string
}

// NewClient creates a provider client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		host:       cfg.Host,
	}, nil
}

// FetchProfile retrieves one profile by username. A non-200 response maps
// to a StatusError wrapping domain.ErrProfileUnavailable so callers can
// skip unavailable profiles without aborting a batch.
func (c *Client) FetchProfile(ctx context.Context, username string) (*ProfileResponse, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	reqURL := c.baseURL + "?username=" + url.QueryEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	if c.host != "" {
		req.Header.Set("x-rapidapi-host", c.host)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile %s: %w: %w", username, domain.ErrProfileUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Username: username, Code: resp.StatusCode}
	}

	var profile ProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", username, err)
	}

	return &profile, nil
}
