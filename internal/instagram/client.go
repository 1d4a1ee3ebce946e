// Package instagram proxies the studio's Instagram feed for the site footer.
// The feed is decorative: any upstream problem degrades to an empty list and
// the frontend falls back to its demo images.
package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mianvisuals/studio-api/internal/config"
	"github.com/rs/zerolog"
)

const (
	graphBaseURL = "https://graph.instagram.com"
	postLimit    = 12
)

// Post is one feed entry, shaped for the frontend.
type Post struct {
	ID        string `json:"id"`
	MediaURL  string `json:"media_url"`
	Permalink string `json:"permalink"`
	Caption   string `json:"caption,omitempty"`
	Timestamp string `json:"timestamp"`
	MediaType string `json:"media_type,omitempty"`
}

type feedResponse struct {
	Data []Post `json:"data"`
}

// Client fetches recent media through the Instagram Graph API.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	userID  string
	logger  zerolog.Logger
}

// NewClient creates a Client. Missing credentials are not an error; the
// client then serves an empty feed.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: graphBaseURL,
		token:   cfg.Instagram.AccessToken,
		userID:  cfg.Instagram.UserID,
		logger:  logger.With().Str("component", "instagram").Logger(),
	}
}

// RecentPosts returns up to 12 recent posts. It never fails: missing
// credentials, upstream errors, and malformed responses all yield an empty
// slice.
func (c *Client) RecentPosts(ctx context.Context) []Post {
	if c.token == "" || c.userID == "" {
		return nil
	}

	q := url.Values{}
	q.Set("fields", "id,media_url,permalink,caption,timestamp,media_type")
	q.Set("access_token", c.token)
	q.Set("limit", fmt.Sprint(postLimit))
	endpoint := fmt.Sprintf("%s/%s/media?%s", c.baseURL, url.PathEscape(c.userID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("instagram feed fetch failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("instagram feed returned non-200")
		return nil
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		c.logger.Warn().Err(err).Msg("failed to decode instagram feed")
		return nil
	}

	return feed.Data
}
