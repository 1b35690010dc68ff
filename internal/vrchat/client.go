// Package vrchat is a thin client for the VRChat web API endpoints the
// collector needs: keyword search, creator listings, and single-world
// fetches for history snapshots.
package vrchat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"worldfeed/internal/config"
	"worldfeed/internal/world"
)

// ErrUnauthorized indicates the API rejected the configured credentials.
var ErrUnauthorized = errors.New("vrchat: unauthorized")

// maxPageSize is the upstream cap on the n query parameter.
const maxPageSize = 100

// Client issues authenticated requests against the VRChat API.
type Client struct {
	baseURL    string
	userAgent  string
	authCookie string
	username   string
	password   string
	pageSize   int
	httpClient *http.Client
}

// NewClient builds a client from configuration. Cookie auth wins over basic
// auth when both are set.
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.VRChat.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pageSize := cfg.VRChat.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.VRChat.BaseURL, "/"),
		userAgent:  cfg.VRChat.UserAgent,
		authCookie: cfg.VRChat.AuthCookie,
		username:   cfg.VRChat.Username,
		password:   cfg.VRChat.Password,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SearchWorlds fetches up to limit worlds matching keyword, paging through
// the search endpoint until the limit is reached or a short page ends the
// listing.
func (c *Client) SearchWorlds(ctx context.Context, keyword string, limit int) ([]world.Record, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.New("vrchat: search keyword is required")
	}
	return c.listWorlds(ctx, url.Values{"search": []string{keyword}}, limit)
}

// UserWorlds fetches up to limit worlds created by userID.
func (c *Client) UserWorlds(ctx context.Context, userID string, limit int) ([]world.Record, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("vrchat: user id is required")
	}
	return c.listWorlds(ctx, url.Values{
		"userId":        []string{userID},
		"releaseStatus": []string{"public"},
		"sort":          []string{"publicationDate"},
	}, limit)
}

// FetchWorld retrieves the current metadata of a single world.
func (c *Client) FetchWorld(ctx context.Context, worldID string) (world.Record, error) {
	worldID = strings.TrimSpace(worldID)
	if worldID == "" {
		return world.Record{}, errors.New("vrchat: world id is required")
	}

	var rec world.Record
	if err := c.getJSON(ctx, c.baseURL+"/worlds/"+url.PathEscape(worldID), &rec); err != nil {
		return world.Record{}, err
	}
	return rec, nil
}

func (c *Client) listWorlds(ctx context.Context, params url.Values, limit int) ([]world.Record, error) {
	if limit <= 0 {
		limit = c.pageSize
	}

	var all []world.Record
	for offset := 0; len(all) < limit; {
		n := c.pageSize
		if remaining := limit - len(all); remaining < n {
			n = remaining
		}

		query := url.Values{}
		for key, values := range params {
			query[key] = values
		}
		query.Set("n", strconv.Itoa(n))
		query.Set("offset", strconv.Itoa(offset))

		var page []world.Record
		if err := c.getJSON(ctx, c.baseURL+"/worlds?"+query.Encode(), &page); err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < n {
			break
		}
		offset += len(page)
	}
	return all, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.authCookie != "" {
		req.Header.Set("Cookie", c.authCookie)
	} else if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vrchat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("vrchat request failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
