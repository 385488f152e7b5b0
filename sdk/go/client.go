// Package sdk provides typed Go access to the GreenKit HTTP + WebSocket API.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Option configures the Client.
type Option func(*Client)

// Client provides typed access to the GreenKit HTTP + WebSocket API.
type Client struct {
	baseURL    string
	wsURL      string
	httpClient *http.Client
	headers    http.Header
}

// NewClient constructs a new SDK client targeting the given baseURL (e.g., http://localhost:8080/api).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("baseURL is required")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	c := &Client{
		baseURL:    baseURL,
		wsURL:      deriveWSURL(baseURL),
		httpClient: http.DefaultClient,
		headers:    make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithAuthToken adds an Authorization: Bearer token header to all requests (HTTP + WS).
func WithAuthToken(token string) Option {
	return func(c *Client) {
		if strings.TrimSpace(token) != "" {
			c.headers.Set("Authorization", "Bearer "+token)
		}
	}
}

// WithAPIKey adds an X-API-Key header.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		if strings.TrimSpace(key) != "" {
			c.headers.Set("X-API-Key", key)
		}
	}
}

// WithHeader sets an arbitrary header applied to HTTP and WS calls.
func WithHeader(k, v string) Option {
	return func(c *Client) {
		if k != "" {
			c.headers.Set(k, v)
		}
	}
}

// RecordActivity reports a completed activity and returns the payout applied.
func (c *Client) RecordActivity(ctx context.Context, userID, role, action string) (Payout, error) {
	if strings.TrimSpace(userID) == "" {
		return Payout{}, ErrEmptyUserID
	}
	u := fmt.Sprintf("%s/users/%s/activities", c.baseURL, url.PathEscape(userID))
	var out Payout
	if err := c.post(ctx, u, map[string]any{"role": role, "action": action}, &out); err != nil {
		return Payout{}, err
	}
	return out, nil
}

// AddXP grants experience to a user and returns the new XP total.
func (c *Client) AddXP(ctx context.Context, userID, role string, amount int64, reason string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, ErrEmptyUserID
	}
	u := fmt.Sprintf("%s/users/%s/xp", c.baseURL, url.PathEscape(userID))
	var out struct {
		Total int64 `json:"total"`
	}
	if err := c.post(ctx, u, map[string]any{"role": role, "amount": amount, "reason": reason}, &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}

// Credit grants points plus an explicit XP amount (zero for none) in one call.
func (c *Client) Credit(ctx context.Context, userID, role string, points, xp int64, reason string) (Progress, error) {
	if strings.TrimSpace(userID) == "" {
		return Progress{}, ErrEmptyUserID
	}
	u := fmt.Sprintf("%s/users/%s/points", c.baseURL, url.PathEscape(userID))
	var out Progress
	if err := c.post(ctx, u, map[string]any{"role": role, "points": points, "xp": xp, "reason": reason}, &out); err != nil {
		return Progress{}, err
	}
	return out, nil
}

// Spend deducts points. OK is false when the balance cannot cover the amount.
func (c *Client) Spend(ctx context.Context, userID, role string, amount int64, reason string) (SpendResult, error) {
	if strings.TrimSpace(userID) == "" {
		return SpendResult{}, ErrEmptyUserID
	}
	u := fmt.Sprintf("%s/users/%s/points/spend", c.baseURL, url.PathEscape(userID))
	var out SpendResult
	if err := c.post(ctx, u, map[string]any{"role": role, "amount": amount, "reason": reason}, &out); err != nil {
		return SpendResult{}, err
	}
	return out, nil
}

// Redeem unlocks a catalog reward. OK is false when the reward is already
// unlocked, costs more than the balance, or belongs to another role.
func (c *Client) Redeem(ctx context.Context, userID, role, rewardID string) (SpendResult, error) {
	if strings.TrimSpace(userID) == "" {
		return SpendResult{}, ErrEmptyUserID
	}
	u := fmt.Sprintf("%s/users/%s/rewards/%s/redeem", c.baseURL, url.PathEscape(userID), url.PathEscape(rewardID))
	var out SpendResult
	if err := c.post(ctx, u, map[string]any{"role": role}, &out); err != nil {
		return SpendResult{}, err
	}
	return out, nil
}

// GetUser fetches the progress overview for a user.
func (c *Client) GetUser(ctx context.Context, userID string) (Overview, error) {
	if strings.TrimSpace(userID) == "" {
		return Overview{}, ErrEmptyUserID
	}
	u := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID))
	var out Overview
	if err := c.get(ctx, u, &out); err != nil {
		return Overview{}, err
	}
	return out, nil
}

// Levels fetches the ladder for a role.
func (c *Client) Levels(ctx context.Context, role string) ([]Level, error) {
	u := fmt.Sprintf("%s/levels/%s", c.baseURL, url.PathEscape(role))
	var out []Level
	if err := c.get(ctx, u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Rewards fetches the reward catalog for a role.
func (c *Client) Rewards(ctx context.Context, role string) ([]Reward, error) {
	u := fmt.Sprintf("%s/rewards/%s", c.baseURL, url.PathEscape(role))
	var out []Reward
	if err := c.get(ctx, u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Leaderboard fetches the top n XP standings; userID, when non-empty, asks
// for that user's rank as well.
func (c *Client) Leaderboard(ctx context.Context, n int, userID string) (Leaderboard, error) {
	u, err := url.Parse(c.baseURL + "/leaderboard")
	if err != nil {
		return Leaderboard{}, err
	}
	q := u.Query()
	if n > 0 {
		q.Set("n", fmt.Sprintf("%d", n))
	}
	if userID != "" {
		q.Set("user", userID)
	}
	u.RawQuery = q.Encode()

	var out Leaderboard
	if err := c.get(ctx, u.String(), &out); err != nil {
		return Leaderboard{}, err
	}
	return out, nil
}

// Health probes /healthz and returns status + storage check.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var hs HealthStatus
	if err := c.get(ctx, c.baseURL+"/healthz", &hs); err != nil {
		return HealthStatus{}, err
	}
	return hs, nil
}

// SubscribeEvents connects to the WebSocket stream and emits Event values.
// The returned channel closes when ctx is done or the connection drops.
func (c *Client) SubscribeEvents(ctx context.Context) (<-chan Event, error) {
	if c.wsURL == "" {
		return nil, errors.New("wsURL is not set; ensure baseURL is http/https")
	}
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}
	conn, _, err := dialer.DialContext(ctx, c.wsURL, c.headers)
	if err != nil {
		return nil, err
	}

	out := make(chan Event, 32)
	go func() {
		defer close(out)
		defer conn.Close()
		for {
			select {
			case <-ctx.Done():
				return
			default:
				var evt Event
				if err := conn.ReadJSON(&evt); err != nil {
					return
				}
				select {
				case out <- evt:
				default:
					// drop if consumer is slow
				}
			}
		}
	}()
	return out, nil
}

func (c *Client) post(ctx context.Context, u string, body any, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.applyHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeJSON(resp, target)
}

func (c *Client) get(ctx context.Context, u string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	c.applyHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeJSON(resp, target)
}

func (c *Client) applyHeaders(r *http.Request) {
	for k, vals := range c.headers {
		for _, v := range vals {
			r.Header.Add(k, v)
		}
	}
}

func deriveWSURL(httpBase string) string {
	u, err := url.Parse(httpBase)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		// leave as-is for custom schemes
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	return u.String()
}
