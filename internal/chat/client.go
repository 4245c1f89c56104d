// Package chat is the HTTP adapter for the external messaging service.
// All calls funnel through a circuit breaker so a flapping chat backend
// can't stall workflow commands.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/crestline/kitforge/internal/domain/threadsync"
	"github.com/sony/gobreaker"
)

// Client implements threadsync.ThreadService against a messaging backend.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

var _ threadsync.ThreadService = (*Client)(nil)

// NewClient creates a messaging client for the given base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "chat-service",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: breaker,
		logger:  logger,
	}
}

// CreateThread opens a new team thread on the messaging service.
func (c *Client) CreateThread(ctx context.Context, teamID, topic string) (threadsync.Thread, error) {
	body, err := json.Marshal(map[string]string{"team_id": teamID, "topic": topic})
	if err != nil {
		return threadsync.Thread{}, fmt.Errorf("marshal thread request: %w", err)
	}

	var thread threadsync.Thread
	err = c.doJSON(ctx, http.MethodPost, "/threads", body, &thread)
	if err != nil {
		return threadsync.Thread{}, err
	}
	return thread, nil
}

// ThreadsByTeam lists a team's threads.
func (c *Client) ThreadsByTeam(ctx context.Context, teamID string) ([]threadsync.Thread, error) {
	path := "/threads?team_id=" + url.QueryEscape(teamID)
	var threads []threadsync.Thread
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

// SetThreadMetadata writes a single metadata key on a thread.
func (c *Client) SetThreadMetadata(ctx context.Context, threadID, key, value string) error {
	body, err := json.Marshal(map[string]string{key: value})
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	path := fmt.Sprintf("/threads/%s/metadata", url.PathEscape(threadID))
	return c.doJSON(ctx, http.MethodPut, path, body, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		var reader *bytes.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		} else {
			reader = bytes.NewReader(nil)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("chat service request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("chat service returned %d", resp.StatusCode)
		}
		if out == nil {
			return nil, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode chat response: %w", err)
		}
		return out, nil
	})
	return err
}
