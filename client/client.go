package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fitgrid/models"
)

// Client is a thin HTTP client for the schedule API. It maps outcome codes
// onto sentinel errors so callers can branch with errors.Is.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a schedule API client authenticating with the given
// bearer token.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetSchedule fetches one schedule projected against the caller.
func (c *Client) GetSchedule(ctx context.Context, scheduleID string) (*models.ActiveScheduleView, error) {
	url := fmt.Sprintf("%s/api/schedules/%s", c.baseURL, scheduleID)
	return c.doScheduleRequest(ctx, http.MethodGet, url)
}

// JoinSlot claims a spot; the response body is the fresh authoritative view.
func (c *Client) JoinSlot(ctx context.Context, scheduleID, slotID string) (*models.ActiveScheduleView, error) {
	url := fmt.Sprintf("%s/api/schedules/%s/slots/%s/join", c.baseURL, scheduleID, slotID)
	return c.doScheduleRequest(ctx, http.MethodPost, url)
}

// LeaveSlot releases a spot; the response body is the fresh authoritative view.
func (c *Client) LeaveSlot(ctx context.Context, scheduleID, slotID string) (*models.ActiveScheduleView, error) {
	url := fmt.Sprintf("%s/api/schedules/%s/slots/%s/leave", c.baseURL, scheduleID, slotID)
	return c.doScheduleRequest(ctx, http.MethodPost, url)
}

func (c *Client) doScheduleRequest(ctx context.Context, method, url string) (*models.ActiveScheduleView, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrServer, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrServer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.mapError(resp)
	}

	var view models.ActiveScheduleView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrServer, err)
	}
	return &view, nil
}

// errorPayload mirrors the server's standardized error response.
type errorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (c *Client) mapError(resp *http.Response) error {
	var payload errorPayload
	body, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(body, &payload)

	switch payload.Code {
	case "NOT_FOUND":
		return ErrNotFound
	case "FULL":
		return ErrFull
	case "ALREADY_JOINED":
		return ErrAlreadyJoined
	case "NOT_JOINED":
		return ErrNotJoined
	case "CONFLICT", "ALREADY_EXISTS":
		return ErrConflict
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return fmt.Errorf("%w: unexpected status %d: %s", ErrServer, resp.StatusCode, string(body))
}
