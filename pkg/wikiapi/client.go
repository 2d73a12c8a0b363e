// Package wikiapi fetches page view statistics from the Azure DevOps wiki
// pagesbatch API, following its continuation-token pagination protocol.
package wikiapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// continuationHeader carries the cursor for the next batch. Its absence
	// on a response marks the final batch.
	continuationHeader = "X-MS-ContinuationToken"

	// firstToken is the sentinel for the initial request. Every later token
	// is an opaque string issued by the API.
	firstToken = "1"

	defaultTimeout    = 60 * time.Second
	defaultMaxRetries = 4
	defaultBaseDelay  = 500 * time.Millisecond
)

// ContinuationState tracks the pagination cursor across pagesbatch calls.
// It is threaded through FetchBatch explicitly; start from
// NewContinuationState, not the zero value.
type ContinuationState struct {
	Token   string
	Batch   int
	HasMore bool
}

// NewContinuationState returns the state for the first pagesbatch call.
func NewContinuationState() ContinuationState {
	return ContinuationState{Token: firstToken, HasMore: true}
}

// Credentials authenticate against Azure DevOps with HTTP basic auth.
type Credentials struct {
	Username string
	PAT      string
}

// Client calls the pagesbatch endpoint. Transport failures are retried with
// exponential backoff up to a bounded attempt count; auth and API errors are
// fatal and never retried.
type Client struct {
	endpoint   string
	creds      Credentials
	client     *http.Client
	logger     *slog.Logger
	maxRetries int
	baseDelay  time.Duration
}

// NewClient builds a Client with default timeout and retry settings.
func NewClient(endpoint string, creds Credentials, logger *slog.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		creds:      creds,
		client:     &http.Client{Timeout: defaultTimeout},
		logger:     logger,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
}

type batchRequest struct {
	PageViewsForDays  int    `json:"pageViewsForDays"`
	ContinuationToken string `json:"continuationToken"`
}

// FetchBatch performs one pagesbatch call and returns the raw response body
// together with the advanced continuation state.
func (c *Client) FetchBatch(ctx context.Context, state ContinuationState, daysWindow int) ([]byte, ContinuationState, error) {
	body, err := json.Marshal(batchRequest{
		PageViewsForDays:  daysWindow,
		ContinuationToken: state.Token,
	})
	if err != nil {
		return nil, state, fmt.Errorf("encoding batch request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, body)
	if err != nil {
		return nil, state, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, state, &AuthError{}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, state, &APIError{Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, state, fmt.Errorf("reading batch response: %w", err)
	}

	next := state
	next.Batch++
	if token := resp.Header.Get(continuationHeader); token != "" {
		next.Token = token
		next.HasMore = true
		c.logger.Info("continuation token received", "batch", next.Batch)
	} else {
		next.Token = ""
		next.HasMore = false
	}
	return raw, next, nil
}

func (c *Client) doWithRetry(ctx context.Context, body []byte) (*http.Response, error) {
	var lastErr error
	delay := c.baseDelay

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "text/plain")
		req.SetBasicAuth(c.creds.Username, c.creds.PAT)

		resp, err := c.client.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		c.logger.Warn("pagesbatch request failed", "attempt", attempt, "error", err)

		if attempt == c.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return nil, &TransientError{Attempts: c.maxRetries, Err: lastErr}
}

// FetchAllPages walks the continuation protocol to exhaustion and returns the
// stitched JSON array covering every batch, including the final one.
func (c *Client) FetchAllPages(ctx context.Context, daysWindow int) ([]byte, error) {
	stitcher := NewStitcher()
	state := NewContinuationState()

	for state.HasMore {
		raw, next, err := c.FetchBatch(ctx, state, daysWindow)
		if err != nil {
			return nil, err
		}
		if err := stitcher.Add(raw); err != nil {
			return nil, err
		}
		c.logger.Info("fetched pagesbatch", "batch", next.Batch, "pages", stitcher.Len(), "has_more", next.HasMore)
		state = next
	}

	return stitcher.Finish()
}
