// Package audienceful registers quiz completions with the Audienceful
// mailing-list API.
package audienceful

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"designer-quiz-service/internal/domain"
)

const defaultBaseURL = "https://app.audienceful.com/api"

// Client is a one-shot HTTP client for the people endpoint. Calls are
// best-effort: no retries, no queuing. A failure here never rolls back an
// already-finalized submission.
type Client struct {
	baseURL string
	apiKey  string
	tag     string
	http    *http.Client
}

func New(baseURL, apiKey, tag string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		tag:     tag,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type subscribeRequest struct {
	Email     string    `json:"email"`
	Tags      string    `json:"tags"`
	ExtraData extraData `json:"extra_data"`
}

type extraData struct {
	Primary     string `json:"designer_type_primary"`
	Secondary   string `json:"designer_type_secondary"`
	Scores      string `json:"designer_scores"`
	CompletedAt string `json:"quiz_completed_at"`
}

type apiError struct {
	Message string `json:"message"`
}

// Subscribe registers the email with the quiz tag, the primary type as a
// second tag, and the full result as extra data. A duplicate contact maps to
// domain.ErrAlreadySubscribed so callers can show a distinct message.
func (c *Client) Subscribe(ctx context.Context, email string, result domain.Result) error {
	if c.apiKey == "" {
		return fmt.Errorf("audienceful api key not configured")
	}

	rawScores, err := json.Marshal(result.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	payload := subscribeRequest{
		Email: email,
		Tags:  c.tag + ", " + string(result.Primary),
		ExtraData: extraData{
			Primary:     string(result.Primary),
			Secondary:   string(result.Secondary),
			Scores:      string(rawScores),
			CompletedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/people/", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("audienceful request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var remote apiError
	_ = json.NewDecoder(resp.Body).Decode(&remote)
	if strings.Contains(strings.ToLower(remote.Message), "already subscribed") {
		return domain.ErrAlreadySubscribed
	}
	if remote.Message != "" {
		return fmt.Errorf("audienceful: %s", remote.Message)
	}
	return fmt.Errorf("audienceful: subscription failed with status %d", resp.StatusCode)
}
