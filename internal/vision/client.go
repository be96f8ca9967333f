// Package vision adapts the external door-analysis service. The service
// receives a base64 photo and returns the structured condition analysis;
// everything behind the HTTP contract is a black box to this backend.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"backend/internal/model"
)

// ErrUpstream marks a failed or unusable vision-service response. The call
// has no side effects, so retrying is always safe.
var ErrUpstream = errors.New("vision service unavailable")

// urgencyRatings maps the analysis urgency level to the numeric condition
// rating (1 = most severe). Unknown levels fall back to the default rating
// rather than failing the pipeline.
var urgencyRatings = map[string]int{
	model.UrgencyCritical: 1,
	model.UrgencyHigh:     2,
	model.UrgencyMedium:   3,
	model.UrgencyLow:      4,
}

// RatingForUrgency returns the condition rating derived from an urgency
// level, defaulting to 3 for anything unrecognized.
func RatingForUrgency(urgency string) int {
	if rating, ok := urgencyRatings[urgency]; ok {
		return rating
	}
	return model.DefaultConditionRating
}

// Analyzer produces a structured condition analysis for a door photo
type Analyzer interface {
	AnalyzeDoor(ctx context.Context, image []byte, mediaType string) (*model.AIAnalysis, error)
}

// Client calls the vision analysis endpoint over HTTP
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient returns an Analyzer for the given endpoint. The token is sent
// as a bearer credential when non-empty.
func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type analyzeRequest struct {
	Image     string `json:"image"`
	MediaType string `json:"mediaType"`
}

type analyzeResponse struct {
	Analysis *model.AIAnalysis `json:"analysis"`
	Error    string            `json:"error"`
}

func (c *Client) AnalyzeDoor(ctx context.Context, image []byte, mediaType string) (*model.AIAnalysis, error) {
	if mediaType == "" {
		mediaType = "image/jpeg"
	}

	body, err := json.Marshal(analyzeRequest{
		Image:     base64.StdEncoding.EncodeToString(image),
		MediaType: mediaType,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		var parsed analyzeResponse
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrUpstream, parsed.Error)
		}
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var parsed analyzeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: unparsable payload: %v", ErrUpstream, err)
	}
	if parsed.Analysis == nil || parsed.Analysis.DoorType == "" {
		return nil, fmt.Errorf("%w: response carries no analysis", ErrUpstream)
	}

	return parsed.Analysis, nil
}
