package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	derr "github.com/ozzus/esports-digest/internal/domain/errors"
	"github.com/ozzus/esports-digest/internal/domain/models"
	"github.com/ozzus/esports-digest/internal/infrastructures/opgg/dto"
)

type Client struct {
	url        string
	userAgent  string
	httpClient *http.Client
}

func NewClient(url, userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		url:        url,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

func (c *Client) UpcomingMatches(ctx context.Context) ([]models.RawMatch, error) {
	payload, err := json.Marshal(dto.GraphQLRequest{Query: dto.UpcomingMatchesQuery})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: do request: %v", derr.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status: %s", derr.ErrSourceUnavailable, resp.Status)
	}

	var gqlResp dto.GraphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", derr.ErrSourceUnavailable, err)
	}

	return extractUpcoming(gqlResp), nil
}

func extractUpcoming(resp dto.GraphQLResponse) []models.RawMatch {
	raw, ok := resp.Data["upcomingMatches"]
	if !ok {
		return []models.RawMatch{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []models.RawMatch{}
	}

	matches := make([]models.RawMatch, 0, len(items))
	for _, item := range items {
		var m models.RawMatch
		if err := json.Unmarshal(item, &m); err != nil || m == nil {
			continue
		}
		matches = append(matches, m)
	}

	return matches
}
