package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	derr "github.com/ozzus/esports-digest/internal/domain/errors"
	"github.com/ozzus/esports-digest/internal/infrastructures/serverchan/dto"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://sctapi.ftqq.com"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) Send(ctx context.Context, sendKey, title, content string) (dto.SendResponse, string, error) {
	form := url.Values{}
	form.Set("title", title)
	form.Set("desp", content)

	endpoint := fmt.Sprintf("%s/%s.send", c.baseURL, url.PathEscape(sendKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return dto.SendResponse{}, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return dto.SendResponse{}, "", err
		}
		return dto.SendResponse{}, "", fmt.Errorf("%w: do request: %v", derr.ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return dto.SendResponse{}, "", fmt.Errorf("%w: read response: %v", derr.ErrDeliveryFailed, err)
	}
	raw := strings.TrimSpace(string(body))

	var out dto.SendResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return dto.SendResponse{}, raw, fmt.Errorf("%w: status %d: decode response: %v", derr.ErrDeliveryFailed, resp.StatusCode, err)
	}

	return out, raw, nil
}
