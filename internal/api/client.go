// Package api is the typed HTTP client for the workspace assistant backend.
// Response shapes are validated at this boundary; optional fields default
// instead of being trusted downstream.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/bilalkalyar/workspace-agent-cli/internal/config"
	"github.com/bilalkalyar/workspace-agent-cli/internal/model/chat"
	"github.com/bilalkalyar/workspace-agent-cli/internal/model/workspace"
)

// ChatReply is the backend's answer to one chat turn. Suggestions, Sources
// and ContextUsed are optional on the wire and default to their zero values.
type ChatReply struct {
	Response    string   `json:"response"`
	ContextUsed bool     `json:"context_used"`
	Sources     []string `json:"sources"`
	Suggestions []string `json:"suggestions"`
}

// Client talks to the assistant backend under one base URL.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// NewClient builds a client from APIConfig.
func NewClient(cfg config.APIConfig, log *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpc:   &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}
}

// History fetches the canonical remote conversation log.
func (c *Client) History(ctx context.Context) ([]chat.Message, error) {
	var payload struct {
		History []chat.Message `json:"history"`
	}
	if err := c.getJSON(ctx, "/chat/history", &payload); err != nil {
		return nil, err
	}
	return payload.History, nil
}

// Chat sends one user query and returns the reply.
func (c *Client) Chat(ctx context.Context, query string) (ChatReply, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return ChatReply{}, fmt.Errorf("encode chat request: %w", err)
	}

	var reply ChatReply
	if err := c.postJSON(ctx, "/chat", body, &reply); err != nil {
		return ChatReply{}, err
	}
	return reply, nil
}

// Snapshot fetches today's activity snapshot. A backend that has no
// snapshot yet answers an informational message; that decodes to a
// zero-value snapshot here.
func (c *Client) Snapshot(ctx context.Context) (workspace.Snapshot, error) {
	var payload struct {
		workspace.Snapshot
		Message string `json:"message"`
	}
	if err := c.getJSON(ctx, "/snapshot/today", &payload); err != nil {
		return workspace.Snapshot{}, err
	}
	return payload.Snapshot, nil
}

// Report fetches the latest end-of-day report, zero-valued when the backend
// has not generated one yet.
func (c *Client) Report(ctx context.Context) (workspace.Report, error) {
	var payload struct {
		workspace.Report
		Message string `json:"message"`
	}
	if err := c.getJSON(ctx, "/eod-report", &payload); err != nil {
		return workspace.Report{}, err
	}
	return payload.Report, nil
}

// GenerateReport asks the backend to regenerate the end-of-day report. The
// generation itself runs server-side; only acceptance is confirmed here.
func (c *Client) GenerateReport(ctx context.Context) error {
	return c.postJSON(ctx, "/eod-report/generate", nil, &struct {
		Message string `json:"message"`
	}{})
}

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) (workspace.Health, error) {
	var health workspace.Health
	if err := c.getJSON(ctx, "/health", &health); err != nil {
		return workspace.Health{}, err
	}
	return health, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	return c.do(req, path, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug("backend returned non-2xx",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("call %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
