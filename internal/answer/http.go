package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"infobot-backend/internal/errx"
)

// PayloadStyle selects the request body the remote service expects.
type PayloadStyle string

const (
	// PayloadMessage sends {"message", "session_id"}.
	PayloadMessage PayloadStyle = "message"
	// PayloadQuery sends {"query"} for services without session memory.
	PayloadQuery PayloadStyle = "query"
)

type HTTPConfig struct {
	BaseURL    string
	AnswerPath string
	ClearPath  string
	Payload    PayloadStyle
	Timeout    time.Duration
}

// HTTPClient talks to a remote answer service over JSON.
type HTTPClient struct {
	httpClient *http.Client
	cfg        HTTPConfig
}

func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	if cfg.AnswerPath == "" {
		cfg.AnswerPath = "/chat"
	}
	if cfg.ClearPath == "" {
		cfg.ClearPath = "/clear_history"
	}
	if cfg.Payload == "" {
		cfg.Payload = PayloadMessage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HTTPClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

type answerResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

func (c *HTTPClient) post(ctx context.Context, path string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

// statusError turns a non-2xx response into an error, preferring the
// service's {"detail"} field over the bare status text.
func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var eb errorBody
	if json.Unmarshal(b, &eb) == nil && strings.TrimSpace(eb.Detail) != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(eb.Detail))
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// Answer makes a single attempt; any failure is returned wrapped with
// errx.WrapRemote.
func (c *HTTPClient) Answer(ctx context.Context, query, sessionID string) (string, error) {
	var body any
	switch c.cfg.Payload {
	case PayloadQuery:
		body = map[string]string{"query": query}
	default:
		body = map[string]string{"message": query, "session_id": sessionID}
	}

	resp, err := c.post(ctx, c.cfg.AnswerPath, body)
	if err != nil {
		return "", errx.WrapRemote(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errx.WrapRemote(statusError(resp))
	}

	var out answerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errx.WrapRemote(fmt.Errorf("decode answer: %w", err))
	}
	if out.Error != "" {
		return "", errx.WrapRemote(fmt.Errorf("service error: %s", out.Error))
	}
	text := strings.TrimSpace(out.Response)
	if text == "" {
		return "", errx.WrapRemote(ErrEmptyAnswer)
	}
	return text, nil
}

// ClearHistory asks the service to forget sessionID's conversation.
func (c *HTTPClient) ClearHistory(ctx context.Context, sessionID string) error {
	resp, err := c.post(ctx, c.cfg.ClearPath, map[string]string{"session_id": sessionID})
	if err != nil {
		return errx.WrapRemote(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errx.WrapRemote(statusError(resp))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
