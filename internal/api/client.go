package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenProvider supplies the current session token; empty means
// unauthenticated and no Authorization header is sent.
type TokenProvider interface {
	CurrentToken() string
}

// envelope is the uniform response wrapper used by every endpoint.
// code -1 signals an application error; any other code is success.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client performs request/response exchanges against the charging
// service. It is the only place raw transport failures are translated
// into *Error values.
type Client struct {
	baseURL string
	client  HTTPDoer
	tokens  TokenProvider
	logger  *zap.Logger
}

// NewClient builds the transport wrapper for baseURL.
func NewClient(baseURL string, httpClient HTTPDoer, tokens TokenProvider, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
		tokens:  tokens,
		logger:  logger,
	}
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// Get issues a GET and returns the envelope's data field.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.call(ctx, http.MethodGet, path, nil)
}

// Post issues a POST with a JSON body and returns the envelope's data field.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.call(ctx, http.MethodPost, path, body)
}

// call is single-shot: no retries, retry policy belongs to the caller.
func (c *Client) call(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, newTransportError(KindTransport, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return nil, newTransportError(KindTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.CurrentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		apiErr := classifyTransport(err)
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, apiErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, newTransportError(KindProtocol, err)
	}
	if env.Code == -1 {
		return nil, NewApplicationError(env.Message)
	}
	return env.Data, nil
}

// decode unmarshals an envelope data field into out. A null or absent
// payload leaves out at its zero value; void operations return one.
func decode(raw json.RawMessage, out any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return newTransportError(KindProtocol, err)
	}
	return nil
}

// NewDefaultHTTPClient returns *http.Client with timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
