package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mealbadge/mealbadge-go/internal/pkg/apperrors"
	"github.com/mealbadge/mealbadge-go/internal/session"
)

// Client is the remote data gateway for the rewards backend. All REST calls
// go through it; it attaches the bearer token from the session store and
// normalizes response shapes at the boundary.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	session         *session.Store
	serverPaginates bool
	logger          zerolog.Logger
}

// Options configures a Client
type Options struct {
	BaseURL         string
	HTTPClient      *http.Client
	Session         *session.Store
	ServerPaginates bool
	Logger          zerolog.Logger
}

// NewClient creates a new gateway Client
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:         strings.TrimRight(opts.BaseURL, "/"),
		httpClient:      httpClient,
		session:         opts.Session,
		serverPaginates: opts.ServerPaginates,
		logger:          opts.Logger,
	}
}

// serverError is the error body shape the backend uses for failures
type serverError struct {
	Message string `json:"message"`
}

// bearerToken returns the token to attach, or "" for anonymous requests.
// A stored JWT whose exp claim has passed forces a logout before any request
// is sent; the server would only answer 401 anyway.
func (c *Client) bearerToken() (string, error) {
	token := c.session.Token()
	if token == "" {
		return "", nil
	}
	if c.session.Expired() {
		c.session.Clear()
		c.logger.Info().Msg("Stored session token expired, forcing logout")
		return "", apperrors.NewCustomError(apperrors.ErrTokenExpired, "session expired, please log in again")
	}
	return token, nil
}

// do executes a request and returns the raw response body for 2xx statuses.
// Non-2xx statuses are mapped onto the client error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	token, err := c.bearerToken()
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("requestId", requestID).Str("path", path).Msg("Request failed")
		return nil, apperrors.NewTransportError(err, "")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError(err, "")
	}

	c.logger.Debug().
		Str("requestId", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("Request completed")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	return nil, c.mapStatusError(resp.StatusCode, data, path)
}

// doMultipart executes a multipart upload with the given form file field
func (c *Client) doMultipart(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	token, err := c.bearerToken()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("X-Request-ID", uuid.New().String())
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError(err, "")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError(err, "")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	return nil, c.mapStatusError(resp.StatusCode, data, path)
}

// mapStatusError converts a non-2xx response into the error taxonomy.
// 401 forces a logout through the session store; every component observing
// the store sees the invalidation.
func (c *Client) mapStatusError(status int, body []byte, path string) error {
	msg := serverMessage(body)

	switch {
	case status == http.StatusUnauthorized:
		c.logger.Warn().Str("path", path).Msg("Authorization failure, clearing session")
		c.session.Clear()
		return apperrors.NewCustomError(apperrors.ErrUnauthorized, msg)

	case status == http.StatusConflict:
		return apperrors.NewConflictError(msg)

	case status >= 400 && status < 500:
		return &apperrors.CustomError{Err: apperrors.ErrValidationFailed, Message: msg}

	default:
		return apperrors.NewTransportError(fmt.Errorf("server returned status %d", status), msg)
	}
}

// serverMessage extracts the backend's error text if the body carries one
func serverMessage(body []byte) string {
	var se serverError
	if err := json.Unmarshal(body, &se); err != nil {
		return ""
	}
	return se.Message
}

// get is a convenience wrapper for GET requests with a JSON response
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Error().Err(err).Str("path", path).Str("body", bodyPrefix(data)).Msg("Unexpected response shape")
		return apperrors.NewCustomError(apperrors.ErrMalformedResponse, "")
	}
	return nil
}

// post is a convenience wrapper for POST requests with a JSON response
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	data, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Error().Err(err).Str("path", path).Str("body", bodyPrefix(data)).Msg("Unexpected response shape")
		return apperrors.NewCustomError(apperrors.ErrMalformedResponse, "")
	}
	return nil
}

// put is a convenience wrapper for PUT requests with a JSON response
func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	data, err := c.do(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Error().Err(err).Str("path", path).Str("body", bodyPrefix(data)).Msg("Unexpected response shape")
		return apperrors.NewCustomError(apperrors.ErrMalformedResponse, "")
	}
	return nil
}

// bodyPrefix returns a short, log-safe prefix of a response body
func bodyPrefix(data []byte) string {
	const max = 256
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
