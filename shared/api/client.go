// shared/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// HTTPError carries the status and message of a non-2xx response.
type HTTPError struct {
	StatusCode int
	Message    string
	URL        string
	Method     string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error %d %s from %s %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Method, e.URL, e.Message)
	}
	return fmt.Sprintf("HTTP error %d %s from %s %s", e.StatusCode, http.StatusText(e.StatusCode), e.Method, e.URL)
}

// Sentinel errors for common statuses. Check with errors.Is.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("resource conflict")
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrPaymentRequired = errors.New("insufficient funds")
	ErrInternalError   = errors.New("internal server error")
)

// NewDefaultHTTPClient returns an http.Client with sane timeouts and
// connection pooling for service-to-service calls.
func NewDefaultHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// Client is a JSON REST client. When an Identity is attached its user id and
// email travel on every request as the forwarded identity headers the server
// side resolves.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userID     string
	userEmail  string
}

// NewClient creates a new API Client. Pass nil to use the default HTTP client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = NewDefaultHTTPClient()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// WithIdentity returns a copy of the client acting as the given user. The
// zero values drop the headers, yielding an anonymous client.
func (c *Client) WithIdentity(userID, email string) *Client {
	clone := *c
	clone.userID = userID
	clone.userEmail = email
	return &clone
}

func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body for %s %s: %w", method, url, err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create %s request for %s: %w", method, url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}
	if c.userEmail != "" {
		req.Header.Set("X-User-Email", c.userEmail)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("%s request to %s cancelled: %w", method, url, ctx.Err())
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s request to %s timed out: %w", method, url, ctx.Err())
		}
		return fmt.Errorf("failed to send %s request to %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorResponse struct {
			Message string `json:"message"`
		}
		bodyBytes, readErr := io.ReadAll(resp.Body)
		if readErr == nil && len(bodyBytes) > 0 {
			if jsonErr := json.Unmarshal(bodyBytes, &errorResponse); jsonErr == nil && errorResponse.Message != "" {
				return createHTTPError(resp.StatusCode, errorResponse.Message, url, method)
			}
			if len(bodyBytes) < 500 {
				return createHTTPError(resp.StatusCode, string(bodyBytes), url, method)
			}
		}
		return createHTTPError(resp.StatusCode, "", url, method)
	}

	if result != nil {
		if resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode %s response from %s: %w", method, url, err)
		}
	}
	return nil
}

// createHTTPError wraps the response in the matching sentinel so callers can
// branch with errors.Is.
func createHTTPError(statusCode int, message, url, method string) error {
	httpErr := &HTTPError{StatusCode: statusCode, Message: message, URL: url, Method: method}
	switch statusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, httpErr.Error())
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, httpErr.Error())
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, httpErr.Error())
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, httpErr.Error())
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, httpErr.Error())
	case http.StatusPaymentRequired:
		return fmt.Errorf("%w: %s", ErrPaymentRequired, httpErr.Error())
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", ErrInternalError, httpErr.Error())
	default:
		return httpErr
	}
}

func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodPost, path, body, result)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodPut, path, body, result)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil)
}

// IsHTTPError reports whether err is an HTTPError, optionally for one status.
func IsHTTPError(err error, status int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return status == 0 || httpErr.StatusCode == status
	}
	return false
}

// GetHTTPStatusCode extracts the status code from an HTTPError if present.
func GetHTTPStatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
