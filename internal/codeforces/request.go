package codeforces

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rodriguescarson/cfkit/internal/version"
)

const (
	statusOK     = "OK"
	statusFailed = "FAILED"
)

// APIError is a FAILED envelope. Comment is the server's explanation.
type APIError struct {
	Method     string
	StatusCode int
	Comment    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("codeforces api error (%s): %s", e.Method, e.Comment)
}

// NetworkError is a transport failure: DNS, timeout, a non-2xx response
// without an envelope, or an unreadable body.
type NetworkError struct {
	Method     string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("codeforces network error (%s): http %d: %v", e.Method, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("codeforces network error (%s): %v", e.Method, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsAPIError reports whether err wraps an *APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsNetworkError reports whether err wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

type envelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

// Call invokes an API method and decodes its result into out (which may be
// nil). When authenticated is set and credentials are configured the request
// carries apiKey, time and apiSig; without credentials it is sent unsigned.
func (c *Client) Call(ctx context.Context, method string, params map[string]string, authenticated bool, out any) error {
	if method == "" {
		return errors.New("codeforces: method name is required")
	}

	signed := false
	if authenticated && c.creds != nil {
		var err error
		params, err = c.creds.Sign(method, params)
		if err != nil {
			return fmt.Errorf("sign %s: %w", method, err)
		}
		signed = true
	}

	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}

	c.logger.Debug("codeforces request",
		"method", method,
		"signed", signed,
	)

	result, err := c.doRequest(ctx, method, query)
	if err != nil {
		return err
	}

	if out == nil || len(result) == 0 {
		return nil
	}
	if err := json.Unmarshal(result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

// doRequest performs the GET and unwraps the envelope.
func (c *Client) doRequest(ctx context.Context, method string, query url.Values) (json.RawMessage, error) {
	fullURL := c.baseURL + "/" + method
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Status == "" {
		if err == nil {
			err = errors.New("response has no status")
		}
		if resp.StatusCode >= 300 {
			err = errors.New(http.StatusText(resp.StatusCode))
		}
		return nil, &NetworkError{Method: method, StatusCode: resp.StatusCode, Err: err}
	}

	// Codeforces answers FAILED with HTTP 400; the comment is what matters.
	switch env.Status {
	case statusOK:
		if resp.StatusCode >= 300 {
			return nil, &NetworkError{Method: method, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
		}
		return env.Result, nil
	case statusFailed:
		comment := env.Comment
		if comment == "" {
			comment = "Unknown error"
		}
		return nil, &APIError{Method: method, StatusCode: resp.StatusCode, Comment: comment}
	default:
		return nil, &APIError{Method: method, StatusCode: resp.StatusCode, Comment: fmt.Sprintf("unexpected status %q", env.Status)}
	}
}
