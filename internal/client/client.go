package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ssbtools/ssbctl/internal/config"
	"github.com/ssbtools/ssbctl/pkg/logger"
)

// Client issues authenticated requests against the SSB management API.
// One Client serves a single command invocation.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	log        *logger.Logger

	// start-jobs state polling; shortened in tests
	pollInterval time.Duration
	pollAttempts int
}

// New builds a Client from resolved configuration.
func New(cfg *config.Config, log *logger.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Insecure {
		// Knox-fronted SSB endpoints commonly run self-signed certificates.
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		username: cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		log:          log,
		pollInterval: time.Second,
		pollAttempts: 120,
	}
}

// APIError is a response outside the expected status codes. The vendor
// response body is carried verbatim.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected response for %s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	data, _, err := c.do(ctx, http.MethodGet, path, nil, nil)
	return data, err
}

func (c *Client) put(ctx context.Context, path string, body any) ([]byte, error) {
	data, _, err := c.do(ctx, http.MethodPut, path, body, nil)
	return data, err
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	data, _, err := c.do(ctx, http.MethodPost, path, body, nil)
	return data, err
}

// do performs one blocking API call. A nil expected list means only
// HTTP 200 is accepted; any other status is returned as an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any, expected []int) ([]byte, int, error) {
	if expected == nil {
		expected = []int{http.StatusOK}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshalling request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("api call", "request_id", uuid.NewString(), "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response for %s %s: %w", method, url, err)
	}

	ok := false
	for _, status := range expected {
		if resp.StatusCode == status {
			ok = true
			break
		}
	}
	if !ok {
		return nil, resp.StatusCode, &APIError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(data)),
		}
	}
	return data, resp.StatusCode, nil
}

// unmarshal decodes API JSON keeping numbers as json.Number, so large
// numeric identifiers survive the round trip to display form.
func unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
