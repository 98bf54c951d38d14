// Package translate provides clients for the external translation endpoint
// used during submission approval. The endpoint is treated as untrusted:
// unusable payloads surface as a *TranslationError, never a panic.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-places/pkg/interfaces"
)

// ErrTranslation marks every failure produced by a translation backend.
var ErrTranslation = errors.New("translate: translation failed")

// TranslationError wraps a failed or unusable exchange with the endpoint.
type TranslationError struct {
	SubmissionID string
	Reason       string
	Err          error
}

func (e *TranslationError) Error() string {
	if e == nil {
		return ErrTranslation.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrTranslation.Error(), e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrTranslation.Error(), e.Reason)
}

func (e *TranslationError) Unwrap() error {
	if e != nil && e.Err != nil {
		return e.Err
	}
	return ErrTranslation
}

// Is lets errors.Is(err, ErrTranslation) match wrapped endpoint failures.
func (e *TranslationError) Is(target error) bool {
	return target == ErrTranslation
}

const defaultTimeout = 30 * time.Second

// Config captures the endpoint settings for the HTTP client.
type Config struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// Client calls an HTTP translation endpoint with a JSON request/response
// contract. It implements interfaces.Translator.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// Option configures the client at construction time.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, used mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// NewClient constructs an HTTP translator for the configured endpoint.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("translate: endpoint is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		endpoint: endpoint,
		token:    strings.TrimSpace(cfg.Token),
		http:     &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

var _ interfaces.Translator = (*Client)(nil)

// Translate posts the source-language fields and decodes the translated
// result. A response without a usable translated name counts as a failure.
func (c *Client) Translate(ctx context.Context, req interfaces.TranslationRequest) (*interfaces.TranslationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &TranslationError{SubmissionID: req.SubmissionID, Reason: "encode request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TranslationError{SubmissionID: req.SubmissionID, Reason: "build request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TranslationError{SubmissionID: req.SubmissionID, Reason: "call endpoint", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TranslationError{
			SubmissionID: req.SubmissionID,
			Reason:       fmt.Sprintf("endpoint returned status %d", resp.StatusCode),
		}
	}

	var result interfaces.TranslationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &TranslationError{SubmissionID: req.SubmissionID, Reason: "decode response", Err: err}
	}

	if strings.TrimSpace(result.Name) == "" {
		return nil, &TranslationError{SubmissionID: req.SubmissionID, Reason: "response missing translated name"}
	}
	return &result, nil
}
