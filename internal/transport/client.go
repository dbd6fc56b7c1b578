package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetryDelay = 500 * time.Millisecond
	DefaultUserAgent  = "folioterm/1.0"

	maxErrorBodyBytes = 4 << 10
)

// Client posts contact submissions as JSON to an HTTP endpoint
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *zap.SugaredLogger
}

func NewClient(config Config, logger *zap.SugaredLogger) (*Client, error) {
	if config.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}

	u, err := url.Parse(config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", config.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", config.Endpoint)
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Client{
		httpClient: &http.Client{},
		config:     config,
		logger:     logger,
	}, nil
}

// Submit sends s to the configured endpoint as given. The whole call,
// retries included, is bounded by the configured timeout. Retryable
// failures are retried up to RetryCount times under the same idempotency
// key; with a RetryCount of 0 exactly one attempt is made.
func (c *Client) Submit(ctx context.Context, s Submission) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	body, err := json.Marshal(s)
	if err != nil {
		return NewEncodingError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	attempt := 0
	operation := func() error {
		attempt++
		err := c.post(ctx, s.ID, body)
		if err == nil {
			return nil
		}

		classified := ClassifyError(err)
		c.logger.Debugf("Submission %s attempt %d failed: %v", s.ID, attempt, classified)
		if !classified.IsRetryable() {
			return backoff.Permanent(classified)
		}
		return classified
	}

	err = backoff.Retry(operation, backoff.WithContext(c.retryPolicy(), ctx))
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError("submit", c.config.Timeout)
	}
	return ClassifyError(err)
}

func (c *Client) post(ctx context.Context, id string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return NewEncodingError(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", id)
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewStatusError(resp.StatusCode, readErrorDetail(resp.Body))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// retryPolicy returns the backoff for one Submit call. WithMaxRetries
// treats 0 as unlimited, so no retries needs an explicit StopBackOff.
func (c *Client) retryPolicy() backoff.BackOff {
	if c.config.RetryCount <= 0 {
		return &backoff.StopBackOff{}
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.config.RetryDelay
	return backoff.WithMaxRetries(policy, uint64(c.config.RetryCount))
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func readErrorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil || len(data) == 0 {
		return ""
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
