package checker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	dErrors "idsforge/pkg/domain-errors"
	"idsforge/pkg/platform/circuit"
)

// Client talks to a remote model-checking service. A rule document is
// uploaded together with a building model file; the service replies with a
// per-specification report.
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *circuit.Breaker
	logger     *slog.Logger
}

type Option func(c *Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// New constructs a checker client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		breaker:    circuit.New("checker"),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check uploads the document and the model file and returns the report.
// Returns CodeUnavailable when the circuit is open or the service is down.
func (c *Client) Check(ctx context.Context, idsXML []byte, modelFileName string, model io.Reader) (*Report, error) {
	if c.breaker.IsOpen() {
		return nil, dErrors.New(dErrors.CodeUnavailable, "model checker temporarily unavailable")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("ids", "rules.ids")
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build check request")
	}
	if _, err := part.Write(idsXML); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build check request")
	}

	part, err = writer.CreateFormFile("model", modelFileName)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build check request")
	}
	if _, err := io.Copy(part, model); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read model file")
	}
	if err := writer.Close(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build check request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/check", body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build check request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(ctx)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "model checker unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		c.recordFailure(ctx)
		return nil, dErrors.New(dErrors.CodeUnavailable,
			fmt.Sprintf("model checker returned status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		c.recordSuccess(ctx)
		return nil, dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("model checker rejected request with status %d", resp.StatusCode))
	}

	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		c.recordFailure(ctx)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "model checker returned malformed report")
	}

	c.recordSuccess(ctx)
	return &report, nil
}

func (c *Client) recordFailure(ctx context.Context) {
	_, change := c.breaker.RecordFailure()
	if change.Opened {
		c.logger.WarnContext(ctx, "circuit breaker opened", "breaker", c.breaker.Name())
	}
}

func (c *Client) recordSuccess(ctx context.Context) {
	_, change := c.breaker.RecordSuccess()
	if change.Closed {
		c.logger.InfoContext(ctx, "circuit breaker closed", "breaker", c.breaker.Name())
	}
}
