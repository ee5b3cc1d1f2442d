package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// DefaultBaseURL is the Hugging Face inference endpoint for the CLIP model
// used for bottle images.
const DefaultBaseURL = "https://api-inference.huggingface.co/models/sentence-transformers/clip-ViT-B-32"

// defaultRetryAfter is used when a 503 response carries no Retry-After hint.
const defaultRetryAfter = 10 * time.Second

// APIError is a failure reported by the embedding provider. It carries the
// HTTP status and the provider's message so callers can surface both.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vision api error: status %d: %s", e.Status, e.Message)
}

// Client calls a Hugging Face style inference API that accepts image bytes
// and returns a fixed-length embedding vector. A 503 means the model is
// still loading; the client waits the server's Retry-After hint and retries
// once.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the inference endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithToken sets the API token. Without one, requests go out anonymously,
// which the public inference API rate-limits but accepts.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewClient creates an embedding client with the default endpoint.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     slog.Default().With("component", "hf-embedder"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EmbedImage generates an embedding for raw image data.
func (c *Client) EmbedImage(ctx context.Context, image io.Reader) ([]float32, error) {
	payload, err := io.ReadAll(image)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return c.embed(ctx, payload, true)
}

// EmbedImageURL fetches the image at imageURL and generates its embedding.
func (c *Client) EmbedImageURL(ctx context.Context, imageURL string) ([]float32, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: "image fetch failed: " + imageURL}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return c.embed(ctx, payload, true)
}

// embed posts image bytes to the inference endpoint. retryOnLoading allows
// exactly one retry after the provider's "model loading" wait hint.
func (c *Client) embed(ctx context.Context, payload []byte, retryOnLoading bool) ([]float32, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable && retryOnLoading {
		wait := retryAfter(resp)
		c.logger.Info("model loading, retrying", "wait", wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return c.embed(ctx, payload, false)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: string(body)}
	}

	return parseEmbedding(body)
}

// retryAfter reads the provider's wait hint in seconds.
func retryAfter(resp *http.Response) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultRetryAfter
}

// parseEmbedding accepts the two shapes the provider is known to return:
// a bare JSON array, or an object with an "embedding" field.
func parseEmbedding(body []byte) ([]float32, error) {
	var direct []float32
	if err := json.Unmarshal(body, &direct); err == nil && len(direct) > 0 {
		return direct, nil
	}

	var wrapped struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped.Embedding) > 0 {
		return wrapped.Embedding, nil
	}

	return nil, &APIError{Status: http.StatusOK, Message: "unexpected response format"}
}
