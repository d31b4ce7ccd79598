package clip

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/semrank/semrank/ai"
)

// Client implements ai.ImageEmbedder against a CLIP-style embedding
// service that encodes text and images into one vector space.
//
// Wire format:
//
//	POST {host}/embed/text  {"text": "...", "model": "..."}        -> {"vector": [...]}
//	POST {host}/embed/image {"image_base64": "...", "model": "..."} -> {"vector": [...]}
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

type textRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

type imageRequest struct {
	ImageBase64 string `json:"image_base64"`
	Model       string `json:"model,omitempty"`
}

type embedResponse struct {
	Vector     []float32 `json:"vector"`
	Dimensions int       `json:"dimensions"`
}

// NewClient creates a cross-modal embedding client from config.
//
// Returns ai.ImageEmbedder interface to enforce abstraction.
func NewClient(config *ai.Config) (ai.ImageEmbedder, error) {
	if err := config.ValidateImage(); err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    config.ImageHost,
		model:      config.ImageModel,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default().With("component", "clip-client"),
	}, nil
}

// EmbedText encodes text into the shared image space.
func (c *Client) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return c.embed(ctx, "/embed/text", textRequest{Text: text, Model: c.model})
}

// EmbedImage encodes raw image bytes into the shared image space.
func (c *Client) EmbedImage(ctx context.Context, image []byte) ([]float32, error) {
	req := imageRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(image),
		Model:       c.model,
	}
	return c.embed(ctx, "/embed/image", req)
}

func (c *Client) embed(ctx context.Context, endpoint string, payload any) ([]float32, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("clip: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("clip: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("embedding request failed", "endpoint", endpoint, "err", err)
		return nil, fmt.Errorf("clip: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("embedding request returned bad status",
			"endpoint", endpoint, "status", resp.StatusCode, "body", string(data))
		return nil, fmt.Errorf("clip: unexpected status %d", resp.StatusCode)
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("clip: decode response: %w", err)
	}
	if len(out.Vector) == 0 {
		return nil, fmt.Errorf("clip: empty vector in response")
	}

	return ai.Normalize(out.Vector), nil
}
