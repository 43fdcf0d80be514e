package genimages

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mk-cardoso198/engajapro-digital-hub/internal/storage"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/utils"
)

const generationModel = "google/gemini-2.5-flash-image-preview"

var (
	ErrUnknownService = errors.New("no prompts found for service")
	ErrNoImageData    = errors.New("no image data in response")
)

type Generator struct {
	endpoint   string
	apiKey     string
	uploader   storage.Uploader
	httpClient *http.Client
}

func NewGenerator(endpoint, apiKey string, uploader storage.Uploader) *Generator {
	if strings.TrimSpace(endpoint) == "" || strings.TrimSpace(apiKey) == "" {
		return nil
	}
	return &Generator{
		endpoint:   endpoint,
		apiKey:     apiKey,
		uploader:   uploader,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Modalities []string      `json:"modalities"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Images []struct {
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"images"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate renders the card image for a known service title, stores it
// in the service images bucket and returns its public URL. Regenerating
// the same face replaces the previous object.
func (g *Generator) Generate(ctx context.Context, serviceTitle, imageType string) (string, string, error) {
	if g == nil {
		return "", "", errors.New("image generation not configured")
	}

	prompt, ok := PromptFor(serviceTitle, imageType)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownService, serviceTitle)
	}

	data, err := g.render(ctx, prompt)
	if err != nil {
		return "", "", err
	}

	filename := fmt.Sprintf("%s-%s-%d.png", utils.Slugify(serviceTitle), imageType, time.Now().UnixMilli())
	if err := g.uploader.Upload(ctx, storage.BucketServiceImages, filename, data, "image/png", true); err != nil {
		return "", "", fmt.Errorf("upload failed: %w", err)
	}

	return g.uploader.PublicURL(storage.BucketServiceImages, filename), filename, nil
}

func (g *Generator) render(ctx context.Context, prompt string) ([]byte, error) {
	payload := chatRequest{
		Model: generationModel,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Modalities: []string{"image", "text"},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gateway marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("gateway create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gateway error: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("gateway decode response: %w", err)
	}

	if len(out.Choices) == 0 || len(out.Choices[0].Message.Images) == 0 {
		return nil, ErrNoImageData
	}

	imageURL := out.Choices[0].Message.Images[0].ImageURL.URL
	return decodeDataURL(imageURL)
}

// decodeDataURL strips the data:image/...;base64, prefix and decodes
// the payload.
func decodeDataURL(raw string) ([]byte, error) {
	encoded := raw
	if idx := strings.Index(raw, "base64,"); idx >= 0 {
		encoded = raw[idx+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoImageData
	}
	return data, nil
}
