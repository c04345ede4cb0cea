package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIImageModel = openai.CreateImageModelDallE3

// OpenAIImageGenerator produces images with the OpenAI images endpoint.
type OpenAIImageGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIImageGenerator creates an OpenAI-backed image generator.
func NewOpenAIImageGenerator(cfg OpenAIConfig, model string) (*OpenAIImageGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if model == "" {
		model = defaultOpenAIImageModel
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &OpenAIImageGenerator{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (g *OpenAIImageGenerator) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         req.Prompt,
		Model:          g.model,
		N:              1,
		Size:           openai.CreateImageSize1792x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	out := &ImageResponse{Model: g.model}
	if len(resp.Data) == 0 {
		return out, nil
	}

	img := resp.Data[0]
	switch {
	case img.B64JSON != "":
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return nil, &ErrInvalidResponse{Err: fmt.Errorf("decode image: %w", err)}
		}
		out.Data = data
		out.MIMEType = "image/png"
	case img.URL != "":
		out.URL = img.URL
	}
	return out, nil
}

func (g *OpenAIImageGenerator) ModelID() string {
	return g.model
}
