package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiImageModel = "gemini-2.5-flash-image"

// GeminiImageGenerator produces inline images with a Gemini image model.
type GeminiImageGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiImageGenerator creates a Gemini-backed image generator.
func NewGeminiImageGenerator(ctx context.Context, apiKey, model string) (*GeminiImageGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultGeminiImageModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiImageGenerator{client: client, model: model}, nil
}

func (g *GeminiImageGenerator) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	resp := &ImageResponse{Model: g.model}
	if part := firstInlineImage(result); part != nil {
		resp.Data = part.Data
		resp.MIMEType = part.MIMEType
	}
	return resp, nil
}

func (g *GeminiImageGenerator) ModelID() string {
	return g.model
}

// firstInlineImage returns the first inline data part of the first
// candidate, or nil.
func firstInlineImage(result *genai.GenerateContentResponse) *genai.Blob {
	if result == nil || len(result.Candidates) == 0 {
		return nil
	}
	content := result.Candidates[0].Content
	if content == nil {
		return nil
	}
	for _, part := range content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData
		}
	}
	return nil
}
