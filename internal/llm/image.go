package llm

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/nanoclass/internal/store"
)

// ImageGenerator turns a text prompt into a single illustration.
type ImageGenerator interface {
	// GenerateImage returns the image bytes (or a hosted URL) for prompt.
	// A response with neither Data nor URL means the model answered without
	// an image.
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)

	// ModelID returns the image model identifier.
	ModelID() string
}

// ImageRequest describes an illustration to generate.
type ImageRequest struct {
	Prompt string
}

// ImageResponse holds a generated illustration.
type ImageResponse struct {
	Data     []byte
	MIMEType string

	// URL is set by backends that host the result instead of inlining it.
	URL string

	Model string
}

// HasImage reports whether the response carries an image.
func (r *ImageResponse) HasImage() bool {
	return r != nil && (len(r.Data) > 0 || r.URL != "")
}

// LoggingImageGenerator records every image request as an LLM event.
type LoggingImageGenerator struct {
	inner     ImageGenerator
	provider  string
	eventRepo store.EventRepo
}

// WithImageLogging wraps an ImageGenerator with event logging.
func WithImageLogging(g ImageGenerator, provider string, repo store.EventRepo) ImageGenerator {
	return &LoggingImageGenerator{inner: g, provider: provider, eventRepo: repo}
}

func (l *LoggingImageGenerator) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	start := time.Now()

	resp, err := l.inner.GenerateImage(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil && resp.HasImage(),
		RequestBody: req.Prompt,
	}
	switch {
	case err != nil:
		data.ErrorMessage = err.Error()
	case resp.HasImage():
		if resp.URL != "" {
			data.ResponseBody = resp.URL
		} else {
			data.ResponseBody = resp.MIMEType
		}
	default:
		data.ErrorMessage = "no image in response"
	}

	if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
		log.Warn().Err(logErr).Msg("failed to log image request event")
	}

	return resp, err
}

func (l *LoggingImageGenerator) ModelID() string {
	return l.inner.ModelID()
}

// MockImageResponse is a canned response for the MockImageGenerator.
type MockImageResponse struct {
	Data     []byte
	MIMEType string
	URL      string
	Err      error
}

// MockImageGenerator is a deterministic ImageGenerator for testing.
// It returns canned responses in FIFO order and records all prompts.
type MockImageGenerator struct {
	mu        sync.Mutex
	responses []MockImageResponse
	Calls     []ImageRequest
}

// NewMockImageGenerator creates a MockImageGenerator with the given canned
// responses.
func NewMockImageGenerator(responses ...MockImageResponse) *MockImageGenerator {
	return &MockImageGenerator{responses: responses}
}

// GenerateImage returns the next canned response or ErrProviderUnavailable
// if the queue is empty.
func (m *MockImageGenerator) GenerateImage(_ context.Context, req ImageRequest) (*ImageResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}
	return &ImageResponse{
		Data:     resp.Data,
		MIMEType: resp.MIMEType,
		URL:      resp.URL,
		Model:    "mock-image",
	}, nil
}

// ModelID returns "mock-image".
func (m *MockImageGenerator) ModelID() string {
	return "mock-image"
}

// CallCount returns the number of GenerateImage calls made.
func (m *MockImageGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
