// Package gateway adapts the generative backends to lesson-level
// operations: drafting a lesson, illustrating a slide and producing a slide
// transition.
//
// GenerateTransition is a mocked boundary for transition video. No backend
// produces video yet, so callers may simulate the transition instead.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/nanoclass/internal/llm"
	"github.com/abhisek/nanoclass/internal/store"
)

// ErrNotConfigured is returned when no usable API key backs the client,
// either because none was given or because the provider rejected it.
var ErrNotConfigured = errors.New("AI client is not configured: check your API key")

// ParseError reports a draft response that could not be turned into a
// lesson of the expected shape.
type ParseError struct {
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not understand the generated lesson: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Options tunes gateway calls.
type Options struct {
	DraftTimeout    time.Duration
	ImageTimeout    time.Duration
	TransitionDelay time.Duration
	MaxTokens       int
	Temperature     float64
}

// DefaultOptions returns the standard timeouts and generation settings.
func DefaultOptions() Options {
	return Options{
		DraftTimeout:    60 * time.Second,
		ImageTimeout:    90 * time.Second,
		TransitionDelay: 1 * time.Second,
		MaxTokens:       4096,
		Temperature:     0.7,
	}
}

// Client carries the configured backends. The zero value is Unconfigured:
// drafts fail with ErrNotConfigured and images fall back to the placeholder.
type Client struct {
	text   llm.Provider
	images llm.ImageGenerator
	opts   Options
}

// Unconfigured is the client used before an API key is available.
var Unconfigured = Client{opts: DefaultOptions()}

// New returns a client over the given backends. images may be nil.
func New(text llm.Provider, images llm.ImageGenerator, opts Options) Client {
	return Client{text: text, images: images, opts: opts}
}

// NewFromConfig builds the text provider and image generator described by
// cfg. A text provider that cannot be built is an error; an image generator
// that cannot be built only disables illustrations.
func NewFromConfig(ctx context.Context, cfg llm.Config, events store.EventRepo) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return Unconfigured, fmt.Errorf("%w: %w", ErrNotConfigured, err)
	}

	text, err := llm.NewProvider(ctx, cfg, events)
	if err != nil {
		return Unconfigured, fmt.Errorf("%w: %w", ErrNotConfigured, err)
	}

	images, err := llm.NewImageGenerator(ctx, cfg, events)
	if err != nil {
		log.Warn().Err(err).Msg("image generation disabled")
		images = nil
	}

	opts := DefaultOptions()
	if cfg.Timeout > 0 {
		opts.DraftTimeout = cfg.Timeout
	}
	if cfg.Image.Timeout > 0 {
		opts.ImageTimeout = cfg.Image.Timeout
	}

	return New(text, images, opts), nil
}

// Configured reports whether the client can draft lessons.
func (c Client) Configured() bool {
	return c.text != nil
}

// CanIllustrate reports whether the client has an image backend.
func (c Client) CanIllustrate() bool {
	return c.images != nil
}

// Options returns the client's tuning.
func (c Client) Options() Options {
	return c.opts
}
