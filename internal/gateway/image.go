package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"hash/fnv"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/nanoclass/internal/lesson"
	"github.com/abhisek/nanoclass/internal/llm"
)

const (
	// PlaceholderImage is shown when image generation fails.
	PlaceholderImage = "https://picsum.photos/800/450?grayscale"

	// LoadingImage is shown while an image request is in flight.
	LoadingImage = "https://picsum.photos/800/450?blur=2"
)

// SeededImage returns a stable stock image for prompt, used when the model
// answers without an inline image.
func SeededImage(prompt string) string {
	h := fnv.New32a()
	h.Write([]byte(prompt))
	return fmt.Sprintf("https://picsum.photos/seed/%d/800/450", h.Sum32()%10000)
}

// IllustrationPrompt decorates a slide's image prompt with the style hint.
func IllustrationPrompt(prompt string, style lesson.Style) string {
	hint := style.Info().PromptHint
	if hint == "" {
		hint = lesson.StyleCartoon.Info().PromptHint
	}
	return hint + ": " + prompt
}

// GenerateImage illustrates prompt in style and returns a displayable
// reference: a data URI, a hosted URL, or a placeholder. It never fails;
// errors are logged and replaced by PlaceholderImage.
func (c Client) GenerateImage(ctx context.Context, prompt string, style lesson.Style) string {
	if c.images == nil {
		return PlaceholderImage
	}

	if c.opts.ImageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.ImageTimeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, "slide-image")

	resp, err := c.images.GenerateImage(ctx, llm.ImageRequest{Prompt: IllustrationPrompt(prompt, style)})
	if err != nil {
		log.Warn().Err(err).Str("prompt", prompt).Msg("image generation failed, using placeholder")
		return PlaceholderImage
	}

	switch {
	case resp == nil:
		return PlaceholderImage
	case len(resp.Data) > 0:
		mime := resp.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(resp.Data)
	case resp.URL != "":
		return resp.URL
	}
	return SeededImage(prompt)
}
