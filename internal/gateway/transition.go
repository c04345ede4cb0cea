package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/nanoclass/internal/lesson"
)

// TransitionAsset is the reference returned by the mocked transition
// generator.
const TransitionAsset = "transition_video_url.mp4"

// TransitionPrompt describes the video that would morph from into to.
func TransitionPrompt(from, to lesson.Slide) string {
	return fmt.Sprintf("Smooth cartoon transition. %s morphing into %s. Magical sparkles.", from.ImagePrompt, to.ImagePrompt)
}

// GenerateTransition stands in for a generated video between two slides.
// It waits TransitionDelay and returns TransitionAsset. The player
// simulates transitions locally and does not call it.
func (c Client) GenerateTransition(ctx context.Context, from, to lesson.Slide) (string, error) {
	log.Debug().Str("prompt", TransitionPrompt(from, to)).Msg("mock transition requested")

	t := time.NewTimer(c.opts.TransitionDelay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-t.C:
		return TransitionAsset, nil
	}
}
