package voice

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/voice/mock_synthesizer.go -package=mock_voice

// Synthesizer turns text into WAV audio spoken by a voice model.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, model string) ([]byte, error)
}
