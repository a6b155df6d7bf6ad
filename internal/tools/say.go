package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/simplevoice/internal/converter"
	"github.com/at-ishikawa/simplevoice/internal/voice"
)

// Converter rewrites text into something the voice model can read.
type Converter interface {
	Convert(text string) converter.Result
}

// AudioQueue hands synthesized audio to background playback.
type AudioQueue interface {
	Enqueue(ctx context.Context, model string, audio []byte) (string, error)
}

// Speaker converts, synthesizes and queues text for one voice model.
type Speaker struct {
	converter   Converter
	synthesizer voice.Synthesizer
	queue       AudioQueue
	model       string
}

func NewSpeaker(converter Converter, synthesizer voice.Synthesizer, queue AudioQueue, model string) *Speaker {
	return &Speaker{
		converter:   converter,
		synthesizer: synthesizer,
		queue:       queue,
		model:       model,
	}
}

// Model returns the voice model used by Say.
func (s *Speaker) Model() string {
	return s.model
}

// Say returns once the audio is queued; it does not wait for playback.
// The outcome is a status line for the caller: "✓", optionally followed by
// the English words that could not be converted, or "Error: ..." on failure.
func (s *Speaker) Say(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return "Error: text is empty"
	}

	result := s.converter.Convert(text)
	audio, err := s.synthesizer.Synthesize(ctx, result.Text, s.model)
	if err != nil {
		slog.Default().Error("failed to synthesize voice", "model", s.model, "error", err)
		return fmt.Sprintf("Error: %v", err)
	}
	if _, err := s.queue.Enqueue(ctx, s.model, audio); err != nil {
		slog.Default().Error("failed to queue audio", "model", s.model, "error", err)
		return fmt.Sprintf("Error: %v", err)
	}

	slog.Default().Info("text queued for playback",
		"model", s.model,
		"text", result.Text,
		"unconverted", result.Unconverted)
	if len(result.Unconverted) > 0 {
		return fmt.Sprintf("✓ (未変換の英単語: %s)", strings.Join(result.Unconverted, ", "))
	}
	return "✓"
}
