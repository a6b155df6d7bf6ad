package playback

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/playback/mock_player.go -package=mock_playback

// Player plays a WAV file and returns once playback has finished.
type Player interface {
	Play(ctx context.Context, path string) error
}
