package playback

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const (
	speakerSampleRate = beep.SampleRate(44100)
	resampleQuality   = 4
)

// SpeakerPlayer decodes WAV files and plays them on the default output device
// of this process. Files played at the same time are mixed.
type SpeakerPlayer struct {
	initOnce sync.Once
	initErr  error
}

func NewSpeakerPlayer() *SpeakerPlayer {
	return &SpeakerPlayer{}
}

func (p *SpeakerPlayer) init() error {
	p.initOnce.Do(func() {
		p.initErr = speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10))
	})
	return p.initErr
}

// Play implements the Player interface
func (p *SpeakerPlayer) Play(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("os.Open > %w", err)
	}
	streamer, format, err := wav.Decode(file)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("wav.Decode > %w", err)
	}
	defer func() {
		_ = streamer.Close()
	}()

	if err := p.init(); err != nil {
		return fmt.Errorf("speaker.Init > %w", err)
	}

	var source beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		source = beep.Resample(resampleQuality, format.SampleRate, speakerSampleRate, streamer)
	}

	done := make(chan struct{})
	var stopped atomic.Bool
	sequence := beep.Seq(source, beep.Callback(func() {
		close(done)
	}))
	speaker.Play(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if stopped.Load() {
			return 0, false
		}
		return sequence.Stream(samples)
	}))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Lock()
		stopped.Store(true)
		speaker.Unlock()
		return ctx.Err()
	}
}
