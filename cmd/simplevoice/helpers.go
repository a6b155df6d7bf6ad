package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/at-ishikawa/simplevoice/internal/config"
	"github.com/at-ishikawa/simplevoice/internal/converter"
	"github.com/at-ishikawa/simplevoice/internal/dictionary"
	"github.com/at-ishikawa/simplevoice/internal/playback"
	"github.com/at-ishikawa/simplevoice/internal/tools"
	"github.com/at-ishikawa/simplevoice/internal/transliteration"
	"github.com/at-ishikawa/simplevoice/internal/voice"
	"github.com/spf13/pflag"
)

type Backend string

func (b *Backend) Set(val string) error {
	for _, backend := range allBackends {
		if val == string(backend) {
			*b = backend
			return nil
		}
	}
	return fmt.Errorf("invalid backend: %s", val)
}

func (b Backend) String() string {
	return string(b)
}

func (b *Backend) Type() string {
	return "Backend"
}

var (
	_           pflag.Value = (*Backend)(nil)
	allBackends             = []Backend{config.BackendCommand, config.BackendSpeaker, config.BackendNone}

	modelOverride   string
	backendOverride Backend
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if modelOverride != "" {
		cfg.Voice.Model = modelOverride
	}
	if backendOverride != "" {
		cfg.Playback.Backend = string(backendOverride)
	}
	if !voice.IsKnown(cfg.Voice.Model) {
		slog.Default().Warn("unknown voice model, the API may reject it", "model", cfg.Voice.Model)
	}
	return cfg, nil
}

func newConverter(cfg *config.Config, store *dictionary.Store) (*converter.Converter, error) {
	if !cfg.Fallback.Enabled {
		return converter.New(store, nil), nil
	}

	var table *transliteration.Table
	var err error
	if cfg.Fallback.TableFile != "" {
		table, err = transliteration.LoadFile(cfg.Fallback.TableFile)
	} else {
		table, err = transliteration.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load fallback table: %w", err)
	}
	return converter.New(store, table), nil
}

func newPlayer(cfg *config.Config) (playback.Player, error) {
	switch cfg.Playback.Backend {
	case config.BackendNone:
		return playback.NopPlayer{}, nil
	case config.BackendSpeaker:
		return playback.NewSpeakerPlayer(), nil
	default:
		player, err := playback.NewCommandPlayer(cfg.Playback.Command)
		if err != nil {
			return nil, fmt.Errorf("playback.NewCommandPlayer > %w", err)
		}
		return player, nil
	}
}

// newSpeaker wires the converter, the voice API client and the playback
// dispatcher. The caller must close the returned dispatcher and client.
func newSpeaker(cfg *config.Config, store *dictionary.Store) (*tools.Speaker, *playback.Dispatcher, *voice.Client, error) {
	textConverter, err := newConverter(cfg, store)
	if err != nil {
		return nil, nil, nil, err
	}
	player, err := newPlayer(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	dispatcher := playback.NewDispatcher(player, playback.Options{
		TempDirectory: cfg.Playback.TempDirectory,
		KeepFiles:     cfg.Playback.KeepFiles,
		QueueSize:     cfg.Playback.QueueSize,
	})
	client := voice.NewClient(cfg.Voice.APIBase, cfg.Voice.Timeout, cfg.Voice.RetryAttempts)
	return tools.NewSpeaker(textConverter, client, dispatcher, cfg.Voice.Model), dispatcher, client, nil
}

func closeClient(client io.Closer) {
	if err := client.Close(); err != nil {
		slog.Default().Warn("failed to close the voice API client", "error", err)
	}
}
