package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/simplevoice/internal/dictionary"
	"github.com/at-ishikawa/simplevoice/internal/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long queued audio may keep playing after the
// client disconnects.
const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the voice and dictionary tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store := dictionary.NewStore(cfg.Dictionary.File)
			speaker, dispatcher, client, err := newSpeaker(cfg, store)
			if err != nil {
				return err
			}
			defer closeClient(client)
			server := tools.NewServer(speaker, store, version)

			slog.Default().Info("serving tools over stdio",
				"model", cfg.Voice.Model,
				"dictionary", store.Path(),
				"entries", store.Len(),
				"backend", cfg.Playback.Backend)
			return serve(cmd.Context(), func(ctx context.Context) error {
				return server.Run(ctx, &mcp.StdioTransport{})
			}, dispatcher)
		},
	}
}

type closer interface {
	Close(ctx context.Context) error
}

// serve runs the tool server and, once it stops, lets queued audio finish
// playing within shutdownTimeout.
func serve(ctx context.Context, run func(ctx context.Context) error, dispatcher closer) error {
	g, ctx := errgroup.WithContext(ctx)
	runCtx, stop := context.WithCancel(ctx)

	g.Go(func() error {
		defer stop()
		if err := run(runCtx); err != nil {
			return fmt.Errorf("server.Run > %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-runCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := dispatcher.Close(shutdownCtx); err != nil {
			return fmt.Errorf("dispatcher.Close > %w", err)
		}
		slog.Default().Debug("playback drained")
		return nil
	})
	return g.Wait()
}
