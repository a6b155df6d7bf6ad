package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	configFile string
	// version is set at build time with -ldflags "-X main.version=..."
	version = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rootCommand := newRootCommand()
	err := rootCommand.ExecuteContext(ctx)
	stop()
	if err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	var debugMode bool
	rootCommand := &cobra.Command{
		Use:           "simplevoice",
		Short:         "Read Japanese text aloud with English words converted to katakana",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// stdout is reserved for command output and the tool protocol.
			setupLogger(debugMode, os.Stderr)
			return nil
		},
	}
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path")
	flags.BoolVar(&debugMode, "debug", false, "Enable debug mode")
	flags.StringVar(&modelOverride, "model", "", "voice model, overriding voice.model and VOICE_MODEL")
	backendOverride = ""
	flags.Var(&backendOverride, "backend", fmt.Sprintf("playback backend. Possible values are %v", allBackends))

	rootCommand.AddCommand(
		newServeCommand(),
		newSayCommand(),
		newConvertCommand(),
		newDictionaryCommand(),
		newModelsCommand(),
	)
	return rootCommand
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool, w io.Writer) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}
