package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/at-ishikawa/simplevoice/internal/cli"
	"github.com/at-ishikawa/simplevoice/internal/dictionary"
	"github.com/spf13/cobra"
)

func newSayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "say <text>",
		Short: "Speak text once and wait for playback to finish",
		Args:  cobra.MinimumNArgs(1),
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

			message := speaker.Say(cmd.Context(), strings.Join(args, " "))
			if err := dispatcher.Close(cmd.Context()); err != nil {
				return fmt.Errorf("dispatcher.Close > %w", err)
			}
			if strings.HasPrefix(message, "Error") {
				return errors.New(message)
			}
			cli.NewRenderer(cmd.OutOrStdout()).Status(message)
			return nil
		},
	}
}
