package main

import (
	"github.com/at-ishikawa/simplevoice/internal/cli"
	"github.com/at-ishikawa/simplevoice/internal/voice"
	"github.com/spf13/cobra"
)

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the voice models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cli.NewRenderer(cmd.OutOrStdout()).Models(voice.Models(), cfg.Voice.Model)
			return nil
		},
	}
}
