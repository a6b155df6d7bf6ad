package main

import (
	"strings"

	"github.com/at-ishikawa/simplevoice/internal/cli"
	"github.com/at-ishikawa/simplevoice/internal/dictionary"
	"github.com/spf13/cobra"
)

func newConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <text>",
		Short: "Print the text as it would be sent to the voice API",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			textConverter, err := newConverter(cfg, dictionary.NewStore(cfg.Dictionary.File))
			if err != nil {
				return err
			}
			result := textConverter.Convert(strings.Join(args, " "))
			cli.NewRenderer(cmd.OutOrStdout()).Conversion(result)
			return nil
		},
	}
}
