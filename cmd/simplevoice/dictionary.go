package main

import (
	"fmt"

	"github.com/at-ishikawa/simplevoice/internal/cli"
	"github.com/at-ishikawa/simplevoice/internal/dictionary"
	"github.com/at-ishikawa/simplevoice/internal/tools"
	"github.com/spf13/cobra"
)

func newDictionaryCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "dictionary",
		Short: "Edit the custom pronunciation dictionary",
	}

	rootCommand.AddCommand(&cobra.Command{
		Use:   "add <english> <katakana>",
		Short: "Register readings. Separate several entries with commas",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}
			cli.NewRenderer(cmd.OutOrStdout()).Status(tools.AddEntries(store, args[0], args[1]))
			return nil
		},
	})

	rootCommand.AddCommand(&cobra.Command{
		Use:   "remove <english>",
		Short: "Remove entries. Separate several entries with commas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}
			cli.NewRenderer(cmd.OutOrStdout()).Status(tools.RemoveEntries(store, args[0]))
			return nil
		},
	})

	rootCommand.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show every entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}
			cli.NewRenderer(cmd.OutOrStdout()).Entries(store.List())
			return nil
		},
	})

	var refresh bool
	importCommand := &cobra.Command{
		Use:   "import <url>",
		Short: "Merge a two-column CSV dictionary downloaded from url",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store := dictionary.NewStore(cfg.Dictionary.File)
			importer := dictionary.NewImporter(store, cfg.Dictionary.ImportCacheDirectory)
			result, err := importer.Import(cmd.Context(), args[0], refresh)
			if err != nil {
				return fmt.Errorf("importer.Import > %w", err)
			}
			cli.NewRenderer(cmd.OutOrStdout()).Import(args[0], result)
			return nil
		},
	}
	importCommand.Flags().BoolVar(&refresh, "refresh", false, "download again instead of using the cached copy")
	rootCommand.AddCommand(importCommand)

	return &rootCommand
}

func loadStore() (*dictionary.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return dictionary.NewStore(cfg.Dictionary.File), nil
}
