package main

import (
	"github.com/spf13/cobra"

	"moviecat/internal/library"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "moviecat",
		Short:         "Manage a personal movie catalog",
		Long:          "moviecat keeps a list of movies with their year, rating and poster.\nRun without a subcommand to use the interactive menu.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *library.Service) error {
				return newMenu(svc, cmd.InOrStdin(), cmd.OutOrStdout()).run(cmd.Context())
			})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	for _, cmd := range newMovieCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newLogsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
