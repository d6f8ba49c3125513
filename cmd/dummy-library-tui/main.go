package main

import (
	"fmt"
	"os"

	"github.com/handiism/dummy-library/internal/config"
	"github.com/handiism/dummy-library/internal/tui"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	defaults := config.DefaultSettings()

	cmd := &cobra.Command{
		Use:           "dummy-library-tui",
		Short:         "Interactive dummy library builder",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			return tui.Run(settings)
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "Optional config file (json|yaml|toml)")
	config.RegisterFlags(cmd.Flags(), defaults)
	return cmd
}
