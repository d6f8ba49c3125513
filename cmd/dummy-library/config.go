package main

import (
	"encoding/json"
	"fmt"

	"github.com/handiism/dummy-library/internal/config"
	ioutils "github.com/handiism/dummy-library/internal/io"
	"github.com/handiism/dummy-library/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "dummy-library.json"

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective settings as a JSON config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			settings, err := requireSettings()
			if err != nil {
				return err
			}

			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}

			exists, err := ioutils.FileExists(path)
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			out := *settings
			if len(out.ManualTracks) == 0 {
				out.ManualTracks = []model.Descriptor{config.SampleTrack()}
			}
			if err := out.Save(path); err != nil {
				return err
			}
			logrus.WithField("path", path).Info("Wrote config")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := requireSettings()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(settings, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
