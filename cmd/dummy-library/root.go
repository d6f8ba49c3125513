package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/handiism/dummy-library/internal/config"
	"github.com/handiism/dummy-library/internal/library"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile        string
	activeSettings *config.Settings
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultSettings()

	cmd := &cobra.Command{
		Use:   "dummy-library",
		Short: "Build a library of tagged placeholder tracks from missing track lists",
		Long: `dummy-library reads the missing track lists a playlist import plugin writes
and places a short tagged MP3 for every listed track under
<library>/<artist>/<album>/<title>.mp3, so the media server finds them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeSettings = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (json|yaml|toml)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// setupLogger configures the standard logrus logger.
func setupLogger(levelStr string) {
	lvl, err := logrus.ParseLevel(levelStr)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func requireSettings() (*config.Settings, error) {
	if activeSettings == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return activeSettings, nil
}

// logProgress maps materializer events onto logrus levels.
func logProgress(event library.ProgressEvent) {
	entry := logrus.NewEntry(logrus.StandardLogger())
	if event.File != "" {
		entry = entry.WithField("file", filepath.Base(event.File))
	}
	if event.Track != "" {
		entry = entry.WithField("track", event.Track)
	}

	switch event.Level {
	case library.LevelVerbose:
		entry.Debug(event.Message)
	case library.LevelWarning:
		entry.Warn(event.Message)
	case library.LevelError:
		entry.Error(event.Message)
	default:
		entry.Info(event.Message)
	}
}
