package main

import (
	"context"

	"github.com/handiism/dummy-library/internal/audio"
	"github.com/handiism/dummy-library/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Create the dummy MP3 if it does not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := requireSettings()
			if err != nil {
				return err
			}
			return ensureDummyAudio(cmd.Context(), settings)
		},
	}
}

// ensureDummyAudio creates the dummy asset with ffmpeg, logging the encoder's
// command line and output at debug level.
func ensureDummyAudio(ctx context.Context, settings *config.Settings) error {
	tone := settings.ToToneConfig()

	stderr := logrus.StandardLogger().WriterLevel(logrus.DebugLevel)
	defer stderr.Close()

	enc := audio.NewFFmpeg(settings.EncoderPath, tone.Bitrate)
	enc.Stderr = stderr
	enc.OnCommand = func(argv []string) {
		logrus.WithField("argv", argv).Debug("Running encoder")
	}

	log := logrus.WithField("path", settings.DummyAudioPath)
	created, err := audio.EnsureDummyAudio(ctx, enc, settings.DummyAudioPath, tone)
	if err != nil {
		return err
	}
	if created {
		log.WithField("seconds", tone.Seconds()).Info("Created dummy audio")
	} else {
		log.Debug("Dummy audio already exists")
	}
	return nil
}
