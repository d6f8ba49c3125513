package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/handiism/dummy-library/internal/config"
	"github.com/handiism/dummy-library/internal/library"
	"github.com/handiism/dummy-library/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var track model.Descriptor

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Materialize missing tracks into the library",
		Long: `run ensures the dummy MP3 exists and then, depending on --mode:

  auto    consumes every missing track list in --missing-tracks once
  manual  places the tracks configured as manual_tracks, or the one given
          with --name/--album/--artist
  watch   like auto, then keeps consuming new lists until interrupted

If the dummy MP3 is missing and the encoder fails, run exits with an error
before any track is placed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := requireSettings()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				settings.RunMode = config.RunModeManual
				settings.ManualTracks = []model.Descriptor{track}
			}

			return runLibrary(cmd.Context(), settings)
		},
	}

	cmd.Flags().StringVar(&track.Name, "name", "", "Track title (implies --mode manual)")
	cmd.Flags().StringVar(&track.AlbumName, "album", "", "Album title of the manual track")
	cmd.Flags().StringArrayVar(&track.ArtistNames, "artist", nil, "Track artist, repeatable; the first decides the folder")
	cmd.Flags().StringArrayVar(&track.AlbumArtistNames, "album-artist", nil, "Album artist, repeatable")

	return cmd
}

func runLibrary(ctx context.Context, settings *config.Settings) error {
	if err := ensureDummyAudio(ctx, settings); err != nil {
		return err
	}

	root := settings.LibraryPath
	log := logrus.WithFields(logrus.Fields{"mode": settings.RunMode, "library": root})

	switch settings.RunMode {
	case config.RunModeManual:
		m := library.NewMaterializer(settings, nil, logProgress)
		tracks, err := m.MaterializeAll(ctx, root, settings.ManualDescriptors())
		if err != nil {
			return err
		}
		log.Infof("Placed %d track(s)", len(tracks))
		return nil

	case config.RunModeAuto, config.RunModeWatch:
		queue, err := library.LoadQueue(settings.MissingTracksPath)
		if err != nil {
			return err
		}
		log.WithField("files", queue.Len()).Info("Loaded missing track lists")

		m := library.NewMaterializer(settings, queue, logProgress)
		if settings.RunMode == config.RunModeWatch {
			return m.Watch(ctx, root)
		}

		if _, err := m.Drain(ctx, root); err != nil {
			return err
		}
		logSummary(log, m.Progress(), queue)
		return nil

	default:
		return fmt.Errorf("%w: %q", config.ErrInvalidRunMode, settings.RunMode)
	}
}

func logSummary(log *logrus.Entry, p library.Progress, queue *library.Queue) {
	log = log.WithFields(logrus.Fields{
		"consumed": fmt.Sprintf("%d/%d", p.FilesConsumed, p.FilesTotal),
		"placed":   p.TracksPlaced,
		"skipped":  p.TracksSkipped,
	})
	if current, ok := queue.Current(); ok {
		log.WithField("file", filepath.Base(current)).Warn("Stopped before the end of the queue")
		return
	}
	log.Info("Done")
}
