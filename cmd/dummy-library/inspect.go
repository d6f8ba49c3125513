package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/handiism/dummy-library/internal/audio"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.mp3>...",
		Short: "Print the tags of placed tracks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, path := range args {
				tags, err := audio.ReadTags(path)
				if err != nil {
					return err
				}
				if i > 0 {
					_, _ = fmt.Fprintln(out)
				}
				printTags(out, path, tags)
			}
			return nil
		},
	}
}

func printTags(w io.Writer, path string, tags audio.TagSet) {
	artwork := "no"
	if tags.HasArtwork {
		artwork = "yes"
	}
	_, _ = fmt.Fprintf(w, "%s\n", path)
	_, _ = fmt.Fprintf(w, "  Title:         %s\n", tags.Title)
	_, _ = fmt.Fprintf(w, "  Album:         %s\n", tags.Album)
	_, _ = fmt.Fprintf(w, "  Artists:       %s\n", strings.Join(tags.Artists, "; "))
	_, _ = fmt.Fprintf(w, "  Album artists: %s\n", strings.Join(tags.AlbumArtists, "; "))
	_, _ = fmt.Fprintf(w, "  Cover art:     %s\n", artwork)
}
