// Package audio produces and tags the audio files of the dummy library.
//
// # Dummy Asset
//
// EnsureDummyAudio synthesizes a sine tone, writes it as a WAV file and
// transcodes it to MP3 with an external encoder. It does nothing when the
// asset already exists:
//
//	enc := audio.NewFFmpeg("ffmpeg", "192k")
//	created, err := audio.EnsureDummyAudio(ctx, enc, "sample.mp3", audio.DefaultToneConfig())
//
// # ID3 Tagging
//
// Use the Tagger to make a copy of the asset look like a specific track:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(track.Path, track.Descriptor, artworkBytes)
//
// The tagger writes Title, Album, Artist and Album Artist, the latter two
// with every value from the descriptor, plus optional cover art.
//
// # Playlist Generation
//
// Generate playlists in various formats:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true, 3)
//	content := creator.CreatePlaylist("Road Trip", tracks)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
