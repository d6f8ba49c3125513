package model

import (
	"path/filepath"
	"regexp"
	"strings"
)

// TrackExtension is the file extension of every placed track.
const TrackExtension = ".mp3"

// PlacedTrack is a descriptor together with the location of its dummy file
// inside the library.
//
// The path layout is fixed:
//
//	<library root>/<artist>/<album>/<title>.mp3
//
// where each segment is passed through SanitizeName and the album segment is
// additionally trimmed of surrounding whitespace.
//
// Example:
//
//	d := &Descriptor{Name: "X", AlbumName: "Y", ArtistNames: []string{"Z"}}
//	track := NewPlacedTrack("/music", d)
//	// track.Dir  = "/music/Z/Y"
//	// track.Path = "/music/Z/Y/X.mp3"
//	// track.RelPath = "Z/Y/X.mp3"
type PlacedTrack struct {
	// Descriptor is the source record.
	Descriptor *Descriptor

	// Dir is the album directory the file lives in.
	Dir string

	// Path is the full file path including the extension.
	Path string

	// RelPath is Path relative to the library root, used for playlists.
	RelPath string
}

// NewPlacedTrack computes where the descriptor's file goes below root.
func NewPlacedTrack(root string, d *Descriptor) *PlacedTrack {
	artist := SanitizeName(d.PrimaryArtist())
	album := strings.TrimSpace(SanitizeName(d.AlbumName))
	fileName := SanitizeName(d.Name) + TrackExtension

	rel := filepath.Join(artist, album, fileName)
	dir := filepath.Join(root, artist, album)

	return &PlacedTrack{
		Descriptor: d,
		Dir:        dir,
		Path:       filepath.Join(dir, fileName),
		RelPath:    rel,
	}
}

// disallowedChars matches every rune that may not appear in a path segment.
// Kept: letters and numbers of any script, underscore, hyphen, parentheses
// and the plain space.
var disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}_\-() ]`)

// SanitizeName removes every character that is not safe in a library path
// segment. Kept characters retain their order; nothing is replaced.
//
// Example:
//
//	SanitizeName("AC/DC: Back in Black!") // Returns "ACDC Back in Black"
func SanitizeName(name string) string {
	return disallowedChars.ReplaceAllString(name, "")
}
