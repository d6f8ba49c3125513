package audio

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/handiism/dummy-library/internal/model"
)

// PlaylistCreator generates playlist files in various formats.
//
// The plugin writes one missing track list per imported playlist. Writing a
// playlist with the same name next to the generated tracks lets the import be
// checked against a known-good ordering.
//
// Entries are paths relative to the library root, so the playlist file is
// expected to live in the library root.
//
// Example:
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true, 3)
//	content := creator.CreatePlaylist("Road Trip", tracks)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:3,Daryl Hall & John Oates - You Make My Dreams (Come True)
//	// Daryl Hall  John Oates/Voices/You Make My Dreams (Come True).mp3
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // For M3U: include EXTINF lines with duration/title
	duration float64
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// Parameters:
//   - format: The playlist format to generate
//   - extended: For M3U format, whether to include #EXTINF lines
//     (ignored for other formats)
//   - duration: Track length in seconds reported for every entry; all placed
//     tracks are copies of the same dummy asset
func NewPlaylistCreator(format model.PlaylistFormat, extended bool, duration float64) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
		duration: duration,
	}
}

// Extension returns the file extension of the configured format.
func (p *PlaylistCreator) Extension() string {
	return p.format.Extension()
}

// CreatePlaylist generates playlist content for the given tracks in order.
func (p *PlaylistCreator) CreatePlaylist(name string, tracks []*model.PlacedTrack) string {
	switch p.format {
	case model.PlaylistFormatM3U:
		return p.createM3U(tracks)
	case model.PlaylistFormatPLS:
		return p.createPLS(tracks)
	case model.PlaylistFormatWPL:
		return p.createWPL(name, tracks)
	case model.PlaylistFormatZPL:
		return p.createZPL(name, tracks)
	default:
		return p.createM3U(tracks)
	}
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:3,Artist - Title
//	Artist/Album/Title.mp3
func (p *PlaylistCreator) createM3U(tracks []*model.PlacedTrack) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range tracks {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s - %s\n", int(p.duration), artistLine(track.Descriptor.ArtistNames), track.Descriptor.Name))
		}
		sb.WriteString(entryPath(track) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=Artist/Album/Title.mp3
//	Title1=Title
//	Length1=3
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(tracks []*model.PlacedTrack) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, track := range tracks {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, entryPath(track)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, track.Descriptor.Name))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, int(p.duration)))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(tracks)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(name string, tracks []*model.PlacedTrack) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(name)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range tracks {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(entryPath(track))))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist.
//
// ZPL is similar to WPL but includes album, artist and duration attributes.
func (p *PlaylistCreator) createZPL(name string, tracks []*model.PlacedTrack) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(name)))
	sb.WriteString("    <meta name=\"Generator\" content=\"dummy-library\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(tracks)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	duration := time.Duration(p.duration * float64(time.Second))
	for _, track := range tracks {
		d := track.Descriptor
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" albumTitle=\"%s\" albumArtist=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\" duration=\"%d\"/>\n",
			escapeXML(entryPath(track)),
			escapeXML(d.AlbumName),
			escapeXML(artistLine(d.AlbumArtistNames)),
			escapeXML(d.Name),
			escapeXML(artistLine(d.ArtistNames)),
			duration.Milliseconds()))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// entryPath is the track path as written into playlists, always with forward slashes.
func entryPath(track *model.PlacedTrack) string {
	return filepath.ToSlash(track.RelPath)
}

func artistLine(names []string) string {
	return strings.Join(names, ", ")
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
