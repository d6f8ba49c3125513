package audio

import (
	"strings"
	"testing"

	"github.com/handiism/dummy-library/internal/model"
	"github.com/stretchr/testify/assert"
)

func createTestTracks() []*model.PlacedTrack {
	root := "/library"
	return []*model.PlacedTrack{
		model.NewPlacedTrack(root, &model.Descriptor{
			Name:             "You Make My Dreams (Come True)",
			AlbumName:        "Voices",
			ArtistNames:      []string{"Daryl Hall & John Oates"},
			AlbumArtistNames: []string{"Daryl Hall & John Oates"},
		}),
		model.NewPlacedTrack(root, &model.Descriptor{
			Name:             "Under Pressure",
			AlbumName:        "Hot Space",
			ArtistNames:      []string{"Queen", "David Bowie"},
			AlbumArtistNames: []string{"Queen"},
		}),
	}
}

func TestPlaylistCreator_M3U(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, false, 3)

	content := creator.CreatePlaylist("Road Trip", createTestTracks())

	want := "Daryl Hall  John Oates/Voices/You Make My Dreams (Come True).mp3\n" +
		"Queen/Hot Space/Under Pressure.mp3\n"
	assert.Equal(t, want, content)
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true, 3)

	content := creator.CreatePlaylist("Road Trip", createTestTracks())

	assert.True(t, strings.HasPrefix(content, "#EXTM3U\n"))
	assert.Contains(t, content, "#EXTINF:3,Daryl Hall & John Oates - You Make My Dreams (Come True)\n")
	assert.Contains(t, content, "#EXTINF:3,Queen, David Bowie - Under Pressure\n")
}

func TestPlaylistCreator_PLS(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatPLS, false, 3)

	content := creator.CreatePlaylist("Road Trip", createTestTracks())

	assert.True(t, strings.HasPrefix(content, "[playlist]\n"))
	assert.Contains(t, content, "File2=Queen/Hot Space/Under Pressure.mp3\n")
	assert.Contains(t, content, "Title1=You Make My Dreams (Come True)\n")
	assert.Contains(t, content, "Length1=3\n")
	assert.Contains(t, content, "NumberOfEntries=2\n")
	assert.True(t, strings.HasSuffix(content, "Version=2\n"))
}

func TestPlaylistCreator_WPL(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatWPL, false, 3)

	content := creator.CreatePlaylist("Rock & Roll", createTestTracks())

	assert.Contains(t, content, "<?wpl version=\"1.0\"?>")
	assert.Contains(t, content, "<title>Rock &amp; Roll</title>")
	assert.Contains(t, content, "<media src=\"Queen/Hot Space/Under Pressure.mp3\"/>")
}

func TestPlaylistCreator_ZPL(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatZPL, false, 3)

	content := creator.CreatePlaylist("Road Trip", createTestTracks())

	assert.Contains(t, content, "<?zpl version=\"2.0\"?>")
	assert.Contains(t, content, "<meta name=\"ItemCount\" content=\"2\"/>")
	assert.Contains(t, content, "trackArtist=\"Daryl Hall &amp; John Oates\"")
	assert.Contains(t, content, "duration=\"3000\"")
}

func TestPlaylistCreator_Empty(t *testing.T) {
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true, 3)
	assert.Equal(t, "#EXTM3U\n", creator.CreatePlaylist("Empty", nil))
}

func TestPlaylistCreator_Extension(t *testing.T) {
	assert.Equal(t, ".m3u", NewPlaylistCreator(model.PlaylistFormatM3U, false, 0).Extension())
	assert.Equal(t, ".zpl", NewPlaylistCreator(model.PlaylistFormatZPL, false, 0).Extension())
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;Tom &amp; Jerry&apos;s&lt;/a&gt;", escapeXML(`<a href="x">Tom & Jerry's</a>`))
}
