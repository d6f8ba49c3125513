package audio

import (
	"fmt"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/handiism/dummy-library/internal/model"
)

// ID3v2.4 text frames written for every placed track.
const (
	frameTitle       = "TIT2"
	frameAlbum       = "TALB"
	frameArtist      = "TPE1"
	frameAlbumArtist = "TPE2"
)

// valueSeparator joins multiple values in one ID3v2.4 text frame.
const valueSeparator = "\x00"

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty removes the frame.
	TagEmpty TagEditAction = iota

	// TagModify replaces the frame with the value from the descriptor.
	TagModify

	// TagDoNotModify leaves whatever the dummy asset carries.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags:  true,
//	    Title:       TagModify,
//	    Album:       TagModify,
//	    Artist:      TagModify,
//	    AlbumArtist: TagEmpty, // drop album artists entirely
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no text frames are touched.
	ModifyTags bool

	// Title controls the TIT2 frame.
	Title TagEditAction

	// Album controls the TALB frame.
	Album TagEditAction

	// Artist controls the TPE1 frame.
	Artist TagEditAction

	// AlbumArtist controls the TPE2 frame.
	AlbumArtist TagEditAction
}

// DefaultTagConfig returns a configuration that rewrites all four frames.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:  true,
		Title:       TagModify,
		Album:       TagModify,
		Artist:      TagModify,
		AlbumArtist: TagModify,
	}
}

// TagSet is the tag content read back from a file.
type TagSet struct {
	Title        string
	Album        string
	Artists      []string
	AlbumArtists []string
	HasArtwork   bool
}

// Tagger writes ID3 tags to placed tracks.
//
// Every placed track starts as a byte copy of the dummy asset, so the tagger
// overwrites the frames that identify the track:
//   - Title (TIT2) from Descriptor.Name
//   - Album (TALB) from Descriptor.AlbumName
//   - Artist (TPE1) from Descriptor.ArtistNames, all values
//   - Album Artist (TPE2) from Descriptor.AlbumArtistNames, all values
//   - Cover Art (attached picture), when artwork is supplied
//
// Tags are saved as ID3v2.4 with UTF-8 text so that multiple artists are kept
// as separate values.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.SaveTags(track.Path, track.Descriptor, nil)
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes the descriptor's tags to the file at path.
//
// The file must exist. Existing frames that are not managed by the Tagger
// (for example the encoder's TSSE frame) are preserved.
func (t *Tagger) SaveTags(path string, d *model.Descriptor, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tags of %s: %w", path, err)
	}
	defer tag.Close()

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if t.config.ModifyTags {
		t.updateTextFrames(tag, d)
	}

	if artwork != nil {
		t.updateArtwork(tag, artwork)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags of %s: %w", path, err)
	}
	return nil
}

// updateTextFrames updates the four managed text frames based on configuration.
func (t *Tagger) updateTextFrames(tag *id3v2.Tag, d *model.Descriptor) {
	setTextValues(tag, frameTitle, t.config.Title, []string{d.Name})
	setTextValues(tag, frameAlbum, t.config.Album, []string{d.AlbumName})
	setTextValues(tag, frameArtist, t.config.Artist, d.ArtistNames)
	setTextValues(tag, frameAlbumArtist, t.config.AlbumArtist, d.AlbumArtistNames)
}

func setTextValues(tag *id3v2.Tag, id string, action TagEditAction, values []string) {
	switch action {
	case TagEmpty:
		tag.DeleteFrames(id)
	case TagModify:
		if len(values) == 0 {
			tag.DeleteFrames(id)
			return
		}
		tag.AddTextFrame(id, id3v2.EncodingUTF8, strings.Join(values, valueSeparator))
	}
}

// updateArtwork embeds cover art as the front cover picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}

// ReadTags reads the managed frames back from a file.
func ReadTags(path string) (TagSet, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return TagSet{}, fmt.Errorf("open tags of %s: %w", path, err)
	}
	defer tag.Close()

	return TagSet{
		Title:        firstValue(tag.GetTextFrame(frameTitle).Text),
		Album:        firstValue(tag.GetTextFrame(frameAlbum).Text),
		Artists:      splitValues(tag.GetTextFrame(frameArtist).Text),
		AlbumArtists: splitValues(tag.GetTextFrame(frameAlbumArtist).Text),
		HasArtwork:   len(tag.GetFrames(tag.CommonID("Attached picture"))) > 0,
	}, nil
}

// splitValues splits a multi-value text frame, dropping empty entries.
func splitValues(text string) []string {
	var values []string
	for _, v := range strings.Split(text, valueSeparator) {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

func firstValue(text string) string {
	values := splitValues(text)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
