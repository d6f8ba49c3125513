package model

// Descriptor describes one track the media server could not find in its
// library. The plugin writes lists of these as JSON files ("missing track
// lists"), one file per imported playlist.
//
// Example file content:
//
//	[
//	  {
//	    "Id": "4uLU6hMCjMI75M1A2tKUQC",
//	    "Name": "You Make My Dreams (Come True)",
//	    "AlbumName": "Voices",
//	    "AlbumArtistNames": ["Daryl Hall & John Oates"],
//	    "ArtistNames": ["Daryl Hall & John Oates"]
//	  }
//	]
type Descriptor struct {
	// ID is the provider track id. Informational only.
	ID string `json:"Id,omitempty" mapstructure:"Id"`

	// Name is the track title.
	Name string `json:"Name" mapstructure:"Name"`

	// AlbumName is the album title.
	AlbumName string `json:"AlbumName" mapstructure:"AlbumName"`

	// AlbumArtistNames lists the album artists in provider order.
	AlbumArtistNames []string `json:"AlbumArtistNames" mapstructure:"AlbumArtistNames"`

	// ArtistNames lists the track artists in provider order.
	// The first entry decides the artist folder.
	ArtistNames []string `json:"ArtistNames" mapstructure:"ArtistNames"`
}

// PrimaryArtist returns the first track artist, or "" when there is none.
func (d *Descriptor) PrimaryArtist() string {
	if len(d.ArtistNames) == 0 {
		return ""
	}
	return d.ArtistNames[0]
}
