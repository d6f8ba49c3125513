// Package model defines the core data structures used throughout
// the dummy-library application.
//
// # Descriptor
//
// Descriptor is one entry of a missing track list written by the
// playlist-import plugin:
//
//	d := &model.Descriptor{
//	    Name:             "Back in Black",
//	    AlbumName:        "Back in Black",
//	    ArtistNames:      []string{"AC/DC"},
//	    AlbumArtistNames: []string{"AC/DC"},
//	}
//
// # PlacedTrack
//
// PlacedTrack computes where a descriptor's dummy file lives in the library:
//
//	track := model.NewPlacedTrack("/music", d)
//	fmt.Println(track.Path) // "/music/ACDC/Back in Black/Back in Black.mp3"
//
// Path segments are cleaned with SanitizeName, which keeps letters, numbers,
// underscore, hyphen, parentheses and spaces and drops everything else.
package model
