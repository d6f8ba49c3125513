package dto

import (
	"encoding/json"
	"fmt"

	"github.com/handiism/dummy-library/internal/model"
)

// JSONTrack is one entry of a missing track list as the plugin writes it.
type JSONTrack struct {
	ID               string   `json:"Id"`
	Name             string   `json:"Name"`
	AlbumName        string   `json:"AlbumName"`
	AlbumArtistNames NameList `json:"AlbumArtistNames"`
	ArtistNames      NameList `json:"ArtistNames"`
}

// NameList is a list of artist names.
//
// The plugin normally writes an array, but a bare string or null are
// accepted as a single name or no names.
type NameList []string

// UnmarshalJSON accepts an array of strings, a single string or null.
func (n *NameList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*n = nil
		} else {
			*n = NameList{single}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("artist names: %w", err)
	}
	*n = list
	return nil
}

// ToDescriptor converts JSONTrack to a model.Descriptor.
func (jt *JSONTrack) ToDescriptor() *model.Descriptor {
	return &model.Descriptor{
		ID:               jt.ID,
		Name:             jt.Name,
		AlbumName:        jt.AlbumName,
		AlbumArtistNames: []string(jt.AlbumArtistNames),
		ArtistNames:      []string(jt.ArtistNames),
	}
}
