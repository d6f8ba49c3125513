package missing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/dummy-library/internal/missing/dto"
	"github.com/handiism/dummy-library/internal/model"
)

// ErrEmpty is returned for a file that holds no descriptors: an empty file,
// a JSON null or an empty list.
var ErrEmpty = errors.New("missing track list is empty")

// playlistMarker separates the playlist name from the timestamp in file
// names written by the plugin: "{playlist}_missing_{timestamp}.json".
const playlistMarker = "_missing_"

// Parser reads missing track lists.
//
// Example usage:
//
//	parser := missing.NewParser()
//	descriptors, err := parser.ParseFile("/tmp/jfplugin_spotify_import/Road Trip_missing_1700000000.json")
//	if errors.Is(err, missing.ErrEmpty) {
//	    // nothing to place
//	}
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses the descriptor file at path.
func (p *Parser) ParseFile(path string) ([]*model.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	descriptors, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return descriptors, nil
}

// Parse decodes a JSON array of descriptors.
//
// Null entries inside the array are dropped. Entry order is preserved.
func (p *Parser) Parse(data []byte) ([]*model.Descriptor, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil, ErrEmpty
	}

	var tracks []*dto.JSONTrack
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse missing track JSON: %w", err)
	}

	descriptors := make([]*model.Descriptor, 0, len(tracks))
	for _, track := range tracks {
		if track == nil {
			continue
		}
		descriptors = append(descriptors, track.ToDescriptor())
	}

	if len(descriptors) == 0 {
		return nil, ErrEmpty
	}
	return descriptors, nil
}

// PlaylistName returns the playlist a descriptor file was written for.
//
// "Road Trip_missing_1700000000.json" gives "Road Trip". File names that do
// not follow the plugin's pattern give the file name without extension.
func PlaylistName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if idx := strings.LastIndex(stem, playlistMarker); idx > 0 {
		return stem[:idx]
	}
	return stem
}
