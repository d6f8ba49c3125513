// Package missing reads the missing track lists a media server plugin writes
// when it imports a playlist and cannot find some of its tracks.
//
// Each list is a JSON array of objects with the keys Id, Name, AlbumName,
// AlbumArtistNames and ArtistNames:
//
//	parser := missing.NewParser()
//	descriptors, err := parser.ParseFile(path)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s: %d tracks\n", missing.PlaylistName(path), len(descriptors))
package missing
