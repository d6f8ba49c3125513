// Package ioutils provides file system and image processing utilities.
//
// # File Operations
//
//	// Copy the dummy asset into the library
//	err := ioutils.CopyFile(ctx, "sample.mp3", "/music/Artist/Album/Track.mp3")
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/music/Artist/Album")
//
//	// Check for an existing file without treating permission errors as absence
//	ok, err := ioutils.FileExists("sample.mp3")
//
// # Cover Art
//
// The ImageService loads an image once and prepares it for embedding:
//
//	svc := ioutils.NewImageService()
//	art, err := svc.LoadCoverArt(ctx, "cover.png", 500)
package ioutils
