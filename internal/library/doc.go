// Package library builds the dummy music library.
//
// A Materializer consumes a Queue of missing track lists one file at a time.
// For every descriptor in a file it copies the dummy asset to
//
//	<library root>/<artist>/<album>/<title>.mp3
//
// and tags the copy so that a media server scanning the library finds a
// track matching the descriptor.
//
// # Basic Usage
//
//	queue, err := library.LoadQueue(settings.MissingTracksPath)
//	if err != nil {
//	    return err
//	}
//	m := library.NewMaterializer(settings, queue, func(event library.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	consumed, err := m.Drain(ctx, settings.LibraryPath)
//
// # Malformed Files
//
// ConsumeNext stops at a file it cannot read or that holds no descriptors and
// leaves the cursor on it. With Settings.SkipMalformed the file is reported
// and skipped instead.
//
// # Watch Mode
//
// Watch drains the queue and then keeps consuming descriptor files as they
// appear in the missing tracks directory.
package library
