// Package config provides configuration management for dummy-library.
//
// Settings are resolved in this order, later sources winning:
//
//  1. DefaultSettings()
//  2. a config file (--config, or dummy-library.json/.yaml/.toml in the
//     working directory)
//  3. DUMMYLIB_* environment variables, e.g. DUMMYLIB_LIBRARY_PATH or
//     DUMMYLIB_TONE_FREQUENCY
//  4. command line flags registered with RegisterFlags
//
// # Loading
//
//	settings, err := config.Load(config.LoadOptions{Cmd: cmd, ConfigFile: path})
//	if err != nil {
//	    return err
//	}
//
// # Saving Settings
//
//	err := config.DefaultSettings().Save("dummy-library.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - Run mode (auto, manual, watch)
//   - Encoder, dummy asset, library and descriptor paths
//   - Overwrite and malformed file handling
//   - Tone parameters of the dummy asset
//   - Cover art and playlist generation
package config
