package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/dummy-library/internal/audio"
	"github.com/handiism/dummy-library/internal/model"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "DUMMYLIB"

// ErrInvalidRunMode is returned for a run_mode other than auto, manual or watch.
var ErrInvalidRunMode = errors.New("invalid run mode")

// ErrInvalidOverwrite is returned for an overwrite policy other than always or skip.
var ErrInvalidOverwrite = errors.New("invalid overwrite policy")

// RunMode selects what the driver materializes.
type RunMode string

const (
	// RunModeAuto drains every descriptor file in the missing tracks directory.
	RunModeAuto RunMode = "auto"

	// RunModeManual materializes the configured manual tracks.
	RunModeManual RunMode = "manual"

	// RunModeWatch drains the directory, then keeps materializing new files.
	RunModeWatch RunMode = "watch"
)

// ParseRunMode maps a settings value to a RunMode.
func ParseRunMode(s string) (RunMode, error) {
	switch mode := RunMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case RunModeAuto, RunModeManual, RunModeWatch:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRunMode, s)
	}
}

// OverwritePolicy decides what happens when a track file already exists.
type OverwritePolicy string

const (
	// OverwriteAlways copies and tags the track again.
	OverwriteAlways OverwritePolicy = "always"

	// OverwriteSkip leaves the existing file untouched.
	OverwriteSkip OverwritePolicy = "skip"
)

// ParseOverwritePolicy maps a settings value to an OverwritePolicy.
func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	switch policy := OverwritePolicy(strings.ToLower(strings.TrimSpace(s))); policy {
	case OverwriteAlways, OverwriteSkip:
		return policy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOverwrite, s)
	}
}

// ToneSettings configures the generated dummy audio.
type ToneSettings struct {
	Frequency  float64 `mapstructure:"frequency" json:"frequency"`
	Amplitude  float64 `mapstructure:"amplitude" json:"amplitude"`
	SampleRate int     `mapstructure:"sample_rate" json:"sample_rate"`
	DurationMS int     `mapstructure:"duration_ms" json:"duration_ms"`
	Bitrate    string  `mapstructure:"bitrate" json:"bitrate"`
}

// Settings holds all configuration options.
type Settings struct {
	RunMode  RunMode `mapstructure:"run_mode" json:"run_mode"`
	LogLevel string  `mapstructure:"log_level" json:"log_level"`

	// Paths
	EncoderPath       string `mapstructure:"encoder_path" json:"encoder_path"`
	DummyAudioPath    string `mapstructure:"dummy_audio_path" json:"dummy_audio_path"`
	LibraryPath       string `mapstructure:"library_path" json:"library_path"`
	MissingTracksPath string `mapstructure:"missing_tracks_path" json:"missing_tracks_path"`

	// Materialization
	Overwrite     OverwritePolicy `mapstructure:"overwrite" json:"overwrite"`
	SkipMalformed bool            `mapstructure:"skip_malformed" json:"skip_malformed"`
	ModifyTags    bool            `mapstructure:"modify_tags" json:"modify_tags"`

	Tone ToneSettings `mapstructure:"tone" json:"tone"`

	// Cover art settings
	CoverArtPath    string `mapstructure:"cover_art_path" json:"cover_art_path"`
	CoverArtMaxSize int    `mapstructure:"cover_art_max_size" json:"cover_art_max_size"`

	// Playlist settings
	CreatePlaylist bool   `mapstructure:"create_playlist" json:"create_playlist"`
	PlaylistFormat string `mapstructure:"playlist_format" json:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `mapstructure:"m3u_extended" json:"m3u_extended"`

	// ManualTracks are materialized in manual mode.
	ManualTracks []model.Descriptor `mapstructure:"manual_tracks" json:"manual_tracks"`
}

// LoadOptions controls where Load reads settings from.
type LoadOptions struct {
	// Cmd supplies the flags registered with RegisterFlags. Optional.
	Cmd flagBinder
	// ConfigFile is an explicit config file. When empty, dummy-library.{json,yaml,toml}
	// in the working directory is used if present.
	ConfigFile string
	Defaults   *Settings
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// flagKeys maps command line flags to settings keys.
var flagKeys = map[string]string{
	"mode":               "run_mode",
	"log-level":          "log_level",
	"encoder":            "encoder_path",
	"dummy-audio":        "dummy_audio_path",
	"library":            "library_path",
	"missing-tracks":     "missing_tracks_path",
	"overwrite":          "overwrite",
	"skip-malformed":     "skip_malformed",
	"modify-tags":        "modify_tags",
	"tone-frequency":     "tone.frequency",
	"tone-amplitude":     "tone.amplitude",
	"tone-sample-rate":   "tone.sample_rate",
	"tone-duration-ms":   "tone.duration_ms",
	"tone-bitrate":       "tone.bitrate",
	"cover-art":          "cover_art_path",
	"cover-art-max-size": "cover_art_max_size",
	"create-playlist":    "create_playlist",
	"playlist-format":    "playlist_format",
	"m3u-extended":       "m3u_extended",
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	tone := audio.DefaultToneConfig()
	return &Settings{
		RunMode:  RunModeAuto,
		LogLevel: "info",

		EncoderPath:       "ffmpeg",
		DummyAudioPath:    "sample.mp3",
		LibraryPath:       filepath.Join(homeDir, "Music", "dummy_library"),
		MissingTracksPath: filepath.Join(os.TempDir(), "jfplugin_spotify_import"),

		Overwrite:     OverwriteAlways,
		SkipMalformed: false,
		ModifyTags:    true,

		Tone: ToneSettings{
			Frequency:  tone.Frequency,
			Amplitude:  tone.Amplitude,
			SampleRate: tone.SampleRate,
			DurationMS: tone.DurationMS,
			Bitrate:    tone.Bitrate,
		},

		CoverArtPath:    "",
		CoverArtMaxSize: 500,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,
	}
}

// SampleTrack is the descriptor materialized in manual mode when no manual
// tracks are configured.
func SampleTrack() model.Descriptor {
	return model.Descriptor{
		Name:             "You Make My Dreams (Come True)",
		AlbumName:        "Voices",
		AlbumArtistNames: []string{"Daryl Hall & John Oates"},
		ArtistNames:      []string{"Daryl Hall & John Oates"},
	}
}

// RegisterFlags adds one flag per settings key to fs.
func RegisterFlags(fs *pflag.FlagSet, defaults *Settings) {
	fs.String("mode", string(defaults.RunMode), "Run mode: auto, manual or watch")
	fs.String("log-level", defaults.LogLevel, "Log level: debug, info, warn or error")
	fs.String("encoder", defaults.EncoderPath, "Path or name of the ffmpeg executable")
	fs.String("dummy-audio", defaults.DummyAudioPath, "Path of the cached dummy MP3")
	fs.String("library", defaults.LibraryPath, "Root directory of the generated library")
	fs.String("missing-tracks", defaults.MissingTracksPath, "Directory holding missing track lists")
	fs.String("overwrite", string(defaults.Overwrite), "Existing track files: always or skip")
	fs.Bool("skip-malformed", defaults.SkipMalformed, "Skip unreadable or empty track lists instead of stopping")
	fs.Bool("modify-tags", defaults.ModifyTags, "Write title, album and artist tags")
	fs.Float64("tone-frequency", defaults.Tone.Frequency, "Dummy tone frequency in Hz")
	fs.Float64("tone-amplitude", defaults.Tone.Amplitude, "Dummy tone amplitude between 0 and 1")
	fs.Int("tone-sample-rate", defaults.Tone.SampleRate, "Dummy tone sample rate in Hz")
	fs.Int("tone-duration-ms", defaults.Tone.DurationMS, "Dummy tone length in milliseconds")
	fs.String("tone-bitrate", defaults.Tone.Bitrate, "MP3 bitrate passed to the encoder")
	fs.String("cover-art", defaults.CoverArtPath, "Image embedded as cover art in every track")
	fs.Int("cover-art-max-size", defaults.CoverArtMaxSize, "Maximum cover art width and height in pixels")
	fs.Bool("create-playlist", defaults.CreatePlaylist, "Write a playlist per track list")
	fs.String("playlist-format", defaults.PlaylistFormat, "Playlist format: m3u, pls, wpl or zpl")
	fs.Bool("m3u-extended", defaults.M3UExtended, "Write #EXTINF lines in M3U playlists")
}

// Load resolves settings from defaults, a config file, DUMMYLIB_* environment
// variables and flags, later sources taking precedence.
func Load(opts LoadOptions) (*Settings, error) {
	defaults := opts.Defaults
	if defaults == nil {
		defaults = DefaultSettings()
	}

	v := viper.New()

	setDefaults(v, defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("dummy-library")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	s.LibraryPath = expandHome(s.LibraryPath)
	s.MissingTracksPath = expandHome(s.MissingTracksPath)
	s.DummyAudioPath = expandHome(s.DummyAudioPath)
	s.CoverArtPath = expandHome(s.CoverArtPath)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func setDefaults(v *viper.Viper, s *Settings) {
	v.SetDefault("run_mode", string(s.RunMode))
	v.SetDefault("log_level", s.LogLevel)
	v.SetDefault("encoder_path", s.EncoderPath)
	v.SetDefault("dummy_audio_path", s.DummyAudioPath)
	v.SetDefault("library_path", s.LibraryPath)
	v.SetDefault("missing_tracks_path", s.MissingTracksPath)
	v.SetDefault("overwrite", string(s.Overwrite))
	v.SetDefault("skip_malformed", s.SkipMalformed)
	v.SetDefault("modify_tags", s.ModifyTags)
	v.SetDefault("tone.frequency", s.Tone.Frequency)
	v.SetDefault("tone.amplitude", s.Tone.Amplitude)
	v.SetDefault("tone.sample_rate", s.Tone.SampleRate)
	v.SetDefault("tone.duration_ms", s.Tone.DurationMS)
	v.SetDefault("tone.bitrate", s.Tone.Bitrate)
	v.SetDefault("cover_art_path", s.CoverArtPath)
	v.SetDefault("cover_art_max_size", s.CoverArtMaxSize)
	v.SetDefault("create_playlist", s.CreatePlaylist)
	v.SetDefault("playlist_format", s.PlaylistFormat)
	v.SetDefault("m3u_extended", s.M3UExtended)
}

// bindFlags binds every registered settings flag present in fs to its key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate checks enumerated values and the tone parameters.
func (s *Settings) Validate() error {
	mode, err := ParseRunMode(string(s.RunMode))
	if err != nil {
		return err
	}
	s.RunMode = mode

	policy, err := ParseOverwritePolicy(string(s.Overwrite))
	if err != nil {
		return err
	}
	s.Overwrite = policy

	if err := s.ToToneConfig().Validate(); err != nil {
		return fmt.Errorf("tone: %w", err)
	}
	return nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToToneConfig converts settings to the synthesizer's ToneConfig.
func (s *Settings) ToToneConfig() audio.ToneConfig {
	return audio.ToneConfig{
		Frequency:  s.Tone.Frequency,
		Amplitude:  s.Tone.Amplitude,
		SampleRate: s.Tone.SampleRate,
		DurationMS: s.Tone.DurationMS,
		Bitrate:    s.Tone.Bitrate,
	}
}

// ToTagConfig converts settings to the tagger's TagConfig.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	cfg := audio.DefaultTagConfig()
	cfg.ModifyTags = s.ModifyTags
	return cfg
}

// ManualDescriptors returns the descriptors for manual mode, falling back to
// SampleTrack when none are configured.
func (s *Settings) ManualDescriptors() []*model.Descriptor {
	if len(s.ManualTracks) == 0 {
		sample := SampleTrack()
		return []*model.Descriptor{&sample}
	}

	descriptors := make([]*model.Descriptor, len(s.ManualTracks))
	for i := range s.ManualTracks {
		descriptors[i] = &s.ManualTracks[i]
	}
	return descriptors
}
