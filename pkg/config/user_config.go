package config

import (
	"time"

	"github.com/jesseduffield/lazytorrent/pkg/torrent"
)

// UserConfig holds all of the user-configurable options. The fields here are all in PascalCase but in your actual config.yml they'll be in camelCase. You can view the default config with `lazytorrent --config`. Be careful: if for example you set a `torrent:` yaml key but then give it no child values, it will scrap all of the defaults
type UserConfig struct {
	// Language is the language of messages, e.g. "de" or "pt_BR". "auto" picks the language of your system and falls back to English
	Language string `yaml:"language,omitempty"`

	// TextCodec is the encoding used to show and write the human readable strings of a torrent, e.g. "UTF-8", "windows-1251" or "Shift_JIS". Old torrents made on Windows often need a codepage here
	TextCodec string `yaml:"textCodec,omitempty"`

	// Torrent holds the defaults used when creating a torrent
	Torrent TorrentConfig `yaml:"torrent,omitempty"`

	// Hashing determines how piece hashes get calculated
	Hashing HashingConfig `yaml:"hashing,omitempty"`

	// JSON determines how torrents are written as JSON
	JSON JSONConfig `yaml:"json,omitempty"`

	// OS determines what defaults are set for opening links
	OS OSConfig `yaml:"oS,omitempty"`
}

// TorrentConfig holds the defaults of `lazytorrent create`
type TorrentConfig struct {
	// CreatedBy goes into the "created by" field
	CreatedBy string `yaml:"createdBy,omitempty"`

	// PieceSize in bytes, a power of two of at least 16 KiB. 0 picks a size giving about 1500 pieces
	PieceSize int64 `yaml:"pieceSize,omitempty"`

	// Trackers are announce URLs, each one put in its own tier
	Trackers []string `yaml:"trackers,omitempty"`

	// Private sets info/private, telling clients to only use the trackers for finding peers
	Private bool `yaml:"private,omitempty"`

	// SkipCreationDate leaves out the "creation date" field so that the same files always give the same torrent
	SkipCreationDate bool `yaml:"skipCreationDate,omitempty"`
}

// HashingConfig determines how piece hashes get calculated
type HashingConfig struct {
	// Workers is the number of files hashed in parallel. 0 means one per CPU
	Workers int `yaml:"workers,omitempty"`

	// ProgressInterval is how often progress gets reported while hashing, e.g. "500ms"
	ProgressInterval time.Duration `yaml:"progressInterval,omitempty"`
}

// JSONConfig determines how torrents are written as JSON
type JSONConfig struct {
	// Indent is repeated once per nesting level. Empty writes compact JSON
	Indent string `yaml:"indent,omitempty"`
}

// OSConfig contains config on the level of the os
type OSConfig struct {
	// OpenLinkCommand is the command for opening a link. {{link}} is replaced with the quoted link
	OpenLinkCommand string `yaml:"openLinkCommand,omitempty"`
}

// GetDefaultConfig returns the application default configuration
// NOTE (to contributors, not users): do not default a boolean to true, because false is the boolean zero value and this will be ignored when parsing the user's config
func GetDefaultConfig() UserConfig {
	return UserConfig{
		Language:  "auto",
		TextCodec: torrent.DefaultTextCodec,
		Torrent: TorrentConfig{
			CreatedBy: "lazytorrent",
			PieceSize: 0,
			Trackers:  []string{},
		},
		Hashing: HashingConfig{
			Workers:          0,
			ProgressInterval: 100 * time.Millisecond,
		},
		JSON: JSONConfig{
			Indent: "    ",
		},
		OS: GetPlatformDefaultConfig(),
	}
}
