package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	type scenario struct {
		name          string
		update        func(*UserConfig)
		errorContains string
	}

	scenarios := []scenario{
		{
			name:   "defaults",
			update: func(*UserConfig) {},
		},
		{
			name:   "locale style language",
			update: func(c *UserConfig) { c.Language = "pt_BR" },
		},
		{
			name:          "unknown language",
			update:        func(c *UserConfig) { c.Language = "klingon" },
			errorContains: "Unrecognized language 'klingon'",
		},
		{
			name:   "codepage",
			update: func(c *UserConfig) { c.TextCodec = "windows-1251" },
		},
		{
			name:          "unknown codec",
			update:        func(c *UserConfig) { c.TextCodec = "utf-42" },
			errorContains: "Unrecognized text codec 'utf-42'",
		},
		{
			name:   "power of two piece size",
			update: func(c *UserConfig) { c.Torrent.PieceSize = 4 * 1024 * 1024 },
		},
		{
			name:          "piece size too small",
			update:        func(c *UserConfig) { c.Torrent.PieceSize = 8192 },
			errorContains: "torrent.pieceSize",
		},
		{
			name:          "piece size not a power of two",
			update:        func(c *UserConfig) { c.Torrent.PieceSize = 100000 },
			errorContains: "torrent.pieceSize",
		},
		{
			name:          "negative workers",
			update:        func(c *UserConfig) { c.Hashing.Workers = -1 },
			errorContains: "hashing.workers",
		},
		{
			name:          "negative progress interval",
			update:        func(c *UserConfig) { c.Hashing.ProgressInterval = -time.Second },
			errorContains: "hashing.progressInterval",
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			config := GetDefaultConfig()
			s.update(&config)
			err := config.Validate()
			if s.errorContains == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, s.errorContains)
			}
		})
	}
}

func TestGetDefaultConfig(t *testing.T) {
	config := GetDefaultConfig()
	assert.Equal(t, "auto", config.Language)
	assert.Equal(t, "UTF-8", config.TextCodec)
	assert.Zero(t, config.Torrent.PieceSize)
	assert.False(t, config.Torrent.Private)
	assert.Contains(t, config.OS.OpenLinkCommand, "{{link}}")
}
