package config

import (
	"github.com/go-errors/errors"
	"github.com/jesseduffield/lazytorrent/pkg/i18n"
	"github.com/jesseduffield/lazytorrent/pkg/torrent"
	"golang.org/x/text/encoding/htmlindex"
)

const docsURL = "https://github.com/jesseduffield/lazytorrent/blob/master/docs/Config.md"

// Validate validates the user config
func (config *UserConfig) Validate() error {
	if config.Language != "" && config.Language != "auto" {
		if _, ok := i18n.MatchLanguage(config.Language); !ok {
			return errors.Errorf("Unrecognized language '%s'. Available languages are %v", config.Language, i18n.Languages())
		}
	}

	if config.TextCodec != "" {
		if _, err := htmlindex.Get(config.TextCodec); err != nil {
			return errors.Errorf("Unrecognized text codec '%s'. For permitted values see %s", config.TextCodec, docsURL)
		}
	}

	if config.Torrent.PieceSize != 0 && !torrent.IsValidPieceSize(config.Torrent.PieceSize) {
		return errors.Errorf("Invalid piece size %d for 'torrent.pieceSize': it must be 0 or a power of two of at least %d", config.Torrent.PieceSize, torrent.MinPieceSize)
	}

	if config.Hashing.Workers < 0 {
		return errors.Errorf("Invalid worker count %d for 'hashing.workers': it can't be negative", config.Hashing.Workers)
	}

	if config.Hashing.ProgressInterval < 0 {
		return errors.Errorf("Invalid duration %s for 'hashing.progressInterval': it can't be negative", config.Hashing.ProgressInterval)
	}

	return nil
}
