package commands

import (
	"github.com/jesseduffield/lazytorrent/pkg/bencode"
	"github.com/jesseduffield/lazytorrent/pkg/search"
	"github.com/jesseduffield/lazytorrent/pkg/torrent"
)

// SearchOptions are the options of `lazytorrent search`
type SearchOptions struct {
	search.Options
	// Replace is the replacement value, nil to only find
	Replace    *string
	ReplaceHex bool
}

// SearchResult lists the matches in the order they are visited
type SearchResult struct {
	Matches  []*bencode.Item
	Replaced int
	Status   string
}

// Search finds the matching items of the torrent, visiting them from the
// top (or the bottom when searching up), and optionally replaces all of them
func (c *TorrentCommand) Search(model *torrent.Model, options SearchOptions) (SearchResult, error) {
	searcher, err := search.New(c.Log, model, options.Options)
	if err != nil {
		return SearchResult{}, WrapError(err)
	}

	result := SearchResult{Matches: []*bencode.Item{}}
	item, position, total := searcher.FindNext(nil)
	for i := 0; i < total; i++ {
		result.Matches = append(result.Matches, item)
		item, _, _ = searcher.FindNext(item)
	}

	if options.Replace == nil {
		result.Status = search.MatchStatus(c.Tr, position, total)
		return result, nil
	}

	replaced, err := searcher.ReplaceAll(*options.Replace, options.ReplaceHex)
	if err != nil {
		return result, WrapError(err)
	}
	result.Replaced = replaced
	result.Status = search.ReplaceStatus(c.Tr, replaced)
	return result, nil
}
