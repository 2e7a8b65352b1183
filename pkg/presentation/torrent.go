package presentation

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jesseduffield/lazytorrent/pkg/bencode"
	"github.com/jesseduffield/lazytorrent/pkg/i18n"
	"github.com/jesseduffield/lazytorrent/pkg/torrent"
	"github.com/jesseduffield/lazytorrent/pkg/utils"
	"github.com/samber/lo"
)

const dateLayout = "2006-01-02 15:04:05"

// FormatSize renders a byte count with the reader's unit names
func FormatSize(size int64, tr *i18n.TranslationSet) string {
	return utils.FormatBinaryBytes(size, []string{tr.Bytes, tr.KiB, tr.MiB, tr.GiB, tr.TiB})
}

// TypeName is the localized name of a bencode type
func TypeName(t bencode.Type, tr *i18n.TranslationSet) string {
	switch t {
	case bencode.Integer:
		return tr.TypeInteger
	case bencode.String:
		return tr.TypeString
	case bencode.List:
		return tr.TypeList
	case bencode.Dictionary:
		return tr.TypeDictionary
	}
	return tr.TypeInvalid
}

func yesNo(b bool, tr *i18n.TranslationSet) string {
	if b {
		return tr.Yes
	}
	return tr.No
}

func blankToNil(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// RenderMainInfo is the summary shown by `lazytorrent show`
func RenderMainInfo(model *torrent.Model, tr *i18n.TranslationSet) (string, error) {
	keyColor := color.New(color.FgMagenta)
	valueColor := color.New(color.FgGreen)

	pieceSize := ""
	if size := model.PieceSize(); size > 0 {
		pieceSize = FormatSize(size, tr)
	}

	pairs := [][]string{
		{tr.Name, model.Name()},
		{tr.Hash, model.Hash()},
		{tr.MagnetLink, model.MagnetLink()},
		{tr.PieceSize, pieceSize},
		{tr.NumPieces, fmt.Sprint(model.Pieces())},
		{tr.PrivateTorrent, yesNo(model.Private(), tr)},
		{tr.CreatedBy, model.CreatedBy()},
		{tr.DateCreated, FormatDate(model.CreationTime())},
		{tr.Publisher, model.Publisher()},
		{tr.URL, model.URL()},
		{tr.Comment, model.Comment()},
		{tr.TotalSize, FormatSize(model.TotalSize(), tr)},
	}

	rows := lo.Map(pairs, func(pair []string, _ int) []string {
		return []string{
			utils.ColoredStringDirect(pair[0]+":", keyColor),
			utils.ColoredStringDirect(blankToNil(pair[1]), valueColor),
		}
	})
	info, err := utils.RenderTable(rows)
	if err != nil {
		return "", err
	}

	sections := []string{info}

	if trackers := model.Trackers(); len(trackers) > 0 {
		sections = append(sections, utils.ColoredString(tr.Trackers, color.Bold)+"\n"+strings.Join(trackers, "\n"))
	}

	files, err := RenderFiles(model.Files(), tr)
	if err != nil {
		return "", err
	}
	if files != "" {
		sections = append(sections, files)
	}

	return strings.Join(sections, "\n\n"), nil
}

type displayFile struct {
	file torrent.File
	tr   *i18n.TranslationSet
}

func (f displayFile) GetDisplayStrings() []string {
	return []string{f.file.Path, FormatSize(f.file.Size, f.tr)}
}

// RenderFiles is the files table with a header
func RenderFiles(files []torrent.File, tr *i18n.TranslationSet) (string, error) {
	return utils.RenderList(
		lo.Map(files, func(file torrent.File, _ int) displayFile { return displayFile{file: file, tr: tr} }),
		utils.WithHeader([]string{tr.Path, tr.Size}),
	)
}

// GetRowDisplayStrings are the Name / Type / Hex / Value columns of a tree row
func GetRowDisplayStrings(row torrent.Row, tr *i18n.TranslationSet) []string {
	hex := ""
	if row.Hex {
		hex = tr.Yes
	}
	return []string{
		strings.Repeat("  ", row.Depth) + row.Name,
		utils.ColoredString(TypeName(row.Type, tr), color.FgCyan),
		hex,
		strings.Join(utils.SplitLines(row.Value), " "),
	}
}

// RenderTree is the table shown by `lazytorrent tree`
func RenderTree(model *torrent.Model, tr *i18n.TranslationSet) (string, error) {
	header := lo.Map([]string{tr.ColumnName, tr.ColumnType, tr.ColumnHex, tr.ColumnValue}, func(title string, _ int) string {
		return utils.ColoredString(title, color.Bold)
	})
	rows := lo.Map(model.Rows(), func(row torrent.Row, _ int) []string {
		return GetRowDisplayStrings(row, tr)
	})
	return utils.RenderTable(append([][]string{header}, rows...))
}

// RenderMatches lists search matches by path and value
func RenderMatches(model *torrent.Model, items []*bencode.Item) (string, error) {
	rows := lo.Map(items, func(item *bencode.Item, _ int) []string {
		return []string{
			utils.ColoredString(model.Path(item), color.FgYellow),
			model.DisplayValue(item),
		}
	})
	return utils.RenderTable(rows)
}

// FormatProgress is the hashing progress line
func FormatProgress(progress torrent.Progress, tr *i18n.TranslationSet) string {
	return i18n.Arg(tr.Hashing, progress.Done, progress.Total)
}

// FormatDate renders a creation date the way RenderMainInfo does
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}
