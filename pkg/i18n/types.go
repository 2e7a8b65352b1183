package i18n

// TranslationSet is a set of localised strings for a given language. Fields
// tagged with `tr:"Context|Source"` are looked up in the language's catalog;
// the rest are only available in English.
type TranslationSet struct {
	Main                       string `tr:"MainWindow|Main"`
	Name                       string `tr:"MainWindow|Name"`
	Hash                       string `tr:"MainWindow|Hash"`
	MagnetLink                 string `tr:"MainWindow|Magnet link"`
	PieceSize                  string `tr:"MainWindow|Piece size"`
	Pieces                     string `tr:"MainWindow|Pieces"`
	NumPieces                  string `tr:"MainWindow|# Pieces"`
	PrivateTorrent             string `tr:"MainWindow|Private torrent"`
	CreatedBy                  string `tr:"MainWindow|Created by"`
	DateCreated                string `tr:"MainWindow|Date created"`
	Publisher                  string `tr:"MainWindow|Publisher"`
	URL                        string `tr:"MainWindow|URL"`
	Comment                    string `tr:"MainWindow|Comment"`
	Trackers                   string `tr:"MainWindow|Trackers"`
	Files                      string `tr:"MainWindow|Files"`
	Path                       string `tr:"MainWindow|Path"`
	Size                       string `tr:"MainWindow|Size"`
	TotalSize                  string `tr:"MainWindow|Total size "`
	TorrentRootFolder          string `tr:"MainWindow|Torrent root folder "`
	Tree                       string `tr:"MainWindow|Tree"`
	Raw                        string `tr:"MainWindow|Raw"`
	Auto                       string `tr:"MainWindow|Auto"`
	Untitled                   string `tr:"MainWindow|Untitled"`
	Error                      string `tr:"MainWindow|Error"`
	Warning                    string `tr:"MainWindow|Warning"`
	CantOpenFile               string `tr:"MainWindow|Can't open file"`
	CantSaveFile               string `tr:"MainWindow|Can't save file"`
	BencodedDataNotValid       string `tr:"MainWindow|BEncoded data is not valid"`
	RootIsFilesystemRoot       string `tr:"MainWindow|The filesystem root can't be used as a torrent root folder."`
	RootNotSet                 string `tr:"MainWindow|The torrent root folder is not set."`
	RootNotCommon              string `tr:"MainWindow|The torrent root folder is not common."`
	NeedToCalculatePieceHashes string `tr:"MainWindow|Need to calculate piece hashes"`
	CalculatePiecesHashes      string `tr:"MainWindow|Calculate pieces hashes"`
	PleaseWait                 string `tr:"MainWindow|Please wait"`
	ErrorOnLine                string `tr:"MainWindow|Error on %1 line: %2"`
	FilterFiles                string `tr:"MainWindow|Filter files"`
	SaveFileQuestion           string `tr:"MainWindow|Save file \"%1\"?"`
	Bytes                      string `tr:"MainWindow|B"`
	KiB                        string `tr:"MainWindow|KiB"`
	MiB                        string `tr:"MainWindow|MiB"`
	GiB                        string `tr:"MainWindow|GiB"`
	TiB                        string `tr:"MainWindow|TiB"`

	ColumnName  string `tr:"BencodeModel|Name"`
	ColumnType  string `tr:"BencodeModel|Type"`
	ColumnHex   string `tr:"BencodeModel|Hex"`
	ColumnValue string `tr:"BencodeModel|Value"`

	TypeList       string `tr:"QObject|list"`
	TypeDictionary string `tr:"QObject|dictionary"`
	TypeInteger    string `tr:"QObject|integer"`
	TypeString     string `tr:"QObject|string"`
	TypeInvalid    string `tr:"QObject|invalid"`

	NoMatchesFound string `tr:"SearchDlg|No matches found"`
	ReplaceAll     string `tr:"SearchDlg|Replace All"`

	CantOpen     string `tr:"Worker|Can't open %1"`
	CantReadFrom string `tr:"Worker|Can't read from %1"`

	OpenInBrowser string `tr:"UrlEdit|Open in internet browser"`
	About         string `tr:"AboutDlg|About %1"`

	ErrorOccurred       string
	Yes                 string
	No                  string
	Saved               string
	Hashing             string
	HashingCancelled    string
	NoPublisherURL      string
	NoDifferences       string
	CatalogClean        string
	CatalogIssues       string
	CatalogCoverage     string
	LanguageNotFound    string
	MissingArgument     string
	InvalidAssignment   string
	PathNotFound        string
	RootCannotBeChanged string
	CannotStopTask      string
	FileAlreadyExists   string
	LanguageSaved       string
}
