package i18n

func englishSet() TranslationSet {
	return TranslationSet{
		Main:                       "Main",
		Name:                       "Name",
		Hash:                       "Hash",
		MagnetLink:                 "Magnet link",
		PieceSize:                  "Piece size",
		Pieces:                     "Pieces",
		NumPieces:                  "# Pieces",
		PrivateTorrent:             "Private torrent",
		CreatedBy:                  "Created by",
		DateCreated:                "Date created",
		Publisher:                  "Publisher",
		URL:                        "URL",
		Comment:                    "Comment",
		Trackers:                   "Trackers",
		Files:                      "Files",
		Path:                       "Path",
		Size:                       "Size",
		TotalSize:                  "Total size",
		TorrentRootFolder:          "Torrent root folder",
		Tree:                       "Tree",
		Raw:                        "Raw",
		Auto:                       "Auto",
		Untitled:                   "Untitled",
		Error:                      "Error",
		Warning:                    "Warning",
		CantOpenFile:               "Can't open file",
		CantSaveFile:               "Can't save file",
		BencodedDataNotValid:       "BEncoded data is not valid",
		RootIsFilesystemRoot:       "The filesystem root can't be used as a torrent root folder.",
		RootNotSet:                 "The torrent root folder is not set.",
		RootNotCommon:              "The torrent root folder is not common.",
		NeedToCalculatePieceHashes: "Need to calculate piece hashes",
		CalculatePiecesHashes:      "Calculate pieces hashes",
		PleaseWait:                 "Please wait",
		ErrorOnLine:                "Error on %1 line: %2",
		FilterFiles:                "Filter files",
		SaveFileQuestion:           "Save file \"%1\"?",
		Bytes:                      "B",
		KiB:                        "KiB",
		MiB:                        "MiB",
		GiB:                        "GiB",
		TiB:                        "TiB",

		ColumnName:  "Name",
		ColumnType:  "Type",
		ColumnHex:   "Hex",
		ColumnValue: "Value",

		TypeList:       "list",
		TypeDictionary: "dictionary",
		TypeInteger:    "integer",
		TypeString:     "string",
		TypeInvalid:    "invalid",

		NoMatchesFound: "No matches found",
		ReplaceAll:     "Replace All",

		CantOpen:     "Can't open %1",
		CantReadFrom: "Can't read from %1",

		OpenInBrowser: "Open in internet browser",
		About:         "About %1",

		ErrorOccurred:       "An error occurred! Please create an issue at https://github.com/jesseduffield/lazytorrent/issues",
		Yes:                 "yes",
		No:                  "no",
		Saved:               "Saved %1",
		Hashing:             "Hashing: %1 of %2 pieces",
		HashingCancelled:    "Hashing cancelled",
		NoPublisherURL:      "The torrent has no publisher URL",
		NoDifferences:       "No differences",
		CatalogClean:        "%1: no issues",
		CatalogIssues:       "%1: %2 issue(s)",
		CatalogCoverage:     "%1: %2 message(s) missing and %3 obsolete compared with %4",
		LanguageNotFound:    "Language not found: %1",
		MissingArgument:     "Missing argument: %1",
		InvalidAssignment:   "Expected path=value but got %1",
		PathNotFound:        "No tree item at %1",
		RootCannotBeChanged: "The root item can't be moved, renamed or removed",
		CannotStopTask:      "Could not stop the running task, aborting",
		FileAlreadyExists:   "%1 already exists, pass --force to overwrite it",
		LanguageSaved:       "Language set to %1 in %2",
	}
}
