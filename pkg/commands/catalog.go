package commands

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/lazytorrent/pkg/i18n"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// CatalogCommand checks translation catalogs
type CatalogCommand struct {
	Log *logrus.Entry
	Tr  *i18n.Localizer
}

func NewCatalogCommand(log *logrus.Entry, tr *i18n.Localizer) *CatalogCommand {
	return &CatalogCommand{Log: log, Tr: tr}
}

// CatalogReport is what linting found in one catalog
type CatalogReport struct {
	Name     string
	Catalog  *i18n.Catalog
	Issues   []i18n.Issue
	Missing  []i18n.MessageKey
	Obsolete []i18n.MessageKey
	// Diff shows the source strings of the catalog against the English ones
	Diff string
}

// Clean is true when nothing at all was found
func (r CatalogReport) Clean() bool {
	return len(r.Issues) == 0 && len(r.Missing) == 0 && len(r.Obsolete) == 0
}

// Lint validates the catalogs at paths, or every embedded catalog when no
// path is given, and compares their sources with the English catalog
func (c *CatalogCommand) Lint(paths []string) ([]CatalogReport, error) {
	reference, err := i18n.EmbeddedCatalog(i18n.EN)
	if err != nil {
		return nil, err
	}

	type namedCatalog struct {
		name    string
		catalog *i18n.Catalog
	}
	catalogs := []namedCatalog{}

	if len(paths) == 0 {
		for _, lang := range i18n.Languages() {
			catalog, err := i18n.EmbeddedCatalog(lang)
			if err != nil {
				return nil, err
			}
			catalogs = append(catalogs, namedCatalog{name: lang, catalog: catalog})
		}
	} else {
		for _, path := range paths {
			catalog, err := i18n.LoadCatalog(path)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return nil, NewComplexError(SourceMissing, i18n.Arg(c.Tr.S.CantOpen, path))
				}
				return nil, err
			}
			catalogs = append(catalogs, namedCatalog{name: filepath.Base(path), catalog: catalog})
		}
	}

	return lo.Map(catalogs, func(named namedCatalog, _ int) CatalogReport {
		c.Log.Infof("linting %s", named.name)
		missing, obsolete := i18n.CompareSources(reference, named.catalog)
		report := CatalogReport{
			Name:     named.name,
			Catalog:  named.catalog,
			Issues:   i18n.Validate(named.catalog),
			Missing:  missing,
			Obsolete: obsolete,
		}
		if len(missing) > 0 || len(obsolete) > 0 {
			report.Diff = DiffCatalogSources(reference, i18n.EN, named.catalog, named.name)
		}
		return report
	}), nil
}

// Summary is the one line verdict for a report
func (c *CatalogCommand) Summary(report CatalogReport) string {
	lines := []string{}
	if len(report.Issues) == 0 {
		lines = append(lines, i18n.Arg(c.Tr.S.CatalogClean, report.Name))
	} else {
		lines = append(lines, i18n.Arg(c.Tr.S.CatalogIssues, report.Name, len(report.Issues)))
	}
	if len(report.Missing) > 0 || len(report.Obsolete) > 0 {
		lines = append(lines, i18n.Arg(c.Tr.S.CatalogCoverage, report.Name, len(report.Missing), len(report.Obsolete), i18n.EN))
	}
	return strings.Join(lines, "\n")
}

// DiffCatalogSources is a unified diff of the sorted "context|source" keys of
// two catalogs
func DiffCatalogSources(a *i18n.Catalog, aName string, b *i18n.Catalog, bName string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        sourceLines(a),
		B:        sourceLines(b),
		FromFile: aName,
		ToFile:   bName,
		Context:  1,
	})
	if err != nil {
		return ""
	}
	return diff
}

func sourceLines(catalog *i18n.Catalog) []string {
	lines := []string{}
	catalog.Messages(func(context *i18n.Context, message *i18n.Message) {
		if !message.IsObsolete() {
			key := i18n.MessageKey{Context: context.Name, Source: message.Source}
			lines = append(lines, strings.ReplaceAll(key.String(), "\n", `\n`)+"\n")
		}
	})
	sort.Strings(lines)
	return lo.Uniq(lines)
}
