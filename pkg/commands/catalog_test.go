package commands

import (
	"path/filepath"
	"testing"

	"github.com/jesseduffield/lazytorrent/pkg/i18n"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDummyCatalogCommand() *CatalogCommand {
	return NewCatalogCommand(NewDummyLog(), NewDummyLocalizer())
}

func TestLintEmbeddedCatalogs(t *testing.T) {
	c := newDummyCatalogCommand()

	reports, err := c.Lint(nil)
	require.NoError(t, err)

	assert.Equal(t, i18n.Languages(), lo.Map(reports, func(r CatalogReport, _ int) string { return r.Name }))

	hebrew, ok := lo.Find(reports, func(r CatalogReport) bool { return r.Name == "he" })
	require.True(t, ok)
	assert.False(t, hebrew.Clean())
	assert.Contains(t, c.Summary(hebrew), "he: ")
	assert.Contains(t, c.Summary(hebrew), "issue(s)")
}

func TestLintFile(t *testing.T) {
	c := newDummyCatalogCommand()
	path := filepath.Join(t.TempDir(), "torrentfileeditor_xx.ts")
	writeTestFile(t, path, `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.0" language="de" sourcelanguage="en">
<context>
    <name>MainWindow</name>
    <message>
        <source>Hash</source>
        <translation>Prüfsumme</translation>
    </message>
    <message>
        <source>Not in English</source>
        <translation>Nicht auf Englisch</translation>
    </message>
</context>
</TS>
`)

	reports, err := c.Lint([]string{path})
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, "torrentfileeditor_xx.ts", report.Name)
	assert.Empty(t, report.Issues)
	assert.NotEmpty(t, report.Missing)
	assert.Equal(t, []i18n.MessageKey{{Context: "MainWindow", Source: "Not in English"}}, report.Obsolete)
	assert.Contains(t, report.Diff, "--- en\n+++ torrentfileeditor_xx.ts\n")
	assert.Contains(t, report.Diff, "+MainWindow|Not in English\n")
	assert.Contains(t, report.Diff, "-MainWindow|Magnet link\n")

	summary := c.Summary(report)
	assert.Contains(t, summary, "torrentfileeditor_xx.ts: no issues")
	assert.Contains(t, summary, "missing and 1 obsolete compared with en")
}

func TestLintMissingFile(t *testing.T) {
	c := newDummyCatalogCommand()

	_, err := c.Lint([]string{filepath.Join(t.TempDir(), "missing.ts")})
	assert.True(t, HasErrorCode(err, SourceMissing))
}

func TestDiffCatalogSources(t *testing.T) {
	catalog, err := i18n.EmbeddedCatalog(i18n.EN)
	require.NoError(t, err)

	assert.Empty(t, DiffCatalogSources(catalog, "a", catalog, "b"))
}
