package i18n

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sampleCatalog = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.0" language="de" sourcelanguage="en">
  <context>
    <name>MainWindow</name>
    <message>
      <location filename="../mainwindow.ui" line="80"/>
      <source>Hash</source>
      <translation>Prüfsumme</translation>
    </message>
    <message>
      <location filename="../mainwindow.ui" line="90"/>
      <source>Magnet link</source>
      <translation type="unfinished">Magnet-Link</translation>
    </message>
    <message>
      <source>Gone</source>
      <translation type="vanished">Weg</translation>
    </message>
    <message>
      <source> Total size </source>
      <translatorcomment>Keep the spaces</translatorcomment>
      <translation> Gesamtgröße </translation>
    </message>
  </context>
  <context>
    <name>SearchDlg</name>
    <message numerus="yes">
      <location filename="../searchdlg.cpp" line="214"/>
      <source>%n value(s) was(were) replaced</source>
      <translation>
        <numerusform>%n Wert wurde ersetzt</numerusform>
        <numerusform>%n Werte wurden ersetzt</numerusform>
      </translation>
    </message>
  </context>
</TS>
`

func TestParseCatalog(t *testing.T) {
	catalog, err := ParseCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, "2.0", catalog.Version)
	assert.Equal(t, "de", catalog.Language)
	assert.Equal(t, "en", catalog.SourceLanguage)
	assert.Len(t, catalog.Contexts, 2)

	hash := catalog.Lookup("MainWindow", "Hash")
	require.NotNil(t, hash)
	assert.Equal(t, []Location{{Filename: "../mainwindow.ui", Line: 80}}, hash.Locations)
	assert.True(t, hash.IsFinished())
	assert.False(t, hash.IsNumerus())

	spaces := catalog.Lookup("MainWindow", " Total size ")
	require.NotNil(t, spaces)
	assert.Equal(t, " Gesamtgröße ", spaces.Translation.Text)
	assert.Equal(t, "Keep the spaces", spaces.TranslatorComment)

	replaced := catalog.Lookup("SearchDlg", "%n value(s) was(were) replaced")
	require.NotNil(t, replaced)
	assert.True(t, replaced.IsNumerus())
	assert.Equal(t, "", replaced.Translation.Text)
	assert.Equal(t, []string{"%n Wert wurde ersetzt", "%n Werte wurden ersetzt"}, replaced.Translation.NumerusForms)

	assert.Nil(t, catalog.Lookup("MainWindow", "Nope"))
	assert.Nil(t, catalog.Lookup("Nope", "Hash"))
}

func TestCatalogTranslate(t *testing.T) {
	catalog, err := ParseCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, "Prüfsumme", catalog.Translate("MainWindow", "Hash"))
	// unfinished translations aren't used
	assert.Equal(t, "Magnet link", catalog.Translate("MainWindow", "Magnet link"))
	assert.Equal(t, "Unknown", catalog.Translate("MainWindow", "Unknown"))

	assert.Equal(t, "1 Wert wurde ersetzt", catalog.TranslatePlural("SearchDlg", "%n value(s) was(were) replaced", 1))
	assert.Equal(t, "4 Werte wurden ersetzt", catalog.TranslatePlural("SearchDlg", "%n value(s) was(were) replaced", 4))
	assert.Equal(t, "0 Werte wurden ersetzt", catalog.TranslatePlural("SearchDlg", "%n value(s) was(were) replaced", 0))
	assert.Equal(t, "2 unknown(s)", catalog.TranslatePlural("SearchDlg", "%n unknown(s)", 2))
}

func TestCatalogStats(t *testing.T) {
	catalog, err := ParseCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, CatalogStats{Total: 4, Finished: 3, Unfinished: 1, Obsolete: 1}, catalog.Stats())
}

func TestCatalogWriteRoundTrip(t *testing.T) {
	catalog, err := ParseCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, catalog.Write(&buf))

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<!DOCTYPE TS>\n<TS "))
	assert.Contains(t, output, `<message numerus="yes">`)
	assert.Contains(t, output, `<translation type="unfinished">Magnet-Link</translation>`)
	assert.NotContains(t, output, `numerus=""`)

	again, err := ParseCatalog(&buf)
	require.NoError(t, err)
	assert.Equal(t, catalog, again)
}

func TestParseCatalogByteOrderMark(t *testing.T) {
	catalog, err := ParseCatalog(strings.NewReader("\xef\xbb\xbf" + sampleCatalog))
	require.NoError(t, err)
	assert.Equal(t, "de", catalog.Language)
}

func TestParseCatalogLegacyEncoding(t *testing.T) {
	document := `<?xml version="1.0" encoding="windows-1251"?>
<TS version="2.0" language="ru">
  <context>
    <name>SearchDlg</name>
    <message>
      <source>No matches found</source>
      <translation>Совпадения не найдены</translation>
    </message>
  </context>
</TS>`
	encoded, err := charmap.Windows1251.NewEncoder().String(document)
	require.NoError(t, err)

	catalog, err := ParseCatalog(strings.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, "Совпадения не найдены", catalog.Translate("SearchDlg", "No matches found"))
}

func TestParseCatalogErrors(t *testing.T) {
	_, err := ParseCatalog(strings.NewReader("<TS><context>"))
	assert.Error(t, err)

	_, err = ParseCatalog(strings.NewReader(`<?xml version="1.0" encoding="no-such-charset"?><TS/>`))
	assert.Error(t, err)

	_, err = LoadCatalog("/does/not/exist.ts")
	assert.Error(t, err)
}

func TestEmbeddedCatalogs(t *testing.T) {
	expected := []string{"bn", "de", "en", "fr", "he", "hu", "id", "it", "ko", "pt_BR", "ro", "ru", "tr", "zh_TW"}
	assert.Equal(t, expected, Languages())

	for _, language := range expected {
		t.Run(language, func(t *testing.T) {
			catalog, err := EmbeddedCatalog(language)
			require.NoError(t, err)
			assert.NotEmpty(t, catalog.Version)
			assert.NotEmpty(t, catalog.Contexts)
			assert.NotNil(t, catalog.Lookup("MainWindow", "Hash"))
		})
	}

	_, err := EmbeddedCatalog("xx")
	assert.Error(t, err)
}
