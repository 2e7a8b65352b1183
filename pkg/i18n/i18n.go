package i18n

import (
	"embed"
	"io/fs"
	"path"
	"reflect"
	"sort"
	"strings"

	"github.com/cloudfoundry/jibber_jabber"
	"github.com/go-errors/errors"
	"github.com/imdario/mergo"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

//go:embed translations/*.ts
var embeddedCatalogs embed.FS

const (
	catalogDir    = "translations"
	catalogPrefix = "torrentfileeditor_"
	catalogSuffix = ".ts"
)

// EN is the language every catalog is translated from
const EN = "en"

// Localizer will translate a message into the user's language
type Localizer struct {
	Log      *logrus.Entry
	S        TranslationSet
	Language string
	catalog  *Catalog
}

// Languages lists the codes of the embedded catalogs, e.g. "de" or "pt_BR"
func Languages() []string {
	entries, err := embeddedCatalogs.ReadDir(catalogDir)
	if err != nil {
		return []string{EN}
	}

	languages := lo.Map(entries, func(entry fs.DirEntry, _ int) string {
		return strings.TrimSuffix(strings.TrimPrefix(entry.Name(), catalogPrefix), catalogSuffix)
	})
	sort.Strings(languages)
	return languages
}

// EmbeddedCatalog parses the catalog shipped for lang
func EmbeddedCatalog(lang string) (*Catalog, error) {
	f, err := embeddedCatalogs.Open(path.Join(catalogDir, catalogPrefix+lang+catalogSuffix))
	if err != nil {
		return nil, errors.Errorf("no catalog for language %q", lang)
	}
	defer f.Close()

	return ParseCatalog(f)
}

// MatchLanguage maps a locale such as "de_DE.UTF-8", "pt-BR" or "zh_TW" to
// the closest embedded catalog
func MatchLanguage(lang string) (string, bool) {
	lang = strings.Replace(strings.SplitN(lang, ".", 2)[0], "_", "-", -1)
	requested, err := language.Parse(lang)
	if err != nil {
		return "", false
	}

	// English first so it is the matcher's fallback
	supported := append([]string{EN}, lo.Reject(Languages(), func(l string, _ int) bool { return l == EN })...)
	tags := lo.Map(supported, func(l string, _ int) language.Tag {
		return language.Make(strings.Replace(l, "_", "-", -1))
	})

	_, index, confidence := language.NewMatcher(tags).Match(requested)
	if confidence == language.No {
		return "", false
	}
	return supported[index], true
}

func NewLocalizerFromConfig(log *logrus.Entry, configLanguage string) (*Localizer, error) {
	if configLanguage == "auto" || configLanguage == "" {
		return NewLocalizer(log, detectLanguage(jibber_jabber.DetectIETF)), nil
	}

	if lang, ok := MatchLanguage(configLanguage); ok {
		return NewLocalizer(log, lang), nil
	}

	localizer := NewLocalizer(log, EN)
	return localizer, errors.New(Arg(localizer.S.LanguageNotFound, configLanguage))
}

// NewLocalizer returns a localizer for lang, falling back to English for
// languages without a catalog
func NewLocalizer(log *logrus.Entry, lang string) *Localizer {
	matched, ok := MatchLanguage(lang)
	if !ok {
		matched = EN
	}
	log.Info("language: " + matched)

	catalog, err := EmbeddedCatalog(matched)
	if err != nil {
		log.Error(err)
		catalog = &Catalog{Language: EN}
	}

	return &Localizer{
		Log:      log,
		S:        *newTranslationSet(log, catalog),
		Language: matched,
		catalog:  catalog,
	}
}

// NewTranslationSet returns the English strings overridden by the finished
// translations of lang
func NewTranslationSet(log *logrus.Entry, lang string) *TranslationSet {
	return &NewLocalizer(log, lang).S
}

func newTranslationSet(log *logrus.Entry, catalog *Catalog) *TranslationSet {
	baseSet := englishSet()
	otherSet := catalogSet(catalog)

	if err := mergo.Merge(&baseSet, otherSet, mergo.WithOverride); err != nil {
		log.Error(err)
	}

	return &baseSet
}

// catalogSet fills the tagged fields of a TranslationSet from catalog,
// leaving untranslated ones empty
func catalogSet(catalog *Catalog) TranslationSet {
	set := TranslationSet{}
	value := reflect.ValueOf(&set).Elem()
	for i := 0; i < value.NumField(); i++ {
		tag, ok := value.Type().Field(i).Tag.Lookup("tr")
		if !ok {
			continue
		}
		context, source, _ := strings.Cut(tag, "|")
		if translated := catalog.Translate(context, source); translated != source {
			value.Field(i).SetString(strings.TrimSpace(translated))
		}
	}
	return set
}

// Catalog is the catalog backing the localizer
func (l *Localizer) Catalog() *Catalog {
	return l.catalog
}

// Tr translates an arbitrary catalog message
func (l *Localizer) Tr(context string, source string) string {
	return l.catalog.Translate(context, source)
}

// Matches is the search status line "%1 of %n match(es)"
func (l *Localizer) Matches(i int, n int) string {
	return Arg(l.catalog.TranslatePlural("SearchDlg", "%1 of %n match(es)", n), i)
}

// ValuesReplaced is the status line shown after replacing n values
func (l *Localizer) ValuesReplaced(n int) string {
	return l.catalog.TranslatePlural("SearchDlg", "%n value(s) was(were) replaced", n)
}

// detectLanguage extracts user language from environment
func detectLanguage(langDetector func() (string, error)) string {
	if userLang, err := langDetector(); err == nil {
		return userLang
	}

	return "C"
}
