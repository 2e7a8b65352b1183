package i18n

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-errors/errors"
	"github.com/spkg/bom"
	"golang.org/x/text/encoding/htmlindex"
)

// translation types used by Qt Linguist
const (
	TranslationUnfinished = "unfinished"
	TranslationObsolete   = "obsolete"
	TranslationVanished   = "vanished"
)

// Catalog is a Qt Linguist translation source (.ts) file
type Catalog struct {
	XMLName        xml.Name   `xml:"TS"`
	Version        string     `xml:"version,attr"`
	Language       string     `xml:"language,attr,omitempty"`
	SourceLanguage string     `xml:"sourcelanguage,attr,omitempty"`
	Contexts       []*Context `xml:"context"`
}

// Context groups the messages of one class or form
type Context struct {
	Name     string     `xml:"name"`
	Messages []*Message `xml:"message"`
}

type Message struct {
	Numerus           yesNo       `xml:"numerus,attr,omitempty"`
	Locations         []Location  `xml:"location"`
	Source            string      `xml:"source"`
	Comment           string      `xml:"comment,omitempty"`
	ExtraComment      string      `xml:"extracomment,omitempty"`
	TranslatorComment string      `xml:"translatorcomment,omitempty"`
	Translation       Translation `xml:"translation"`
}

type Location struct {
	Filename string `xml:"filename,attr"`
	Line     int    `xml:"line,attr,omitempty"`
}

// Translation holds either Text or, for numerus messages, NumerusForms
type Translation struct {
	Type         string   `xml:"type,attr,omitempty"`
	Text         string   `xml:",chardata"`
	NumerusForms []string `xml:"numerusform"`
}

type yesNo bool

func (y yesNo) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	if !y {
		return xml.Attr{}, nil
	}
	return xml.Attr{Name: name, Value: "yes"}, nil
}

func (y *yesNo) UnmarshalXMLAttr(attr xml.Attr) error {
	*y = yesNo(attr.Value == "yes")
	return nil
}

// IsNumerus tells whether the message has plural forms
func (m *Message) IsNumerus() bool {
	return bool(m.Numerus)
}

// SetNumerus marks the message as having plural forms
func (m *Message) SetNumerus(numerus bool) {
	m.Numerus = yesNo(numerus)
}

// IsFinished is true for translations a translator has signed off
func (m *Message) IsFinished() bool {
	return m.Translation.Type == ""
}

// IsObsolete is true for messages no longer present in the sources
func (m *Message) IsObsolete() bool {
	return m.Translation.Type == TranslationObsolete || m.Translation.Type == TranslationVanished
}

// IsEmpty is true when nothing has been translated at all
func (m *Message) IsEmpty() bool {
	if m.IsNumerus() {
		for _, form := range m.Translation.NumerusForms {
			if form != "" {
				return false
			}
		}
		return true
	}
	return m.Translation.Text == ""
}

// ParseCatalog reads a .ts document. A leading byte order mark is ignored and
// documents declared in a legacy encoding are transcoded to UTF-8.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	decoder := xml.NewDecoder(bytes.NewReader(bom.Clean(content)))
	decoder.CharsetReader = charsetReader

	catalog := &Catalog{}
	if err := decoder.Decode(catalog); err != nil {
		return nil, errors.Wrap(err, 0)
	}

	for _, context := range catalog.Contexts {
		for _, message := range context.Messages {
			// whitespace around <numerusform> elements isn't a translation
			if message.IsNumerus() || len(message.Translation.NumerusForms) > 0 {
				message.Translation.Text = ""
			}
		}
	}

	return catalog, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	encoding, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.Errorf("unsupported catalog encoding %q", label)
	}
	return encoding.NewDecoder().Reader(input), nil
}

// LoadCatalog parses the .ts file at path
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	defer f.Close()

	return ParseCatalog(f)
}

const tsHeader = "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<!DOCTYPE TS>\n"

// Write serialises the catalog the way lupdate lays out TS 2.0 files
func (c *Catalog) Write(w io.Writer) error {
	if _, err := io.WriteString(w, tsHeader); err != nil {
		return errors.Wrap(err, 0)
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(c); err != nil {
		return errors.Wrap(err, 0)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.Wrap(err, 0)
	}
	return nil
}

// Context returns the context with the given name
func (c *Catalog) Context(name string) *Context {
	for _, context := range c.Contexts {
		if context.Name == name {
			return context
		}
	}
	return nil
}

// Lookup finds the message with source text in context
func (c *Catalog) Lookup(context string, source string) *Message {
	ctx := c.Context(context)
	if ctx == nil {
		return nil
	}
	for _, message := range ctx.Messages {
		if message.Source == source {
			return message
		}
	}
	return nil
}

// Translate returns the finished translation of source, or source itself
func (c *Catalog) Translate(context string, source string) string {
	message := c.Lookup(context, source)
	if message == nil || !message.IsFinished() || message.IsNumerus() || message.Translation.Text == "" {
		return source
	}
	return message.Translation.Text
}

// TranslatePlural picks the numerus form for n using the catalog language's
// plural rule and substitutes %n
func (c *Catalog) TranslatePlural(context string, source string, n int) string {
	text := source
	message := c.Lookup(context, source)
	if message != nil && message.IsFinished() && message.IsNumerus() {
		index := 0
		if rule, err := PluralRuleFor(c.Language); err == nil {
			index = rule.Index(n)
		}
		if index < len(message.Translation.NumerusForms) && message.Translation.NumerusForms[index] != "" {
			text = message.Translation.NumerusForms[index]
		}
	}
	return ReplaceN(text, n)
}

// ReplaceN substitutes every %n with n
func ReplaceN(s string, n int) string {
	return strings.Replace(s, "%n", strconv.Itoa(n), -1)
}

// CatalogStats counts messages by state
type CatalogStats struct {
	Total      int
	Finished   int
	Unfinished int
	Obsolete   int
}

func (c *Catalog) Stats() CatalogStats {
	stats := CatalogStats{}
	for _, context := range c.Contexts {
		for _, message := range context.Messages {
			switch {
			case message.IsObsolete():
				stats.Obsolete++
				continue
			case message.IsFinished():
				stats.Finished++
			default:
				stats.Unfinished++
			}
			stats.Total++
		}
	}
	return stats
}

// Messages calls f for every message in document order
func (c *Catalog) Messages(f func(context *Context, message *Message)) {
	for _, context := range c.Contexts {
		for _, message := range context.Messages {
			f(context, message)
		}
	}
}
