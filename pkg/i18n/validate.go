package i18n

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// IssueKind classifies a problem found in a catalog
type IssueKind int

const (
	MissingTranslation IssueKind = iota
	Unfinished
	NumerusCount
	MissingPlaceholder
	ExtraPlaceholder
	UnknownLanguage
)

func (k IssueKind) String() string {
	switch k {
	case MissingTranslation:
		return "missing translation"
	case Unfinished:
		return "unfinished"
	case NumerusCount:
		return "wrong number of plural forms"
	case MissingPlaceholder:
		return "missing placeholder"
	case ExtraPlaceholder:
		return "unexpected placeholder"
	case UnknownLanguage:
		return "unknown language"
	}
	return "unknown"
}

// Issue is one problem found by Validate
type Issue struct {
	Kind     IssueKind
	Context  string
	Source   string
	Location *Location
	Detail   string
}

func (i Issue) String() string {
	where := i.Context
	if i.Location != nil {
		where = fmt.Sprintf("%s (%s:%d)", i.Context, i.Location.Filename, i.Location.Line)
	}
	res := i.Kind.String()
	if where != "" {
		res = where + ": " + res
	}
	if i.Detail != "" {
		res += " " + i.Detail
	}
	if i.Source != "" {
		res += fmt.Sprintf(" in %q", truncate(i.Source, 60))
	}
	return res
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// Validate checks that every message is translated, that plural messages
// carry as many forms as the catalog language needs, and that translations
// keep the %1..%99 and %n markers of their source
func Validate(c *Catalog) []Issue {
	issues := []Issue{}

	rule, err := PluralRuleFor(c.Language)
	if err != nil {
		issues = append(issues, Issue{Kind: UnknownLanguage, Detail: fmt.Sprintf("%q", c.Language)})
	}

	c.Messages(func(context *Context, message *Message) {
		if message.IsObsolete() {
			return
		}

		newIssue := func(kind IssueKind, detail string) Issue {
			issue := Issue{Kind: kind, Context: context.Name, Source: message.Source, Detail: detail}
			if len(message.Locations) > 0 {
				issue.Location = &message.Locations[0]
			}
			return issue
		}

		if message.IsEmpty() {
			issues = append(issues, newIssue(MissingTranslation, ""))
			return
		}

		if !message.IsFinished() {
			issues = append(issues, newIssue(Unfinished, ""))
		}

		texts := []string{message.Translation.Text}
		if message.IsNumerus() {
			texts = message.Translation.NumerusForms
			if rule != nil && len(texts) != rule.NPlurals {
				issues = append(issues, newIssue(NumerusCount, fmt.Sprintf("(%d instead of %d)", len(texts), rule.NPlurals)))
			}
		}

		expected := Placeholders(message.Source)
		for _, text := range texts {
			if text == "" {
				continue
			}
			found := Placeholders(text)
			if missing := lo.Reject(expected, func(p string, _ int) bool { return lo.Contains(found, p) }); len(missing) > 0 {
				issues = append(issues, newIssue(MissingPlaceholder, strings.Join(missing, ", ")))
			}
			if extra := lo.Reject(found, func(p string, _ int) bool { return lo.Contains(expected, p) }); len(extra) > 0 {
				issues = append(issues, newIssue(ExtraPlaceholder, strings.Join(extra, ", ")))
			}
		}
	})

	return issues
}

// MessageKey identifies a message across catalogs
type MessageKey struct {
	Context string
	Source  string
}

func (k MessageKey) String() string {
	return k.Context + "|" + k.Source
}

func sourceKeys(c *Catalog) []MessageKey {
	keys := []MessageKey{}
	c.Messages(func(context *Context, message *Message) {
		if !message.IsObsolete() {
			keys = append(keys, MessageKey{Context: context.Name, Source: message.Source})
		}
	})
	return keys
}

// CompareSources reports the messages of reference that other lacks, and
// the messages of other that reference no longer has
func CompareSources(reference *Catalog, other *Catalog) (missing []MessageKey, obsolete []MessageKey) {
	referenceKeys := sourceKeys(reference)
	otherKeys := sourceKeys(other)

	missing = lo.Reject(referenceKeys, func(key MessageKey, _ int) bool { return lo.Contains(otherKeys, key) })
	obsolete = lo.Reject(otherKeys, func(key MessageKey, _ int) bool { return lo.Contains(referenceKeys, key) })
	return missing, obsolete
}
