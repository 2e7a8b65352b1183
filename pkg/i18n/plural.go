package i18n

import (
	"strings"

	"github.com/go-errors/errors"
	"golang.org/x/text/language"
)

// PluralRule describes how a language picks between numerus forms
type PluralRule struct {
	Forms    string
	NPlurals int
	Formula  Formula
}

// Index returns the numerus form to use for n, clamped to the rule's forms
func (r *PluralRule) Index(n int) int {
	index := r.Formula(n)
	if index < 0 || index >= r.NPlurals {
		return 0
	}
	return index
}

const (
	germanicForms = "nplurals=2; plural=(n != 1);"
	frenchForms   = "nplurals=2; plural=(n > 1);"
	noPluralForms = "nplurals=1; plural=0;"
)

// Plural-Forms headers keyed by base language. Brazilian Portuguese differs
// from European Portuguese so it gets its own entry.
var pluralForms = map[string]string{
	"bn":    germanicForms,
	"de":    germanicForms,
	"en":    germanicForms,
	"he":    germanicForms,
	"hu":    germanicForms,
	"it":    germanicForms,
	"es":    germanicForms,
	"nl":    germanicForms,
	"fr":    frenchForms,
	"pt-BR": frenchForms,
	"pt":    germanicForms,
	"id":    noPluralForms,
	"ko":    noPluralForms,
	"tr":    noPluralForms,
	"zh":    noPluralForms,
	"ja":    noPluralForms,
	"ro":    "nplurals=3; plural=(n==1 ? 0 : (n==0 || (n%100 > 0 && n%100 < 20)) ? 1 : 2);",
	"ru": "nplurals=4; plural=((n%10==1 && n%100!=11) ? 0 : " +
		"(n%10>=2 && n%10<=4 && (n%100<12 || n%100>14)) ? 1 : " +
		"((n%10==0 || (n%10>=5 && n%10<=9)) || (n%100>=11 && n%100<=14)) ? 2 : 3);",
	"pl": "nplurals=3; plural=(n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);",
}

// PluralRuleFor resolves a language tag such as "pt_BR", "zh-TW" or "ru" to
// its plural rule
func PluralRuleFor(lang string) (*PluralRule, error) {
	tag, err := language.Parse(strings.Replace(lang, "_", "-", -1))
	if err != nil {
		return nil, errors.Errorf("unknown language %q: %s", lang, err)
	}

	base, _ := tag.Base()
	forms, ok := pluralForms[base.String()]
	if base.String() == "pt" {
		if region, confidence := tag.Region(); confidence == language.Exact && region.String() == "BR" {
			forms = pluralForms["pt-BR"]
		}
	}
	if !ok {
		return nil, errors.Errorf("no plural rule for language %q", lang)
	}

	formula, nplurals, err := MakeFormula(forms)
	if err != nil {
		return nil, err
	}
	return &PluralRule{Forms: forms, NPlurals: nplurals, Formula: formula}, nil
}
