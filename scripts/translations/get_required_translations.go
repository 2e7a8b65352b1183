package main

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jesseduffield/lazytorrent/pkg/i18n"
)

func main() {
	fmt.Println(getOutstandingTranslations())
}

// lists, per embedded catalog, the TranslationSet fields that the catalog
// has no finished translation for
// adapted from https://github.com/a8m/reflect-examples#read-struct-tags
func getOutstandingTranslations() string {
	output := ""
	for _, languageCode := range i18n.Languages() {
		if languageCode == i18n.EN {
			continue
		}
		catalog, err := i18n.EmbeddedCatalog(languageCode)
		if err != nil {
			output += languageCode + ": " + err.Error() + "\n\n"
			continue
		}

		output += languageCode + ":\n"
		t := reflect.TypeOf(i18n.TranslationSet{})

		for i := 0; i < t.NumField(); i++ {
			tag, ok := t.Field(i).Tag.Lookup("tr")
			if !ok {
				continue
			}
			context, source, _ := strings.Cut(tag, "|")
			if catalog.Translate(context, source) == source {
				output += t.Field(i).Name + "\n"
			}
		}
		output += "\n"
	}
	return output
}
