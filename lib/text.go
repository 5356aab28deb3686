package lib

import (
	"strings"

	"github.com/gosimple/slug"
)

// Slugify transliterates text to lowercase ASCII words joined by dashes.
func Slugify(text string) string {
	return slug.Make(text)
}

// SlugWords returns the transliterated, lowercased words of text.
func SlugWords(text string) []string {
	return strings.FieldsFunc(Slugify(text), func(r rune) bool {
		return r == '-' || r == '_'
	})
}
