// Package naming derives the identifier family used across generated pages
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

const componentSuffix = ".component"

// Names is the set of identifiers derived from one raw component name.
// Every field is a function of Dasherized.
type Names struct {
	// Raw is the name as supplied by the user
	Raw string

	// Dasherized is the lowercase, hyphen-separated form (e.g. "step-change-event")
	Dasherized string

	// Classified is the PascalCase form (e.g. "StepChangeEvent")
	Classified string

	// TitleCase is the human-readable form (e.g. "Step Change Event")
	TitleCase string

	// ConsumerSelector is the demo page selector (e.g. "step-change-event-consumer")
	ConsumerSelector string

	// ConsumerClass is the demo page class prefix (e.g. "StepChangeEventConsumer")
	ConsumerClass string

	// ConsumerComponent is the demo page component class (e.g. "StepChangeEventConsumerComponent")
	ConsumerComponent string
}

// Derive computes the Names for raw. It performs no validation: an empty or
// degenerate input yields empty identifiers, see Names.Empty.
func Derive(raw string) Names {
	dasherized := Dasherize(raw)
	classified := Classify(dasherized)

	return Names{
		Raw:               raw,
		Dasherized:        dasherized,
		Classified:        classified,
		TitleCase:         Title(dasherized),
		ConsumerSelector:  dasherized + "-consumer",
		ConsumerClass:     classified + "Consumer",
		ConsumerComponent: classified + "ConsumerComponent",
	}
}

// Empty reports whether the raw name reduced to nothing.
func (n Names) Empty() bool {
	return n.Dasherized == ""
}

// Variables returns the placeholder values for template rendering.
func (n Names) Variables() map[string]string {
	return map[string]string{
		"selectorSuffix":        n.Dasherized,
		"classNamePrefix":       n.Classified,
		"fileNamePrefix":        n.Dasherized,
		"consumerComponentName": n.ConsumerComponent,
		"consumerSelector":      n.ConsumerSelector,
		"title":                 n.TitleCase,
	}
}

// Dasherize lowercases raw into hyphen-separated words, dropping a trailing
// ".component" suffix. Spaces, underscores, dots and hyphens separate words,
// camel humps start a new word, and digits stay attached to their word
// ("h1-title", "footer2", "html5-parser").
func Dasherize(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= len(componentSuffix) && strings.EqualFold(s[len(s)-len(componentSuffix):], componentSuffix) {
		s = s[:len(s)-len(componentSuffix)]
	}

	var parts []string
	for _, word := range strings.FieldsFunc(s, isSeparator) {
		for _, chunk := range splitAfterDigits(word) {
			parts = append(parts, joinDigits(strcase.ToKebab(chunk)))
		}
	}
	return strings.Join(parts, "-")
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
}

// splitAfterDigits breaks a word where a digit is followed by an uppercase
// letter, the one hump strcase cannot tell apart from a digit boundary.
func splitAfterDigits(word string) []string {
	var chunks []string
	start := 0
	prev := rune(-1)
	for i, r := range word {
		if unicode.IsDigit(prev) && unicode.IsUpper(r) {
			chunks = append(chunks, word[start:i])
			start = i
		}
		prev = r
	}
	return append(chunks, word[start:])
}

// joinDigits removes the hyphens strcase places between letters and digits
func joinDigits(kebab string) string {
	var b strings.Builder
	for i := 0; i < len(kebab); i++ {
		if kebab[i] == '-' && i > 0 && i+1 < len(kebab) && (isDigit(kebab[i-1]) || isDigit(kebab[i+1])) {
			continue
		}
		b.WriteByte(kebab[i])
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Classify returns the PascalCase form of a dasherized name.
func Classify(dasherized string) string {
	return strcase.ToCamel(dasherized)
}

// Title capitalizes each hyphen-separated segment and joins them with single
// spaces. No trailing space is emitted.
func Title(dasherized string) string {
	segments := strings.Split(dasherized, "-")
	words := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(seg)
		words = append(words, string(unicode.ToUpper(r))+seg[size:])
	}
	return strings.Join(words, " ")
}
