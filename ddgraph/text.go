package ddgraph

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TextTheme is the part of a theme that decides how labels are drawn.
type TextTheme interface {
	LabelTransform() string
}

// ApplyTextTransform returns the label with the text-transform style applied.
// Unknown transforms and "none" leave it unchanged.
func ApplyTextTransform(label, transform string) string {
	switch strings.ToLower(transform) {
	case "uppercase":
		return cases.Upper(language.Und).String(label)
	case "lowercase":
		return cases.Lower(language.Und).String(label)
	case "capitalize", "title":
		return cases.Title(language.Und).String(label)
	default:
		return label
	}
}
