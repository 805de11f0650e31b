// ddthemes defines themes that style laid out diagrams
// Color codes: darkest (N1) -> lightest (N7)
package ddthemes

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/docdiag/docdiag/ddfonts"
	"github.com/docdiag/docdiag/lib/color"
	"github.com/docdiag/docdiag/lib/go2"
	"github.com/docdiag/docdiag/lib/shape"
)

const MINDMAP_PALETTE_SIZE = 6

type Theme struct {
	ID     int64        `json:"id" toml:"id"`
	Name   string       `json:"name" toml:"name"`
	Colors ColorPalette `json:"colors" toml:"colors"`

	// FontSize is the body font size labels are measured at. Zero means FONT_SIZE_M.
	FontSize      int                `json:"fontSize,omitempty" toml:"font_size"`
	FontFamily    ddfonts.FontFamily `json:"fontFamily,omitempty" toml:"font_family"`
	TextTransform string             `json:"textTransform,omitempty" toml:"text_transform"`

	SpecialRules SpecialRules `json:"specialRules,omitempty" toml:"special_rules"`
}

type SpecialRules struct {
	Mono     bool `json:"mono,omitempty" toml:"mono"`
	CapsLock bool `json:"capsLock,omitempty" toml:"caps_lock"`
}

type Neutral struct {
	N1 string `json:"n1" toml:"n1"`
	N2 string `json:"n2" toml:"n2"`
	N3 string `json:"n3" toml:"n3"`
	N4 string `json:"n4" toml:"n4"`
	N5 string `json:"n5" toml:"n5"`
	N6 string `json:"n6" toml:"n6"`
	N7 string `json:"n7" toml:"n7"`
}

type ColorPalette struct {
	Neutrals Neutral `json:"neutrals" toml:"neutrals"`

	// Base Colors: used for nodes and participants
	B1 string `json:"b1" toml:"b1"`
	B2 string `json:"b2" toml:"b2"`
	B3 string `json:"b3" toml:"b3"`
	B4 string `json:"b4" toml:"b4"`
	B5 string `json:"b5" toml:"b5"`
	B6 string `json:"b6" toml:"b6"`

	// Alternative colors A
	AA2 string `json:"aa2" toml:"aa2"`
	AA4 string `json:"aa4" toml:"aa4"`
	AA5 string `json:"aa5" toml:"aa5"`

	// Alternative colors B
	AB4 string `json:"ab4" toml:"ab4"`
	AB5 string `json:"ab5" toml:"ab5"`
}

var CoolNeutral = Neutral{
	N1: "#0A0F25",
	N2: "#676C7E",
	N3: "#9499AB",
	N4: "#CFD2DD",
	N5: "#F0F3F9",
	N6: "#EEF1F8",
	N7: "#FFFFFF",
}

var WarmNeutral = Neutral{
	N1: "#170206",
	N2: "#535152",
	N3: "#787777",
	N4: "#CCCACA",
	N5: "#DFDCDC",
	N6: "#ECEBEB",
	N7: "#FFFFFF",
}

func (t *Theme) BodyFontSize() int {
	if t == nil || t.FontSize <= 0 {
		return ddfonts.FONT_SIZE_M
	}
	return t.FontSize
}

// Font returns the font a label is measured with at the given size.
func (t *Theme) Font(size int, bold, italic, mono bool) ddfonts.Font {
	var family ddfonts.FontFamily
	if t != nil {
		family = t.FontFamily
		mono = mono || t.SpecialRules.Mono
	}
	return ddfonts.FromFlags(family, size, bold, italic, mono)
}

// LabelTransform is the text transform applied to labels that don't set their own.
func (t *Theme) LabelTransform() string {
	if t == nil {
		return ""
	}
	if t.SpecialRules.CapsLock {
		return "uppercase"
	}
	return t.TextTransform
}

// ShapeColors returns the default fill and stroke for a node of the given shape.
func (t *Theme) ShapeColors(shapeType string) (fill, stroke string) {
	p := t.Colors
	switch shape.Normalize(shapeType) {
	case shape.DIAMOND_TYPE:
		return p.Neutrals.N4, p.B1
	case shape.CIRCLE_TYPE, shape.DOUBLE_CIRCLE_TYPE:
		return p.B5, p.B1
	case shape.CYLINDER_TYPE, shape.HEXAGON_TYPE:
		return p.AA4, p.B1
	case shape.CLOUD_TYPE, shape.BANG_TYPE:
		return p.AB4, p.B1
	default:
		return p.B6, p.B1
	}
}

// MindmapPalette derives the per-depth node colors from the base colors.
func (t *Theme) MindmapPalette() ([]string, error) {
	p := t.Colors
	return color.Palette([]string{p.B2, p.AA2, p.AB4, p.B4}, MINDMAP_PALETTE_SIZE)
}

// Validate checks every color of the theme is a parsable CSS color.
func (t *Theme) Validate() (err error) {
	p := t.Colors
	colors := map[string]string{
		"n1": p.Neutrals.N1, "n2": p.Neutrals.N2, "n3": p.Neutrals.N3, "n4": p.Neutrals.N4,
		"n5": p.Neutrals.N5, "n6": p.Neutrals.N6, "n7": p.Neutrals.N7,
		"b1": p.B1, "b2": p.B2, "b3": p.B3, "b4": p.B4, "b5": p.B5, "b6": p.B6,
		"aa2": p.AA2, "aa4": p.AA4, "aa5": p.AA5,
		"ab4": p.AB4, "ab5": p.AB5,
	}
	for _, key := range colorKeys {
		if verr := color.Validate(colors[key]); verr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", key, verr))
		}
	}
	if t.FontFamily != "" {
		if _, ok := ddfonts.Lookup(t.FontFamily.Font(0, ddfonts.FONT_STYLE_REGULAR)); !ok {
			err = multierr.Append(err, fmt.Errorf("unknown font family %q", t.FontFamily))
		}
	}
	if !go2.Contains(TextTransforms, t.TextTransform) {
		err = multierr.Append(err, fmt.Errorf("unknown text transform %q", t.TextTransform))
	}
	return err
}

var TextTransforms = []string{"", "none", "uppercase", "lowercase", "capitalize", "title"}

var colorKeys = []string{
	"n1", "n2", "n3", "n4", "n5", "n6", "n7",
	"b1", "b2", "b3", "b4", "b5", "b6",
	"aa2", "aa4", "aa5",
	"ab4", "ab5",
}
