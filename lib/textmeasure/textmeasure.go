// Package textmeasure measures label extents with the TrueType faces registered in ddfonts.
package textmeasure

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/docdiag/docdiag/ddfonts"
)

const TAB_SIZE = 4
const SIZELESS_FONT_SIZE = 0

// Ruler measures text by summing glyph advances and kerning of the requested face.
// Faces are created lazily per size, so a Ruler must not be shared between goroutines.
type Ruler struct {
	// LineHeightFactor scales the distance between consecutive lines.
	LineHeightFactor float64

	ttfs  map[ddfonts.Font]*truetype.Font
	faces map[ddfonts.Font]font.Face
}

func NewRuler() (*Ruler, error) {
	r := &Ruler{
		LineHeightFactor: 1.,
		ttfs:             make(map[ddfonts.Font]*truetype.Font),
		faces:            make(map[ddfonts.Font]font.Face),
	}

	for _, fontFamily := range ddfonts.FontFamilies {
		if err := r.LoadFontFamily(fontFamily); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// LoadFontFamily parses every style of a family registered with ddfonts.AddFontFamily.
func (r *Ruler) LoadFontFamily(fontFamily ddfonts.FontFamily) error {
	for _, fontStyle := range ddfonts.FontStyles {
		f := fontFamily.Font(SIZELESS_FONT_SIZE, fontStyle)
		if _, loaded := r.ttfs[f]; loaded {
			continue
		}
		face, has := ddfonts.Lookup(f)
		if !has {
			continue
		}
		ttf, err := truetype.Parse(face)
		if err != nil {
			return fmt.Errorf("failed to parse %s %s: %w", fontFamily, fontStyle, err)
		}
		r.ttfs[f] = ttf
	}
	return nil
}

func (r *Ruler) face(f ddfonts.Font) font.Face {
	if face, ok := r.faces[f]; ok {
		return face
	}
	ttf, ok := r.ttfs[f.Sizeless()]
	if !ok {
		ttf = r.ttfs[ddfonts.GoSans.Font(SIZELESS_FONT_SIZE, f.Style)]
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size: float64(f.Size),
		DPI:  72,
	})
	r.faces[f] = face
	return face
}

// Measure returns the rounded up width and height of s, as the layout engines consume it.
func (r *Ruler) Measure(f ddfonts.Font, s string) (width, height float64) {
	w, h := r.MeasurePrecise(f, s)
	return math.Ceil(w), math.Ceil(h)
}

func (r *Ruler) MeasurePrecise(f ddfonts.Font, s string) (width, height float64) {
	if s == "" || f.Size <= 0 {
		return 0, 0
	}
	face := r.face(f)
	lineHeight := fixedToFloat(face.Metrics().Height)

	lines := strings.Split(s, "\n")
	for _, line := range lines {
		width = math.Max(width, r.measureLine(f, face, line))
	}
	height = lineHeight + float64(len(lines)-1)*lineHeight*r.LineHeightFactor
	return width, height
}

func (r *Ruler) measureLine(f ddfonts.Font, face font.Face, line string) float64 {
	line = strings.TrimSuffix(line, "\r")
	tabWidth := r.spaceWidth(face) * TAB_SIZE

	var dot float64
	prev := rune(-1)
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' {
			rem := math.Mod(dot, tabWidth)
			dot += tabWidth - rem
			prev = -1
			continue
		}
		// Wide clusters like CJK and emoji are missing from the Go fonts.
		// Measure them as that many monospace cells instead.
		if gr.Width() != 1 {
			mono := r.face(ddfonts.GoMono.Font(f.Size, f.Style))
			dot += r.spaceWidth(mono) * float64(gr.Width())
			prev = -1
			continue
		}
		for _, c := range runes {
			if prev >= 0 {
				dot += fixedToFloat(face.Kern(prev, c))
			}
			adv, ok := face.GlyphAdvance(c)
			if !ok {
				adv, _ = face.GlyphAdvance(' ')
			}
			dot += fixedToFloat(adv)
			prev = c
		}
	}
	return dot
}

func (r *Ruler) spaceWidth(face font.Face) float64 {
	adv, _ := face.GlyphAdvance(' ')
	return fixedToFloat(adv)
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
