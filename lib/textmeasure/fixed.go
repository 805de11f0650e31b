package textmeasure

import (
	"math"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/docdiag/docdiag/ddfonts"
)

// Fixed measures every terminal cell as CharWidth em and every line as LineHeight em.
// It makes layouts reproducible without loading any font.
type Fixed struct {
	CharWidth  float64
	LineHeight float64
}

func NewFixedRuler() Fixed {
	return Fixed{
		CharWidth:  0.5,
		LineHeight: 1.25,
	}
}

func (r Fixed) Measure(f ddfonts.Font, s string) (width, height float64) {
	if s == "" {
		return 0, 0
	}
	lines := strings.Split(s, "\n")
	cells := 0
	for _, line := range lines {
		lineCells := uniseg.StringWidth(strings.ReplaceAll(line, "\t", strings.Repeat(" ", TAB_SIZE)))
		if lineCells > cells {
			cells = lineCells
		}
	}
	size := float64(f.Size)
	return math.Ceil(float64(cells) * r.CharWidth * size), math.Ceil(float64(len(lines)) * r.LineHeight * size)
}
