package color

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// Validate reports whether colorString is a CSS color.
func Validate(colorString string) error {
	_, err := csscolorparser.Parse(colorString)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", colorString, err)
	}
	return nil
}

func parse(colorString string) (colorful.Color, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return colorful.Color{}, err
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}, nil
}

// Darken lowers the HSL lightness of colorString by 10 points.
func Darken(colorString string) (string, error) {
	c, err := parse(colorString)
	if err != nil {
		return "", err
	}
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, l-.1).Clamped().Hex(), nil
}

func LuminanceCategory(colorString string) (string, error) {
	l, err := Luminance(colorString)
	if err != nil {
		return "", err
	}

	switch {
	case l >= .88:
		return "bright", nil
	case l >= .55:
		return "normal", nil
	case l >= .30:
		return "dark", nil
	default:
		return "darker", nil
	}
}

func Luminance(colorString string) (float64, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return 0, err
	}

	l := float64(
		float64(0.299)*float64(c.R) +
			float64(0.587)*float64(c.G) +
			float64(0.114)*float64(c.B),
	)
	return l, nil
}

// TextColor picks dark or light text for legible labels on fill.
func TextColor(fill, dark, light string) string {
	cat, err := LuminanceCategory(fill)
	if err != nil {
		return dark
	}
	switch cat {
	case "bright", "normal":
		return dark
	default:
		return light
	}
}

// Palette expands base colors to n entries. Missing entries are blended in HCL
// space between consecutive base colors so neighbours stay distinguishable.
func Palette(base []string, n int) ([]string, error) {
	if n <= 0 || len(base) == 0 {
		return nil, nil
	}
	colors := make([]colorful.Color, 0, len(base))
	for _, b := range base {
		c, err := parse(b)
		if err != nil {
			return nil, fmt.Errorf("invalid palette color %q: %w", b, err)
		}
		colors = append(colors, c)
	}
	if n <= len(colors) {
		out := make([]string, n)
		for i := range out {
			out[i] = colors[i].Hex()
		}
		return out, nil
	}

	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i < len(colors) {
			out = append(out, colors[i].Hex())
			continue
		}
		a := colors[i%len(colors)]
		b := colors[(i+1)%len(colors)]
		round := i / len(colors)
		t := 1 / float64(round+1)
		out = append(out, a.BlendHcl(b, t/2).Clamped().Hex())
	}
	return out, nil
}
