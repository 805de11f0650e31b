// ddfonts holds the fonts labels are measured with.
// The default families are the Go fonts bundled with golang.org/x/image.
package ddfonts

import (
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/docdiag/docdiag/lib/syncmap"
)

type FontFamily string
type FontStyle string

type Font struct {
	Family FontFamily `json:"family"`
	Style  FontStyle  `json:"style"`
	Size   int        `json:"size"`
}

func (f FontFamily) Font(size int, style FontStyle) Font {
	return Font{
		Family: f,
		Style:  style,
		Size:   size,
	}
}

// Sizeless drops the size so that f can be used as a key into FontFaces.
func (f Font) Sizeless() Font {
	f.Size = 0
	return f
}

const (
	FONT_SIZE_XS   = 12
	FONT_SIZE_S    = 14
	FONT_SIZE_M    = 16
	FONT_SIZE_L    = 20
	FONT_SIZE_XL   = 24
	FONT_SIZE_XXL  = 28
	FONT_SIZE_XXXL = 32

	FONT_STYLE_REGULAR     FontStyle = "regular"
	FONT_STYLE_BOLD        FontStyle = "bold"
	FONT_STYLE_ITALIC      FontStyle = "italic"
	FONT_STYLE_BOLD_ITALIC FontStyle = "bold-italic"

	GoSans FontFamily = "Go"
	GoMono FontFamily = "GoMono"
)

var FontStyles = []FontStyle{
	FONT_STYLE_REGULAR,
	FONT_STYLE_BOLD,
	FONT_STYLE_ITALIC,
	FONT_STYLE_BOLD_ITALIC,
}

var FontFamilies = []FontFamily{
	GoSans,
	GoMono,
}

// Style maps the bold and italic switches of a label to a FontStyle.
func Style(bold, italic bool) FontStyle {
	switch {
	case bold && italic:
		return FONT_STYLE_BOLD_ITALIC
	case bold:
		return FONT_STYLE_BOLD
	case italic:
		return FONT_STYLE_ITALIC
	default:
		return FONT_STYLE_REGULAR
	}
}

// FromFlags is the font for measure(text, size, bold, italic, mono).
func FromFlags(family FontFamily, size int, bold, italic, mono bool) Font {
	if mono {
		family = GoMono
	}
	if family == "" {
		family = GoSans
	}
	return family.Font(size, Style(bold, italic))
}

var fontFaces = syncmap.New[Font, []byte]()

func init() {
	builtin := map[Font][]byte{
		{Family: GoSans, Style: FONT_STYLE_REGULAR}:     goregular.TTF,
		{Family: GoSans, Style: FONT_STYLE_BOLD}:        gobold.TTF,
		{Family: GoSans, Style: FONT_STYLE_ITALIC}:      goitalic.TTF,
		{Family: GoSans, Style: FONT_STYLE_BOLD_ITALIC}: gobolditalic.TTF,
		{Family: GoMono, Style: FONT_STYLE_REGULAR}:     gomono.TTF,
		{Family: GoMono, Style: FONT_STYLE_BOLD}:        gomonobold.TTF,
		{Family: GoMono, Style: FONT_STYLE_ITALIC}:      gomonoitalic.TTF,
		{Family: GoMono, Style: FONT_STYLE_BOLD_ITALIC}: gomonobolditalic.TTF,
	}
	for f, ttf := range builtin {
		fontFaces.Set(f, ttf)
	}
}

// Lookup returns the TTF bytes for the family and style of font. Size is ignored.
func Lookup(font Font) ([]byte, bool) {
	return fontFaces.Lookup(font.Sizeless())
}

// AddFontFamily registers a custom family. Styles without a TTF fall back to regular.
func AddFontFamily(name string, regularTTF, boldTTF, italicTTF, boldItalicTTF []byte) (*FontFamily, error) {
	if regularTTF == nil {
		return nil, fmt.Errorf("font family %q is missing a regular face", name)
	}
	family := FontFamily(name)
	ttfs := map[FontStyle][]byte{
		FONT_STYLE_REGULAR:     regularTTF,
		FONT_STYLE_BOLD:        boldTTF,
		FONT_STYLE_ITALIC:      italicTTF,
		FONT_STYLE_BOLD_ITALIC: boldItalicTTF,
	}
	for style, ttf := range ttfs {
		if ttf == nil {
			ttf = regularTTF
		}
		fontFaces.Set(Font{Family: family, Style: style}, ttf)
	}
	return &family, nil
}
