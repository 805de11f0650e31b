package ddthemes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docdiag/docdiag/ddfonts"
	"github.com/docdiag/docdiag/ddthemes"
	"github.com/docdiag/docdiag/ddthemes/ddthemescatalog"
)

func TestBodyFontSize(t *testing.T) {
	var nilTheme *ddthemes.Theme
	assert.Equal(t, ddfonts.FONT_SIZE_M, nilTheme.BodyFontSize())
	assert.Equal(t, ddfonts.FONT_SIZE_S, ddthemescatalog.EarthTones.BodyFontSize())
}

func TestSpecialRules(t *testing.T) {
	terminal := ddthemescatalog.Terminal
	assert.Equal(t, ddfonts.GoMono, terminal.Font(16, false, false, false).Family)
	assert.Equal(t, "uppercase", terminal.LabelTransform())

	def := ddthemescatalog.NeutralDefault
	f := def.Font(20, true, false, false)
	assert.Equal(t, ddfonts.GoSans, f.Family)
	assert.Equal(t, ddfonts.FONT_STYLE_BOLD, f.Style)
	assert.Equal(t, "", def.LabelTransform())
	assert.Equal(t, ddfonts.GoMono, def.Font(20, false, false, true).Family)
}

func TestShapeColors(t *testing.T) {
	theme := ddthemescatalog.NeutralDefault
	fill, stroke := theme.ShapeColors("rectangle")
	assert.Equal(t, theme.Colors.B6, fill)
	assert.Equal(t, theme.Colors.B1, stroke)

	fill, _ = theme.ShapeColors("rhombus")
	assert.Equal(t, theme.Colors.Neutrals.N4, fill)
}

func TestValidate(t *testing.T) {
	theme := ddthemescatalog.NeutralDefault
	theme.Colors.B3 = "not-a-color"
	theme.TextTransform = "sideways"
	theme.FontFamily = "Comic"
	err := theme.Validate()
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "b3")
		assert.Contains(t, err.Error(), "sideways")
		assert.Contains(t, err.Error(), "Comic")
	}
}
