package ddthemescatalog

import (
	"github.com/docdiag/docdiag/ddfonts"
	"github.com/docdiag/docdiag/ddthemes"
)

var EarthTones = ddthemes.Theme{
	ID:   103,
	Name: "Earth Tones",
	Colors: ddthemes.ColorPalette{
		Neutrals: ddthemes.WarmNeutral,

		B1: "#1E1303",
		B2: "#13058E",
		B3: "#F34F00",
		B4: "#E4D9C2",
		B5: "#F9E8C7",
		B6: "#FEF7EA",

		AA2: "#6F8E6A",
		AA4: "#BFD6A9",
		AA5: "#DEEBD0",

		AB4: "#EEC9A3",
		AB5: "#F7E2CE",
	},
	FontSize: ddfonts.FONT_SIZE_S,
}
