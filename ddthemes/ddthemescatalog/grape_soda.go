package ddthemescatalog

import "github.com/docdiag/docdiag/ddthemes"

var GrapeSoda = ddthemes.Theme{
	ID:   6,
	Name: "Grape Soda",
	Colors: ddthemes.ColorPalette{
		Neutrals: ddthemes.CoolNeutral,

		B1: "#170034",
		B2: "#7639C5",
		B3: "#8F70D1",
		B4: "#C1A2F3",
		B5: "#DACEFB",
		B6: "#F2EDFF",

		AA2: "#0F66B7",
		AA4: "#87BFF3",
		AA5: "#BCDDFB",

		AB4: "#EA99C6",
		AB5: "#FFDAEF",
	},
}
