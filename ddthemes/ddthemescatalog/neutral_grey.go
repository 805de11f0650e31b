package ddthemescatalog

import "github.com/docdiag/docdiag/ddthemes"

var NeutralGrey = ddthemes.Theme{
	ID:   1,
	Name: "Neutral Grey",
	Colors: ddthemes.ColorPalette{
		Neutrals: ddthemes.CoolNeutral,

		B1: "#0A0F25",
		B2: "#676C7E",
		B3: "#9499AB",
		B4: "#CFD2DD",
		B5: "#DEE1EB",
		B6: "#EEF1F8",

		AA2: "#676C7E",
		AA4: "#CFD2DD",
		AA5: "#DEE1EB",

		AB4: "#CFD2DD",
		AB5: "#DEE1EB",
	},
}
