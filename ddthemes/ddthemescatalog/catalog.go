package ddthemescatalog

import (
	"fmt"
	"strings"

	"github.com/docdiag/docdiag/ddthemes"
)

var Catalog = []ddthemes.Theme{
	NeutralDefault,
	NeutralGrey,
	GrapeSoda,
	Aubergine,
	EarthTones,
}

var DarkCatalog = []ddthemes.Theme{
	Terminal,
}

// Find returns the theme with the given ID, or nil if there is none.
func Find(id int64) *ddthemes.Theme {
	for _, theme := range Catalog {
		if theme.ID == id {
			return &theme
		}
	}
	for _, theme := range DarkCatalog {
		if theme.ID == id {
			return &theme
		}
	}
	return nil
}

// Default returns a copy of the theme used when none is given.
func Default() *ddthemes.Theme {
	t := NeutralDefault
	return &t
}

func CLIString() string {
	var s strings.Builder

	s.WriteString("Light:\n")
	for _, t := range Catalog {
		s.WriteString(fmt.Sprintf("- %s: %d\n", t.Name, t.ID))
	}

	s.WriteString("Dark:\n")
	for _, t := range DarkCatalog {
		s.WriteString(fmt.Sprintf("- %s: %d\n", t.Name, t.ID))
	}

	return s.String()
}
