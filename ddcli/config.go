package ddcli

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/docdiag/docdiag/ddlayouts/ddlayered"
	"github.com/docdiag/docdiag/ddlayouts/ddmindmap"
	"github.com/docdiag/docdiag/ddlayouts/ddsequence"
	"github.com/docdiag/docdiag/ddthemes"
	"github.com/docdiag/docdiag/ddthemes/ddthemescatalog"
)

// config is the TOML file passed with --config. Every key is optional.
//
//	theme = 1
//	width = 800
//
//	[style]
//	font_size = 14
//	[style.colors]
//	b6 = "lavender"
//
//	[layered]
//	node_spacing = 24
type config struct {
	ThemeID *int64   `toml:"theme"`
	Width   *float64 `toml:"width"`

	Style toml.Primitive `toml:"style"`

	Layered  ddlayered.ConfigurableOpts  `toml:"layered"`
	Sequence ddsequence.ConfigurableOpts `toml:"sequence"`
	Mindmap  ddmindmap.ConfigurableOpts  `toml:"mindmap"`

	md toml.MetaData
}

func parseConfig(b []byte) (*config, error) {
	c := &config{
		Layered:  ddlayered.DefaultOpts,
		Sequence: ddsequence.DefaultOpts,
		Mindmap:  ddmindmap.DefaultOpts,
	}
	md, err := toml.Decode(string(b), c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		for _, k := range undecoded {
			if len(k) > 0 && k[0] == "style" {
				continue
			}
			return nil, fmt.Errorf("unknown config key %q", k.String())
		}
	}
	c.md = md
	return c, nil
}

// theme returns a copy of catalog theme id with the [style] table applied on top.
func (c *config) theme(id int64) (*ddthemes.Theme, error) {
	theme := ddthemescatalog.Find(id)
	if theme == nil {
		return nil, fmt.Errorf("theme %d not found", id)
	}
	if c != nil && c.md.IsDefined("style") {
		if err := c.md.PrimitiveDecode(c.Style, theme); err != nil {
			return nil, fmt.Errorf("invalid style: %w", err)
		}
		if undecoded := c.md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
		}
	}
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid style: %w", err)
	}
	return theme, nil
}
