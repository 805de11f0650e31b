// ddlib is the entry point for laying out a diagram of any kind.
package ddlib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cdr.dev/slog"
	"oss.terrastruct.com/xdefer"
	"oss.terrastruct.com/xjson"

	"github.com/docdiag/docdiag/ddgraph"
	"github.com/docdiag/docdiag/ddlayouts/ddfit"
	"github.com/docdiag/docdiag/ddlayouts/ddlayered"
	"github.com/docdiag/docdiag/ddlayouts/ddmindmap"
	"github.com/docdiag/docdiag/ddlayouts/ddsequence"
	"github.com/docdiag/docdiag/ddthemes"
	"github.com/docdiag/docdiag/ddthemes/ddthemescatalog"
	"github.com/docdiag/docdiag/lib/log"
	"github.com/docdiag/docdiag/lib/textmeasure"
)

type LayoutOptions struct {
	// Ruler defaults to a font-backed textmeasure.Ruler.
	Ruler ddgraph.Ruler
	// Theme takes precedence over ThemeID.
	Theme   *ddthemes.Theme
	ThemeID int64
	// AvailableWidth caps the final width. 0 means unbounded.
	AvailableWidth float64

	Layered  *ddlayered.ConfigurableOpts
	Sequence *ddsequence.ConfigurableOpts
	Mindmap  *ddmindmap.ConfigurableOpts
}

// Layout positions every element of d in place and records the final size and the scale
// factor applied to fit AvailableWidth.
func Layout(ctx context.Context, d *ddgraph.Diagram, opts *LayoutOptions) (_ ddgraph.Size, err error) {
	defer xdefer.Errorf(&err, "failed to lay out diagram")

	if d == nil {
		return ddgraph.Size{}, errors.New("diagram is nil")
	}
	if opts == nil {
		opts = &LayoutOptions{}
	}
	if err := d.Validate(); err != nil {
		return ddgraph.Size{}, err
	}

	theme := opts.Theme
	if theme == nil {
		theme = ddthemescatalog.Find(opts.ThemeID)
		if theme == nil {
			return ddgraph.Size{}, fmt.Errorf("theme %d not found", opts.ThemeID)
		}
	}

	ruler := opts.Ruler
	if ruler == nil {
		r, err := textmeasure.NewRuler()
		if err != nil {
			return ddgraph.Size{}, err
		}
		ruler = r
	}

	log.Debug(ctx, "laying out diagram", slog.F("kind", d.Kind), slog.F("theme", theme.ID))

	var size ddgraph.Size
	var model ddfit.Scalable
	switch d.Kind {
	case ddgraph.KindGraph:
		size, err = ddlayered.Layout(ctx, d.Graph, ruler, theme, opts.Layered)
		model = d.Graph
	case ddgraph.KindSequence:
		size, err = ddsequence.Layout(ctx, d.Sequence, ruler, theme, opts.Sequence)
		model = d.Sequence
	case ddgraph.KindMindmap:
		// Unbounded here so the fit below is the only scaling and its factor is recorded.
		size, err = ddmindmap.Layout(ctx, d.Mindmap, ruler, theme, 0, opts.Mindmap)
		model = d.Mindmap
	}
	if err != nil {
		return ddgraph.Size{}, err
	}

	factor := ddfit.ScaleToFit(ctx, model, size.Width, opts.AvailableWidth)
	size = size.Scale(factor)
	d.Size = &size
	d.ScaleFactor = factor
	return size, nil
}

// LayoutJSON parses a serialized diagram, lays it out and serializes the result.
func LayoutJSON(ctx context.Context, input []byte, opts *LayoutOptions) ([]byte, error) {
	d, err := ddgraph.ParseDiagram(input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse diagram: %w", err)
	}
	if _, err := Layout(ctx, d, opts); err != nil {
		return nil, err
	}
	// MarshalIndent reports encoding failures as a JSON string, so encode once to surface them.
	if _, err := json.Marshal(d); err != nil {
		return nil, fmt.Errorf("failed to encode layout: %w", err)
	}
	return []byte(xjson.MarshalIndent(d)), nil
}
