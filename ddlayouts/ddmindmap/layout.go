// ddmindmap lays out mindmaps as trees growing right from the root, each subtree centered
// on its parent.
package ddmindmap

import (
	"context"
	"errors"
	"math"

	"cdr.dev/slog"
	"oss.terrastruct.com/xdefer"

	"github.com/docdiag/docdiag/ddgraph"
	"github.com/docdiag/docdiag/ddlayouts/ddfit"
	"github.com/docdiag/docdiag/ddthemes"
	"github.com/docdiag/docdiag/ddthemes/ddthemescatalog"
	"github.com/docdiag/docdiag/lib/color"
	"github.com/docdiag/docdiag/lib/geo"
	"github.com/docdiag/docdiag/lib/go2"
	"github.com/docdiag/docdiag/lib/log"
	"github.com/docdiag/docdiag/lib/shape"
)

type ConfigurableOpts struct {
	// LevelSpacing separates a node from its children horizontally.
	LevelSpacing float64 `json:"levelSpacing" toml:"level_spacing"`
	// SiblingSpacing separates the subtrees of siblings vertically.
	SiblingSpacing float64 `json:"siblingSpacing" toml:"sibling_spacing"`
	Padding        float64 `json:"padding" toml:"padding"`
}

var DefaultOpts = ConfigurableOpts{
	LevelSpacing:   60,
	SiblingSpacing: 16,
	Padding:        20,
}

// Layout sizes, colors and places every node of m. A result wider than maxWidth is scaled
// down to it; a maxWidth of 0 leaves the width unbounded.
func Layout(ctx context.Context, m *ddgraph.Mindmap, ruler ddgraph.Ruler, theme *ddthemes.Theme, maxWidth float64, opts *ConfigurableOpts) (size ddgraph.Size, err error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	defer xdefer.Errorf(&err, "failed to mindmap layout")

	if m == nil {
		return size, errors.New("mindmap is nil")
	}
	if ruler == nil {
		return size, errors.New("ruler is nil")
	}
	if theme == nil {
		theme = ddthemescatalog.Default()
	}

	if m.Root == nil {
		log.Debug(ctx, "empty mindmap")
		return ddgraph.Size{Width: EMPTY_WIDTH, Height: EMPTY_HEIGHT}, nil
	}

	if n := m.DropNil(); n > 0 {
		log.Warn(ctx, "dropped null mindmap children", slog.F("count", n))
	}

	palette, err := theme.MindmapPalette()
	if err != nil {
		return size, err
	}

	measure(m.Root, 0, ruler, theme, palette)
	subtreeHeight(m.Root, opts.SiblingSpacing)
	m.Root.TopLeft = geo.NewPoint(opts.Padding, opts.Padding+m.Root.SubtreeHeight/2-m.Root.Height/2)
	placeChildren(m.Root, opts)

	right, bottom := 0., 0.
	count := 0
	maxDepth := 0
	m.Root.Walk(func(n *ddgraph.TreeNode) {
		right = math.Max(right, n.Right())
		bottom = math.Max(bottom, n.Bottom())
		count++
		maxDepth = go2.Max(maxDepth, n.Depth)
	})
	size = ddgraph.Size{
		Width:  right + opts.Padding,
		Height: bottom + opts.Padding,
	}

	factor := ddfit.ScaleToFit(ctx, m, size.Width, maxWidth)
	size = size.Scale(factor)

	log.Debug(ctx, "mindmap layout",
		slog.F("nodes", count),
		slog.F("depth", maxDepth),
		slog.F("scale", factor),
	)
	return size, nil
}

// fontSize scales the body size with depth: the root is largest, the first level is body
// sized and deeper levels are smaller.
func fontSize(body, depth int) int {
	switch depth {
	case 0:
		return int(math.Round(float64(body) * ROOT_FONT_SCALE))
	case 1:
		return body
	default:
		return int(math.Round(float64(body) * DEEP_FONT_SCALE))
	}
}

func measure(n *ddgraph.TreeNode, depth int, ruler ddgraph.Ruler, theme *ddthemes.Theme, palette []string) {
	n.Depth = depth
	n.FontSize = fontSize(theme.BodyFontSize(), depth)
	n.Bold = depth == 0

	text := ddgraph.ApplyTextTransform(n.Label, theme.LabelTransform())
	w, h := ruler.Measure(theme.Font(n.FontSize, n.Bold, false, false), text)
	w, h = shape.NewShape(n.Shape).GetDimensionsToFit(w+2*LABEL_PADDING_X, h+2*LABEL_PADDING_Y)
	n.Box = geo.NewBox(nil, w, h)

	if len(palette) > 0 {
		n.Color = palette[depth%len(palette)]
		n.TextColor = color.TextColor(n.Color, theme.Colors.Neutrals.N1, theme.Colors.Neutrals.N7)
	}

	for _, c := range n.Children {
		measure(c, depth+1, ruler, theme, palette)
	}
}

// subtreeHeight sets the vertical band each subtree needs, children first.
func subtreeHeight(n *ddgraph.TreeNode, spacing float64) float64 {
	children := 0.
	for i, c := range n.Children {
		if i > 0 {
			children += spacing
		}
		children += subtreeHeight(c, spacing)
	}
	n.SubtreeHeight = math.Max(n.Height, children)
	return n.SubtreeHeight
}

// placeChildren stacks the bands of n's children right of n, centered on n's center.
func placeChildren(n *ddgraph.TreeNode, opts *ConfigurableOpts) {
	if len(n.Children) == 0 {
		return
	}
	x := n.Right() + opts.LevelSpacing

	total := 0.
	for i, c := range n.Children {
		if i > 0 {
			total += opts.SiblingSpacing
		}
		total += c.SubtreeHeight
	}

	y := n.Center().Y - total/2
	for _, c := range n.Children {
		c.TopLeft = geo.NewPoint(x, y+c.SubtreeHeight/2-c.Height/2)
		placeChildren(c, opts)
		y += c.SubtreeHeight + opts.SiblingSpacing
	}
}
