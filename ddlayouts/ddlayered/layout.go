// ddlayered lays out directed graphs in layers: nodes are ranked so edges flow from lower to
// higher layers, each layer is ordered to reduce crossings, and layers are stacked along the
// diagram direction.
package ddlayered

import (
	"context"
	"errors"
	"math"
	"sort"

	"cdr.dev/slog"
	"oss.terrastruct.com/xdefer"

	"github.com/docdiag/docdiag/ddgraph"
	"github.com/docdiag/docdiag/ddthemes"
	"github.com/docdiag/docdiag/ddthemes/ddthemescatalog"
	"github.com/docdiag/docdiag/lib/color"
	"github.com/docdiag/docdiag/lib/geo"
	"github.com/docdiag/docdiag/lib/go2"
	"github.com/docdiag/docdiag/lib/log"
)

type ConfigurableOpts struct {
	// NodeSpacing separates nodes within a layer.
	NodeSpacing float64 `json:"nodeSpacing" toml:"node_spacing"`
	// LayerSpacing separates consecutive layers.
	LayerSpacing float64 `json:"layerSpacing" toml:"layer_spacing"`
	// Padding surrounds the whole diagram.
	Padding float64 `json:"padding" toml:"padding"`
}

var DefaultOpts = ConfigurableOpts{
	NodeSpacing:  40,
	LayerSpacing: 60,
	Padding:      20,
}

// Layout sets the box and layer of every node and the route of every edge of g.
// Edges with an endpoint that is not a node of g are left unrouted.
func Layout(ctx context.Context, g *ddgraph.Graph, ruler ddgraph.Ruler, theme *ddthemes.Theme, opts *ConfigurableOpts) (size ddgraph.Size, err error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	defer xdefer.Errorf(&err, "failed to layered layout")

	if g == nil {
		return size, errors.New("graph is nil")
	}
	if ruler == nil {
		return size, errors.New("ruler is nil")
	}
	if theme == nil {
		theme = ddthemescatalog.Default()
	}
	if n := g.DropNil(); n > 0 {
		log.Warn(ctx, "dropped null graph entries", slog.F("count", n))
	}

	if len(g.Nodes) == 0 {
		for _, e := range g.Edges {
			e.Route = nil
		}
		log.Debug(ctx, "empty graph")
		return size, nil
	}

	measure(g, ruler, theme)
	assignLayers(ctx, g)
	layers := layerLists(g)
	reduceCrossings(g, layers)
	size = place(g, layers, opts)
	routeEdges(ctx, g)

	log.Debug(ctx, "layered layout",
		slog.F("nodes", len(g.Nodes)),
		slog.F("edges", len(g.Edges)),
		slog.F("layers", len(layers)),
		slog.F("direction", g.Direction),
	)
	return size, nil
}

func measure(g *ddgraph.Graph, ruler ddgraph.Ruler, theme *ddthemes.Theme) {
	fontSize := theme.BodyFontSize()
	for _, n := range g.Nodes {
		if n.Box == nil {
			n.Box = geo.NewBox(nil, 0, 0)
		}
		font := theme.Font(fontSize, n.Bold, n.Italic, n.Mono)
		w, h := ruler.Measure(font, n.Text(theme))
		n.SizeToContent(w, h, LABEL_PADDING_X, LABEL_PADDING_Y, MIN_NODE_WIDTH, MIN_NODE_HEIGHT)

		fill, stroke := theme.ShapeColors(n.Shape)
		if n.Stroke == "" && n.Fill != "" {
			// a custom fill gets a matching border
			if darker, err := color.Darken(n.Fill); err == nil {
				stroke = darker
			}
		}
		if n.Fill == "" {
			n.Fill = fill
		}
		if n.Stroke == "" {
			n.Stroke = stroke
		}
	}
}

// assignLayers ranks nodes by longest path from the sources, in FIFO order.
// A node is dequeued once every in-edge from an unprocessed node has been consumed, so in
// an acyclic graph each edge goes from a lower to a higher layer. When only cycles remain,
// the first node (in insertion order) that already has a tentative layer is dequeued anyway.
// If the graph has no source at all, the first node seeds layer 0. Nodes never reached
// fall back to layer 0.
func assignLayers(ctx context.Context, g *ddgraph.Graph) {
	index := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		index[n.ID] = i
		n.Layer = ddgraph.LayerUnassigned
	}

	successors := make([][]int, len(g.Nodes))
	inDegree := make([]int, len(g.Nodes))
	for _, e := range g.Edges {
		from, ok1 := index[e.From]
		to, ok2 := index[e.To]
		if !ok1 || !ok2 || from == to {
			continue
		}
		successors[from] = append(successors[from], to)
		inDegree[to]++
	}

	queued := make([]bool, len(g.Nodes))
	processed := make([]bool, len(g.Nodes))
	queue := make([]int, 0, len(g.Nodes))
	enqueue := func(i int) {
		queued[i] = true
		queue = append(queue, i)
	}

	for i, n := range g.Nodes {
		if inDegree[i] == 0 {
			n.Layer = 0
			enqueue(i)
		}
	}
	if len(queue) == 0 {
		log.Debug(ctx, "no source nodes, seeding cycle", slog.F("node", g.Nodes[0].ID))
		g.Nodes[0].Layer = 0
		enqueue(0)
	}

	for len(queue) > 0 {
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			processed[i] = true

			layer := g.Nodes[i].Layer
			for _, s := range successors[i] {
				if processed[s] {
					continue
				}
				g.Nodes[s].Layer = go2.Max(g.Nodes[s].Layer, layer+1)
				inDegree[s]--
				if inDegree[s] == 0 && !queued[s] {
					enqueue(s)
				}
			}
		}

		for i, n := range g.Nodes {
			if !queued[i] && n.Layer != ddgraph.LayerUnassigned {
				log.Debug(ctx, "breaking cycle", slog.F("node", n.ID), slog.F("layer", n.Layer))
				enqueue(i)
				break
			}
		}
	}

	for _, n := range g.Nodes {
		if n.Layer == ddgraph.LayerUnassigned {
			log.Warn(ctx, "node unreachable from any source, placing in first layer", slog.F("node", n.ID))
			n.Layer = 0
		}
	}
}

// layerLists groups nodes by layer, keeping insertion order within a layer.
func layerLists(g *ddgraph.Graph) [][]*ddgraph.Node {
	maxLayer := 0
	for _, n := range g.Nodes {
		maxLayer = go2.Max(maxLayer, n.Layer)
	}
	layers := make([][]*ddgraph.Node, maxLayer+1)
	for _, n := range g.Nodes {
		layers[n.Layer] = append(layers[n.Layer], n)
	}
	return go2.Filter(layers, func(l []*ddgraph.Node) bool {
		return len(l) > 0
	})
}

// reduceCrossings makes one top-down pass, ordering each layer by the barycenter of the
// positions of its nodes' in-edge sources. Nodes without in-edges have a barycenter of 0.
func reduceCrossings(g *ddgraph.Graph, layers [][]*ddgraph.Node) {
	position := make(map[string]int, len(g.Nodes))
	for _, layer := range layers {
		for i, n := range layer {
			position[n.ID] = i
		}
	}

	sources := make(map[string][]string)
	for _, e := range g.Edges {
		if e.From == e.To {
			continue
		}
		if _, ok := g.Node(e.From); !ok {
			continue
		}
		sources[e.To] = append(sources[e.To], e.From)
	}

	for _, layer := range layers[go2.Min(1, len(layers)):] {
		barycenters := make(map[string]float64, len(layer))
		for _, n := range layer {
			srcs := sources[n.ID]
			if len(srcs) == 0 {
				continue
			}
			sum := 0
			for _, src := range srcs {
				sum += position[src]
			}
			barycenters[n.ID] = float64(sum) / float64(len(srcs))
		}
		sort.SliceStable(layer, func(i, j int) bool {
			return barycenters[layer[i].ID] < barycenters[layer[j].ID]
		})
		for i, n := range layer {
			position[n.ID] = i
		}
	}
}

// place packs nodes along the cross axis within each layer and stacks layers along the main
// axis in lanes as deep as the largest node. Each layer is centered on the cross axis.
func place(g *ddgraph.Graph, layers [][]*ddgraph.Node, opts *ConfigurableOpts) ddgraph.Size {
	horizontal := g.Direction.Horizontal()
	mainExtent := func(n *ddgraph.Node) float64 {
		if horizontal {
			return n.Width
		}
		return n.Height
	}
	crossExtent := func(n *ddgraph.Node) float64 {
		if horizontal {
			return n.Height
		}
		return n.Width
	}

	maxMain := 0.
	maxCross := 0.
	layerCross := make([]float64, len(layers))
	for i, layer := range layers {
		for j, n := range layer {
			maxMain = math.Max(maxMain, mainExtent(n))
			layerCross[i] += crossExtent(n)
			if j > 0 {
				layerCross[i] += opts.NodeSpacing
			}
		}
		maxCross = math.Max(maxCross, layerCross[i])
	}

	lane := maxMain + opts.LayerSpacing
	for i, layer := range layers {
		cross := opts.Padding + (maxCross-layerCross[i])/2
		for _, n := range layer {
			main := opts.Padding + float64(i)*lane + (maxMain-mainExtent(n))/2
			n.TopLeft = geo.NewPoint(cross, main)
			if horizontal {
				n.TopLeft.Transpose()
			}
			cross += crossExtent(n) + opts.NodeSpacing
		}
	}

	totalMain := 2*opts.Padding + float64(len(layers))*maxMain + float64(len(layers)-1)*opts.LayerSpacing
	totalCross := 2*opts.Padding + maxCross
	size := ddgraph.Size{Width: totalCross, Height: totalMain}
	if horizontal {
		size = ddgraph.Size{Width: totalMain, Height: totalCross}
	}

	switch g.Direction {
	case ddgraph.DirectionLeft:
		for _, n := range g.Nodes {
			n.TopLeft.X = size.Width - n.TopLeft.X - n.Width
		}
	case ddgraph.DirectionUp:
		for _, n := range g.Nodes {
			n.TopLeft.Y = size.Height - n.TopLeft.Y - n.Height
		}
	}
	return size
}

// routeEdges gives every edge a straight route from the border of its source to the border
// of its destination, each port facing the other node's center.
func routeEdges(ctx context.Context, g *ddgraph.Graph) {
	for _, e := range g.Edges {
		src, ok1 := g.Node(e.From)
		dst, ok2 := g.Node(e.To)
		if !ok1 || !ok2 {
			log.Warn(ctx, "skipping edge with missing endpoint", slog.F("from", e.From), slog.F("to", e.To))
			e.Route = nil
			continue
		}

		if src == dst {
			e.Route = []*geo.Point{
				src.Port(1, -SELF_LOOP_SPREAD),
				src.Port(1, SELF_LOOP_SPREAD),
			}
			continue
		}

		c1 := src.Center()
		c2 := dst.Center()
		dx := c2.X - c1.X
		dy := c2.Y - c1.Y
		e.Route = []*geo.Point{
			src.Port(dx, dy),
			dst.Port(-dx, -dy),
		}
	}
}
