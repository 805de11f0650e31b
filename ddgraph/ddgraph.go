// ddgraph holds the diagram models that the layout engines consume and fill in.
package ddgraph

import (
	"encoding/json"
	"strings"

	"github.com/docdiag/docdiag/ddfonts"
	"github.com/docdiag/docdiag/lib/geo"
	"github.com/docdiag/docdiag/lib/shape"
)

// LayerUnassigned marks a node that layering has not reached yet.
const LayerUnassigned = -1

// Ruler measures the rendered size of a label.
type Ruler interface {
	Measure(font ddfonts.Font, s string) (width, height float64)
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s Size) Scale(factor float64) Size {
	return Size{
		Width:  s.Width * factor,
		Height: s.Height * factor,
	}
}

type Direction string

const (
	DirectionDown  Direction = "down"
	DirectionUp    Direction = "up"
	DirectionRight Direction = "right"
	DirectionLeft  Direction = "left"
)

// ParseDirection accepts the d2 style names and the usual flowchart abbreviations.
// Anything unrecognized is top-down.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "bt", "bottom-up":
		return DirectionUp
	case "right", "lr", "left-right":
		return DirectionRight
	case "left", "rl", "right-left":
		return DirectionLeft
	default:
		return DirectionDown
	}
}

// Horizontal reports whether layers advance along x.
func (d Direction) Horizontal() bool {
	return d == DirectionRight || d == DirectionLeft
}

type Graph struct {
	Direction Direction `json:"direction,omitempty"`

	// Nodes is in insertion order. IDs are unique.
	Nodes []*Node `json:"nodes"`
	// Edges is in insertion order, which layout keeps for deterministic output.
	Edges []*Edge `json:"edges"`

	index map[string]*Node
}

type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Shape string `json:"shape,omitempty"`

	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Mono          bool   `json:"mono,omitempty"`
	TextTransform string `json:"textTransform,omitempty"`

	Fill   string `json:"fill,omitempty"`
	Stroke string `json:"stroke,omitempty"`

	*geo.Box `json:"box,omitempty"`
	Layer    int `json:"layer"`
}

type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`

	Style    string `json:"style,omitempty"`
	SrcArrow string `json:"srcArrow,omitempty"`
	DstArrow string `json:"dstArrow,omitempty"`

	Route []*geo.Point `json:"route,omitempty"`
}

func NewGraph() *Graph {
	return &Graph{
		Direction: DirectionDown,
		index:     make(map[string]*Node),
	}
}

// AddNode inserts a node. If id is taken, the existing node is returned unchanged.
func (g *Graph) AddNode(id, label string) *Node {
	if g.index == nil {
		g.reindex()
	}
	if n, ok := g.index[id]; ok {
		return n
	}
	n := &Node{
		ID:    id,
		Label: label,
		Box:   geo.NewBox(nil, 0, 0),
		Layer: LayerUnassigned,
	}
	g.Nodes = append(g.Nodes, n)
	g.index[id] = n
	return n
}

// AddEdge appends an edge. Its endpoints are not required to exist.
func (g *Graph) AddEdge(from, to, label string) *Edge {
	e := &Edge{
		From:  from,
		To:    to,
		Label: label,
	}
	g.Edges = append(g.Edges, e)
	return e
}

func (g *Graph) Node(id string) (*Node, bool) {
	if g.index == nil {
		g.reindex()
	}
	n, ok := g.index[id]
	return n, ok
}

// reindex rebuilds the id lookup. Nodes with a duplicate id are dropped, keeping the first.
func (g *Graph) reindex() {
	g.index = make(map[string]*Node, len(g.Nodes))
	nodes := g.Nodes[:0]
	for _, n := range g.Nodes {
		if n == nil {
			continue
		}
		if _, ok := g.index[n.ID]; ok {
			continue
		}
		if n.Box == nil {
			n.Box = geo.NewBox(nil, 0, 0)
		}
		g.index[n.ID] = n
		nodes = append(nodes, n)
	}
	g.Nodes = nodes
}

func (g *Graph) UnmarshalJSON(b []byte) error {
	type graph Graph
	var sg graph
	if err := json.Unmarshal(b, &sg); err != nil {
		return err
	}
	*g = Graph(sg)
	g.Direction = ParseDirection(string(g.Direction))
	g.reindex()
	return nil
}

// DropNil removes nil nodes and edges and returns how many were removed.
func (g *Graph) DropNil() int {
	dropped := 0
	nodes := g.Nodes[:0]
	for _, n := range g.Nodes {
		if n == nil {
			dropped++
			continue
		}
		nodes = append(nodes, n)
	}
	g.Nodes = nodes
	if dropped > 0 {
		g.index = nil
	}

	edges := g.Edges[:0]
	for _, e := range g.Edges {
		if e == nil {
			dropped++
			continue
		}
		edges = append(edges, e)
	}
	g.Edges = edges
	return dropped
}

func (g *Graph) Scale(factor float64) {
	for _, n := range g.Nodes {
		n.Box.Scale(factor)
	}
	for _, e := range g.Edges {
		geo.Points(e.Route).Scale(factor)
	}
}

// Text is the label as it is drawn.
func (n *Node) Text(theme TextTheme) string {
	transform := n.TextTransform
	if transform == "" && theme != nil {
		transform = theme.LabelTransform()
	}
	label := n.Label
	if label == "" {
		label = n.ID
	}
	return ApplyTextTransform(label, transform)
}

// SizeToContent sizes the node around a measured label.
// The padded content is floored at the minimum size before the shape gets room for its outline.
func (n *Node) SizeToContent(contentWidth, contentHeight, paddingX, paddingY, minWidth, minHeight float64) {
	w := contentWidth + paddingX
	h := contentHeight + paddingY
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}
	s := shape.NewShape(n.Shape)
	n.Width, n.Height = s.GetDimensionsToFit(w, h)
}
