package ddgraph

import (
	"math"

	"github.com/docdiag/docdiag/lib/geo"
	"github.com/docdiag/docdiag/lib/go2"
)

type Mindmap struct {
	Root *TreeNode `json:"root,omitempty"`
}

type TreeNode struct {
	Label    string      `json:"label"`
	Shape    string      `json:"shape,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`

	// Filled by layout.
	Depth         int     `json:"depth"`
	FontSize      int     `json:"fontSize,omitempty"`
	Bold          bool    `json:"bold,omitempty"`
	Color         string  `json:"color,omitempty"`
	TextColor     string  `json:"textColor,omitempty"`
	SubtreeHeight float64 `json:"subtreeHeight"`
	*geo.Box      `json:"box,omitempty"`
}

func NewTreeNode(label string, children ...*TreeNode) *TreeNode {
	return &TreeNode{
		Label:    label,
		Children: children,
		Box:      geo.NewBox(nil, 0, 0),
	}
}

// Walk visits n and its descendants in preorder.
func (n *TreeNode) Walk(fn func(*TreeNode)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// DropNil removes nil children anywhere in the tree and returns how many were removed.
func (m *Mindmap) DropNil() int {
	dropped := 0
	m.Root.Walk(func(n *TreeNode) {
		children := n.Children[:0]
		for _, c := range n.Children {
			if c == nil {
				dropped++
				continue
			}
			children = append(children, c)
		}
		n.Children = children
	})
	return dropped
}

// Scale scales the geometry and the font sizes. Font sizes are rounded to whole points and
// never drop below 1.
func (m *Mindmap) Scale(factor float64) {
	m.Root.Walk(func(n *TreeNode) {
		n.Box.Scale(factor)
		n.SubtreeHeight *= factor
		if n.FontSize > 0 {
			n.FontSize = go2.Max(1, int(math.Round(float64(n.FontSize)*factor)))
		}
	})
}
