package ddmindmap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docdiag/docdiag/ddgraph"
	"github.com/docdiag/docdiag/ddlayouts/ddmindmap"
	"github.com/docdiag/docdiag/ddthemes/ddthemescatalog"
	"github.com/docdiag/docdiag/lib/geo"
	"github.com/docdiag/docdiag/lib/log"
	"github.com/docdiag/docdiag/lib/textmeasure"
)

func layout(t *testing.T, m *ddgraph.Mindmap, maxWidth float64) ddgraph.Size {
	ctx := log.WithTB(context.Background(), t, nil)
	size, err := ddmindmap.Layout(ctx, m, textmeasure.NewFixedRuler(), nil, maxWidth, nil)
	assert.Nil(t, err)
	return size
}

func TestRootWithTwoLeaves(t *testing.T) {
	a := ddgraph.NewTreeNode("a")
	b := ddgraph.NewTreeNode("b")
	root := ddgraph.NewTreeNode("root", a, b)
	size := layout(t, &ddgraph.Mindmap{Root: root}, 0)

	spacing := ddmindmap.DefaultOpts.SiblingSpacing
	assert.Equal(t, 22, root.FontSize)
	assert.True(t, root.Bold)
	assert.Equal(t, 16, a.FontSize)
	assert.Equal(t, 76., root.Width)
	assert.Equal(t, 44., root.Height)
	assert.Equal(t, 36., a.Height)

	assert.Greater(t, a.SubtreeHeight+b.SubtreeHeight+spacing, root.Height)
	assert.Equal(t, a.SubtreeHeight+b.SubtreeHeight+spacing, root.SubtreeHeight)
	assert.Equal(t, root.Center().Y, (a.Center().Y+b.Center().Y)/2)

	assert.Equal(t, geo.NewPoint(20, 42), root.TopLeft)
	assert.Equal(t, geo.NewPoint(156, 20), a.TopLeft)
	assert.Equal(t, geo.NewPoint(156, 72), b.TopLeft)
	assert.Equal(t, ddgraph.Size{Width: 216, Height: 128}, size)
}

func TestSubtreeInvariant(t *testing.T) {
	root := ddgraph.NewTreeNode("product",
		ddgraph.NewTreeNode("design",
			ddgraph.NewTreeNode("research"),
			ddgraph.NewTreeNode("wireframes",
				ddgraph.NewTreeNode("low fidelity"),
				ddgraph.NewTreeNode("high fidelity"),
			),
		),
		ddgraph.NewTreeNode("build"),
		ddgraph.NewTreeNode("launch",
			ddgraph.NewTreeNode("docs"),
		),
	)
	layout(t, &ddgraph.Mindmap{Root: root}, 0)

	spacing := ddmindmap.DefaultOpts.SiblingSpacing
	root.Walk(func(n *ddgraph.TreeNode) {
		assert.GreaterOrEqual(t, n.SubtreeHeight, n.Height, n.Label)
		if len(n.Children) == 0 {
			assert.Equal(t, n.Height, n.SubtreeHeight, n.Label)
			return
		}
		sum := spacing * float64(len(n.Children)-1)
		for _, c := range n.Children {
			sum += c.SubtreeHeight
			assert.Equal(t, n.Depth+1, c.Depth)
			assert.Greater(t, c.TopLeft.X, n.Right())
		}
		assert.GreaterOrEqual(t, n.SubtreeHeight, sum, n.Label)

		// siblings don't overlap
		for i := 1; i < len(n.Children); i++ {
			assert.False(t, n.Children[i-1].Overlaps(n.Children[i].Box))
		}
	})

	deep := root.Children[0].Children[1].Children[0]
	assert.Equal(t, 3, deep.Depth)
	assert.Equal(t, 14, deep.FontSize)
}

func TestPalette(t *testing.T) {
	var chain []*ddgraph.TreeNode
	var leaf *ddgraph.TreeNode
	for i := 0; i < 8; i++ {
		leaf = ddgraph.NewTreeNode("n")
		if len(chain) > 0 {
			chain[len(chain)-1].Children = []*ddgraph.TreeNode{leaf}
		}
		chain = append(chain, leaf)
	}
	layout(t, &ddgraph.Mindmap{Root: chain[0]}, 0)

	palette, err := ddthemescatalog.NeutralDefault.MindmapPalette()
	assert.Nil(t, err)
	for depth, n := range chain {
		assert.Equal(t, palette[depth%len(palette)], n.Color)
		assert.NotEmpty(t, n.TextColor)
	}
	assert.Equal(t, chain[0].Color, chain[6].Color)
}

func TestMaxWidth(t *testing.T) {
	a := ddgraph.NewTreeNode("a")
	b := ddgraph.NewTreeNode("b")
	root := ddgraph.NewTreeNode("root", a, b)
	size := layout(t, &ddgraph.Mindmap{Root: root}, 108)

	assert.Equal(t, ddgraph.Size{Width: 108, Height: 64}, size)
	assert.Equal(t, 78., a.TopLeft.X)
	assert.Equal(t, 18., a.Height)
	assert.Equal(t, 44., root.SubtreeHeight)
	assert.Equal(t, 8, a.FontSize)
}

func TestEmptyMindmap(t *testing.T) {
	size := layout(t, &ddgraph.Mindmap{}, 500)
	assert.Equal(t, ddgraph.Size{Width: ddmindmap.EMPTY_WIDTH, Height: ddmindmap.EMPTY_HEIGHT}, size)

	ctx := log.WithTB(context.Background(), t, nil)
	_, err := ddmindmap.Layout(ctx, nil, textmeasure.NewFixedRuler(), nil, 0, nil)
	assert.NotNil(t, err)
}
