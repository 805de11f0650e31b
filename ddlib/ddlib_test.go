package ddlib_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"oss.terrastruct.com/diff"

	"github.com/docdiag/docdiag/ddgraph"
	"github.com/docdiag/docdiag/ddlib"
	"github.com/docdiag/docdiag/ddthemes/ddthemescatalog"
	"github.com/docdiag/docdiag/lib/geo"
	"github.com/docdiag/docdiag/lib/log"
	"github.com/docdiag/docdiag/lib/textmeasure"
)

func twoNodes() *ddgraph.Diagram {
	g := ddgraph.NewGraph()
	g.AddNode("A", "A")
	g.AddNode("B", "B")
	g.AddEdge("A", "B", "")
	return ddgraph.NewGraphDiagram(g)
}

func TestLayoutUnbounded(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	d := twoNodes()
	size, err := ddlib.Layout(ctx, d, &ddlib.LayoutOptions{
		Ruler: textmeasure.NewFixedRuler(),
	})
	assert.Nil(t, err)
	assert.Equal(t, ddgraph.Size{Width: 100, Height: 172}, size)
	assert.Equal(t, &size, d.Size)
	assert.Equal(t, 1., d.ScaleFactor)
}

func TestLayoutScalesToAvailableWidth(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	d := twoNodes()
	size, err := ddlib.Layout(ctx, d, &ddlib.LayoutOptions{
		Ruler:          textmeasure.NewFixedRuler(),
		AvailableWidth: 50,
	})
	assert.Nil(t, err)
	assert.Equal(t, 0.5, d.ScaleFactor)
	assert.Equal(t, ddgraph.Size{Width: 50, Height: 86}, size)

	a, _ := d.Graph.Node("A")
	assert.Equal(t, geo.NewPoint(10, 10), a.TopLeft)
	assert.Equal(t, 30., a.Width)
	assert.Equal(t, geo.NewPoint(25, 28), d.Graph.Edges[0].Route[0])
}

func TestLayoutSequence(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	msg := &ddgraph.Message{From: "alice", To: "bob", Text: "hello"}
	d := ddgraph.NewSequenceDiagram(&ddgraph.Sequence{
		Participants: []*ddgraph.Participant{{ID: "alice"}, {ID: "bob"}},
		Events:       ddgraph.Events{msg},
	})
	size, err := ddlib.Layout(ctx, d, &ddlib.LayoutOptions{
		Ruler:          textmeasure.NewFixedRuler(),
		AvailableWidth: 195,
	})
	assert.Nil(t, err)
	assert.Equal(t, ddgraph.Size{Width: 195, Height: 100}, size)
	assert.Equal(t, 40., msg.Y)
	assert.Equal(t, 160., d.Sequence.Participants[1].CenterX)
	assert.Equal(t, 70., d.Sequence.LifelineEnd)
}

func TestLayoutMindmapRecordsFactor(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	root := ddgraph.NewTreeNode("root", ddgraph.NewTreeNode("a"), ddgraph.NewTreeNode("b"))
	d := ddgraph.NewMindmapDiagram(&ddgraph.Mindmap{Root: root})
	size, err := ddlib.Layout(ctx, d, &ddlib.LayoutOptions{
		Ruler:          textmeasure.NewFixedRuler(),
		AvailableWidth: 108,
	})
	assert.Nil(t, err)
	assert.Equal(t, 0.5, d.ScaleFactor)
	assert.Equal(t, ddgraph.Size{Width: 108, Height: 64}, size)
	assert.Equal(t, geo.NewPoint(10, 21), root.TopLeft)
}

func TestLayoutThemes(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)

	_, err := ddlib.Layout(ctx, twoNodes(), &ddlib.LayoutOptions{
		Ruler:   textmeasure.NewFixedRuler(),
		ThemeID: 999,
	})
	assert.NotNil(t, err)

	d := twoNodes()
	theme := ddthemescatalog.Find(ddthemescatalog.GrapeSoda.ID)
	_, err = ddlib.Layout(ctx, d, &ddlib.LayoutOptions{
		Ruler:   textmeasure.NewFixedRuler(),
		ThemeID: 999,
		Theme:   theme,
	})
	assert.Nil(t, err)
	a, _ := d.Graph.Node("A")
	assert.Equal(t, theme.Colors.B6, a.Fill)
}

func TestLayoutErrors(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)

	_, err := ddlib.Layout(ctx, nil, nil)
	assert.NotNil(t, err)

	_, err = ddlib.Layout(ctx, &ddgraph.Diagram{Kind: ddgraph.KindSequence}, nil)
	assert.NotNil(t, err)
}

func TestLayoutJSON(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	out, err := ddlib.LayoutJSON(ctx, []byte(`{
		"kind": "graph",
		"graph": {
			"direction": "LR",
			"nodes": [{"id": "A", "label": "A"}, {"id": "B", "label": "B"}],
			"edges": [{"from": "A", "to": "B"}]
		}
	}`), &ddlib.LayoutOptions{Ruler: textmeasure.NewFixedRuler()})
	assert.Nil(t, err)

	var d ddgraph.Diagram
	assert.Nil(t, json.Unmarshal(out, &d))
	assert.Equal(t, ddgraph.Size{Width: 220, Height: 76}, *d.Size)
	b, ok := d.Graph.Node("B")
	if assert.True(t, ok) {
		assert.Equal(t, 1, b.Layer)
		assert.Equal(t, geo.NewPoint(140, 20), b.TopLeft)
	}

	_, err = ddlib.LayoutJSON(ctx, []byte(`{"kind": "graph"`), nil)
	assert.NotNil(t, err)
}

func TestLayoutJSONNullEntries(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "node",
			input: `{"kind": "graph", "graph": {"nodes": [null, {"id": "a"}], "edges": []}}`,
		},
		{
			name:  "edge",
			input: `{"kind": "graph", "graph": {"nodes": [{"id": "a"}, {"id": "b"}], "edges": [null, {"from": "a", "to": "b"}]}}`,
		},
		{
			name: "section",
			input: `{"kind": "sequence", "sequence": {"participants": [{"id": "a"}], "events": [
				{"type": "block", "kind": "alt", "sections": [null, {"events": [{"type": "message", "from": "a", "to": "a"}]}]}
			]}}`,
		},
		{
			name:  "participant",
			input: `{"kind": "sequence", "sequence": {"participants": [null, {"id": "a"}], "events": [null, {"type": "message", "from": "a", "to": "a"}]}}`,
		},
		{
			name:  "child",
			input: `{"kind": "mindmap", "mindmap": {"root": {"label": "r", "children": [null, {"label": "c", "children": [null]}]}}}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctx := log.WithTB(context.Background(), t, nil)
			out, err := ddlib.LayoutJSON(ctx, []byte(tc.input), &ddlib.LayoutOptions{Ruler: textmeasure.NewFixedRuler()})
			assert.Nil(t, err)

			d, err := ddgraph.ParseDiagram(out)
			if assert.Nil(t, err) && assert.NotNil(t, d.Size) {
				assert.Greater(t, d.Size.Width, 0.)
			}
		})
	}
}

func TestLayoutJSONGolden(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "graph",
			input: `{"kind": "graph", "graph": {"nodes": [{"id": "a", "label": "a"}, {"id": "b", "label": "b"}], "edges": [{"from": "a", "to": "b"}]}}`,
		},
		{
			name: "sequence",
			input: `{"kind": "sequence", "sequence": {"participants": [{"id": "a"}, {"id": "b"}], "events": [
				{"type": "message", "from": "a", "to": "b", "text": "hi", "activate": true}
			]}}`,
		},
		{
			name:  "mindmap",
			input: `{"kind": "mindmap", "mindmap": {"root": {"label": "hub", "children": [{"label": "ab"}]}}}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctx := log.WithTB(context.Background(), t, nil)
			out, err := ddlib.LayoutJSON(ctx, []byte(tc.input), &ddlib.LayoutOptions{Ruler: textmeasure.NewFixedRuler()})
			if err != nil {
				t.Fatal(err)
			}
			assertGolden(t, filepath.Join("testdata", t.Name()+".exp.json"), string(out))
		})
	}
}

// assertGolden compares got with the file at path. TESTDATA_ACCEPT=1 rewrites the file instead.
func assertGolden(t *testing.T, path, got string) {
	t.Helper()
	got = strings.TrimSpace(got)
	if os.Getenv("TESTDATA_ACCEPT") != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(got+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		return
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	exp := strings.TrimSpace(string(b))
	if exp == got {
		return
	}
	ds, err := diff.Strings(exp, got)
	if err != nil {
		t.Fatal(err)
	}
	t.Fatalf("%s differs, rerun with TESTDATA_ACCEPT=1 to accept:\n%s", path, ds)
}
