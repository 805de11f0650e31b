// ddchaos generates random diagram models, including malformed ones, to exercise the
// layout engines.
package ddchaos

import (
	"fmt"
	mathrand "math/rand"
	"strings"

	"oss.terrastruct.com/xrand"

	"github.com/docdiag/docdiag/ddgraph"
	"github.com/docdiag/docdiag/lib/go2"
	"github.com/docdiag/docdiag/lib/shape"
)

const maxLabelLen = 12

type GenOpts struct {
	// MaxItems bounds the node, participant and event counts.
	MaxItems int
	// Acyclic only generates graph edges that point forward in insertion order.
	Acyclic bool
	// Malformed allows dangling references and duplicate ids.
	Malformed bool
}

type genState struct {
	rand *mathrand.Rand
	opts GenOpts
}

func newGenState(rand *mathrand.Rand, opts GenOpts) *genState {
	if opts.MaxItems <= 0 {
		opts.MaxItems = 10
	}
	return &genState{rand: rand, opts: opts}
}

func GenDiagram(rand *mathrand.Rand, opts GenOpts) *ddgraph.Diagram {
	switch rand.Intn(3) {
	case 0:
		return ddgraph.NewGraphDiagram(GenGraph(rand, opts))
	case 1:
		return ddgraph.NewSequenceDiagram(GenSequence(rand, opts))
	default:
		return ddgraph.NewMindmapDiagram(GenMindmap(rand, opts))
	}
}

func GenGraph(rand *mathrand.Rand, opts GenOpts) *ddgraph.Graph {
	gs := newGenState(rand, opts)
	g := ddgraph.NewGraph()
	g.Direction = []ddgraph.Direction{
		ddgraph.DirectionDown,
		ddgraph.DirectionUp,
		ddgraph.DirectionRight,
		ddgraph.DirectionLeft,
	}[rand.Intn(4)]

	n := rand.Intn(gs.opts.MaxItems) + 1
	for i := 0; i < n; i++ {
		node := g.AddNode(fmt.Sprintf("n%d", i), gs.label())
		if gs.roll(70, 30) == 1 {
			node.Shape = gs.shape()
		}
		node.Bold = gs.roll(80, 20) == 1
		node.Mono = gs.roll(90, 10) == 1
	}

	edges := rand.Intn(gs.opts.MaxItems * 2)
	for i := 0; i < edges; i++ {
		from := rand.Intn(n)
		to := rand.Intn(n)
		if gs.opts.Acyclic {
			if from == to {
				continue
			}
			from, to = go2.Min(from, to), go2.Max(from, to)
		}
		toID := fmt.Sprintf("n%d", to)
		if gs.opts.Malformed && gs.roll(90, 10) == 1 {
			toID = "missing"
		}
		g.AddEdge(fmt.Sprintf("n%d", from), toID, gs.label())
	}
	return g
}

func GenSequence(rand *mathrand.Rand, opts GenOpts) *ddgraph.Sequence {
	gs := newGenState(rand, opts)
	seq := &ddgraph.Sequence{}

	n := rand.Intn(gs.opts.MaxItems) + 1
	var ids []string
	for i := 0; i < n; i++ {
		p := &ddgraph.Participant{
			ID:    fmt.Sprintf("p%d", i),
			Alias: gs.label(),
		}
		if gs.roll(75, 25) == 1 {
			p.Kind = ddgraph.KindActor
		}
		seq.Participants = append(seq.Participants, p)
		ids = append(ids, p.ID)
	}
	if gs.opts.Malformed {
		ids = append(ids, "ghost")
	}

	seq.Events = gs.events(ids, rand.Intn(gs.opts.MaxItems)+1, 0)
	return seq
}

func (gs *genState) events(ids []string, n, depth int) ddgraph.Events {
	var events ddgraph.Events
	for i := 0; i < n; i++ {
		switch gs.roll(60, 15, 10, 15) {
		case 0:
			m := &ddgraph.Message{
				From: gs.pick(ids),
				To:   gs.pick(ids),
				Text: gs.label(),
			}
			switch gs.roll(70, 15, 15) {
			case 1:
				m.Activate = true
			case 2:
				m.Deactivate = true
			}
			events = append(events, m)
		case 1:
			note := &ddgraph.Note{
				Placement: []ddgraph.NotePlacement{
					ddgraph.NoteLeftOf,
					ddgraph.NoteRightOf,
					ddgraph.NoteOver,
				}[gs.rand.Intn(3)],
				Text: gs.label(),
			}
			for j := gs.rand.Intn(3); j > 0; j-- {
				note.Participants = append(note.Participants, gs.pick(ids))
			}
			events = append(events, note)
		case 2:
			if depth >= 3 {
				continue
			}
			b := &ddgraph.Block{
				Kind:  ddgraph.BlockKinds[gs.rand.Intn(len(ddgraph.BlockKinds))],
				Label: gs.label(),
			}
			for j := gs.rand.Intn(3); j >= 0; j-- {
				b.Sections = append(b.Sections, &ddgraph.Section{
					Label:  gs.label(),
					Events: gs.events(ids, gs.rand.Intn(4), depth+1),
				})
			}
			events = append(events, b)
		case 3:
			events = append(events, &ddgraph.Activation{
				Participant: gs.pick(ids),
				Activate:    gs.roll(50, 50) == 0,
			})
		}
	}
	return events
}

func GenMindmap(rand *mathrand.Rand, opts GenOpts) *ddgraph.Mindmap {
	gs := newGenState(rand, opts)
	budget := rand.Intn(gs.opts.MaxItems) + 1
	return &ddgraph.Mindmap{Root: gs.treeNode(&budget, 0)}
}

func (gs *genState) treeNode(budget *int, depth int) *ddgraph.TreeNode {
	*budget--
	n := ddgraph.NewTreeNode(gs.label())
	if gs.roll(70, 30) == 1 {
		n.Shape = gs.shape()
	}
	for *budget > 0 && depth < 6 && gs.roll(40, 60) == 1 {
		n.Children = append(n.Children, gs.treeNode(budget, depth+1))
	}
	return n
}

// label is a random string that may be empty or span several lines.
func (gs *genState) label() string {
	s := xrand.String(gs.rand.Intn(maxLabelLen), []rune{'\r'})
	if gs.roll(85, 15) == 1 {
		s += "\n" + xrand.String(gs.rand.Intn(maxLabelLen), []rune{'\r'})
	}
	return strings.ToValidUTF8(s, "")
}

func (gs *genState) shape() string {
	return shape.Shapes[gs.rand.Intn(len(shape.Shapes))]
}

func (gs *genState) pick(ids []string) string {
	return ids[gs.rand.Intn(len(ids))]
}

func (gs *genState) roll(probs ...int) int {
	max := 0
	for _, p := range probs {
		max += p
	}

	n := gs.rand.Intn(max)
	var acc int
	for i, p := range probs {
		if n >= acc && n < acc+p {
			return i
		}
		acc += p
	}

	panic("ddchaos: unreachable")
}
