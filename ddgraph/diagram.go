package ddgraph

import (
	"encoding/json"
	"fmt"
)

type Kind string

const (
	KindGraph    Kind = "graph"
	KindSequence Kind = "sequence"
	KindMindmap  Kind = "mindmap"
)

// Diagram is one model of any kind, as exchanged with parsers and renderers.
type Diagram struct {
	Kind Kind `json:"kind"`

	Graph    *Graph    `json:"graph,omitempty"`
	Sequence *Sequence `json:"sequence,omitempty"`
	Mindmap  *Mindmap  `json:"mindmap,omitempty"`

	// Filled by layout.
	Size        *Size   `json:"size,omitempty"`
	ScaleFactor float64 `json:"scale,omitempty"`
}

func NewGraphDiagram(g *Graph) *Diagram {
	return &Diagram{Kind: KindGraph, Graph: g}
}

func NewSequenceDiagram(s *Sequence) *Diagram {
	return &Diagram{Kind: KindSequence, Sequence: s}
}

func NewMindmapDiagram(m *Mindmap) *Diagram {
	return &Diagram{Kind: KindMindmap, Mindmap: m}
}

// Validate checks that the model for Kind is present. An empty model is valid.
func (d *Diagram) Validate() error {
	switch d.Kind {
	case KindGraph:
		if d.Graph == nil {
			return fmt.Errorf("%s diagram has no graph", d.Kind)
		}
	case KindSequence:
		if d.Sequence == nil {
			return fmt.Errorf("%s diagram has no sequence", d.Kind)
		}
	case KindMindmap:
		if d.Mindmap == nil {
			return fmt.Errorf("%s diagram has no mindmap", d.Kind)
		}
	default:
		return fmt.Errorf("unknown diagram kind %q", d.Kind)
	}
	return nil
}

func ParseDiagram(b []byte) (*Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
