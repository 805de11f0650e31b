package ddgraph

import (
	"encoding/json"
	"fmt"

	"github.com/docdiag/docdiag/lib/geo"
)

type ParticipantKind string

const (
	KindParticipant ParticipantKind = "participant"
	KindActor       ParticipantKind = "actor"
)

type Sequence struct {
	Participants []*Participant `json:"participants"`
	Events       Events         `json:"events"`

	// Filled by layout.
	Spans       []*ActivationSpan `json:"spans,omitempty"`
	LifelineEnd float64           `json:"lifelineEnd"`
}

type Participant struct {
	ID    string          `json:"id"`
	Alias string          `json:"alias,omitempty"`
	Kind  ParticipantKind `json:"kind,omitempty"`

	CenterX  float64 `json:"centerX"`
	*geo.Box `json:"box,omitempty"`
}

func (p *Participant) Label() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.ID
}

func (p *Participant) IsActor() bool {
	return p.Kind == KindActor
}

// ActivationSpan is the interval a participant is active, drawn as a bar on its lifeline.
// Depth counts the spans of the same participant that were open when it started.
type ActivationSpan struct {
	Participant string  `json:"participant"`
	StartY      float64 `json:"startY"`
	EndY        float64 `json:"endY"`
	Depth       int     `json:"depth"`
}

type EventType string

const (
	EventMessage    EventType = "message"
	EventNote       EventType = "note"
	EventBlock      EventType = "block"
	EventActivation EventType = "activation"
)

// Event is one of *Message, *Note, *Block or *Activation.
type Event interface {
	Type() EventType
	// Top is the y the event was stamped with.
	Top() float64
	scale(factor float64)
}

type Events []Event

type Message struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Text  string `json:"text,omitempty"`
	Arrow string `json:"arrow,omitempty"`

	Activate   bool `json:"activate,omitempty"`
	Deactivate bool `json:"deactivate,omitempty"`

	Y float64 `json:"y"`
}

func (m *Message) Type() EventType { return EventMessage }
func (m *Message) Top() float64    { return m.Y }
func (m *Message) scale(f float64) { m.Y *= f }

func (m *Message) IsSelf() bool {
	return m.From == m.To
}

type NotePlacement string

const (
	NoteLeftOf  NotePlacement = "left_of"
	NoteRightOf NotePlacement = "right_of"
	NoteOver    NotePlacement = "over"
)

type Note struct {
	Placement    NotePlacement `json:"placement"`
	Participants []string      `json:"participants"`
	Text         string        `json:"text"`

	*geo.Box `json:"box,omitempty"`
}

func (n *Note) Type() EventType { return EventNote }
func (n *Note) Top() float64 {
	if n.Box == nil {
		return 0
	}
	return n.TopLeft.Y
}
func (n *Note) scale(f float64) { n.Box.Scale(f) }

type BlockKind string

const (
	BlockAlt      BlockKind = "alt"
	BlockOpt      BlockKind = "opt"
	BlockLoop     BlockKind = "loop"
	BlockPar      BlockKind = "par"
	BlockCritical BlockKind = "critical"
	BlockBreak    BlockKind = "break"
	BlockRect     BlockKind = "rect"
)

var BlockKinds = []BlockKind{BlockAlt, BlockOpt, BlockLoop, BlockPar, BlockCritical, BlockBreak, BlockRect}

// Block is a region such as alt or loop that groups events into sections.
// The first section carries the block's own condition label.
type Block struct {
	Kind     BlockKind  `json:"kind"`
	Label    string     `json:"label,omitempty"`
	Sections []*Section `json:"sections"`

	*geo.Box `json:"box,omitempty"`
}

type Section struct {
	Label  string `json:"label,omitempty"`
	Events Events `json:"events"`

	Y float64 `json:"y"`
}

func (b *Block) Type() EventType { return EventBlock }
func (b *Block) Top() float64 {
	if b.Box == nil {
		return 0
	}
	return b.TopLeft.Y
}
func (b *Block) scale(f float64) {
	b.Box.Scale(f)
	for _, s := range b.Sections {
		s.Y *= f
		s.Events.scale(f)
	}
}

// Activation activates or deactivates a participant without a message.
type Activation struct {
	Participant string `json:"participant"`
	Activate    bool   `json:"activate"`

	Y float64 `json:"y"`
}

func (a *Activation) Type() EventType { return EventActivation }
func (a *Activation) Top() float64    { return a.Y }
func (a *Activation) scale(f float64) { a.Y *= f }

func (es Events) scale(f float64) {
	for _, e := range es {
		e.scale(f)
	}
}

// Walk visits events in order, descending into block sections after the block itself.
func (es Events) Walk(fn func(Event)) {
	for _, e := range es {
		fn(e)
		if b, ok := e.(*Block); ok {
			for _, s := range b.Sections {
				s.Events.Walk(fn)
			}
		}
	}
}

func isNilEvent(e Event) bool {
	switch e := e.(type) {
	case nil:
		return true
	case *Message:
		return e == nil
	case *Note:
		return e == nil
	case *Block:
		return e == nil
	case *Activation:
		return e == nil
	}
	return false
}

func (es Events) dropNil() (Events, int) {
	dropped := 0
	out := es[:0]
	for _, e := range es {
		if isNilEvent(e) {
			dropped++
			continue
		}
		if b, ok := e.(*Block); ok {
			sections := b.Sections[:0]
			for _, sec := range b.Sections {
				if sec == nil {
					dropped++
					continue
				}
				var n int
				sec.Events, n = sec.Events.dropNil()
				dropped += n
				sections = append(sections, sec)
			}
			b.Sections = sections
		}
		out = append(out, e)
	}
	return out, dropped
}

// DropNil removes nil participants, events and block sections and returns how many were
// removed.
func (s *Sequence) DropNil() int {
	dropped := 0
	participants := s.Participants[:0]
	for _, p := range s.Participants {
		if p == nil {
			dropped++
			continue
		}
		participants = append(participants, p)
	}
	s.Participants = participants

	var n int
	s.Events, n = s.Events.dropNil()
	return dropped + n
}

func (s *Sequence) Scale(factor float64) {
	for _, p := range s.Participants {
		p.CenterX *= factor
		p.Box.Scale(factor)
	}
	s.Events.scale(factor)
	for _, span := range s.Spans {
		span.StartY *= factor
		span.EndY *= factor
	}
	s.LifelineEnd *= factor
}

func (es Events) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(es))
	for _, e := range es {
		var v interface{}
		switch e := e.(type) {
		case *Message:
			v = struct {
				Type EventType `json:"type"`
				*Message
			}{EventMessage, e}
		case *Note:
			v = struct {
				Type EventType `json:"type"`
				*Note
			}{EventNote, e}
		case *Block:
			v = struct {
				Type EventType `json:"type"`
				*Block
			}{EventBlock, e}
		case *Activation:
			v = struct {
				Type EventType `json:"type"`
				*Activation
			}{EventActivation, e}
		default:
			return nil, fmt.Errorf("unknown event %T", e)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return json.Marshal(out)
}

func (es *Events) UnmarshalJSON(b []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return err
	}
	events := make(Events, 0, len(raws))
	for i, raw := range raws {
		if string(raw) == "null" {
			continue
		}
		var tag struct {
			Type EventType `json:"type"`
		}
		if err := json.Unmarshal(raw, &tag); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		var e Event
		switch tag.Type {
		case EventMessage:
			e = &Message{}
		case EventNote:
			e = &Note{}
		case EventBlock:
			e = &Block{}
		case EventActivation:
			e = &Activation{}
		default:
			return fmt.Errorf("event %d: unknown type %q", i, tag.Type)
		}
		if err := json.Unmarshal(raw, e); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, e)
	}
	*es = events
	return nil
}
