package ddsequence

import (
	"context"
	"math"

	"cdr.dev/slog"

	"github.com/docdiag/docdiag/ddgraph"
	"github.com/docdiag/docdiag/ddthemes"
	"github.com/docdiag/docdiag/lib/geo"
	"github.com/docdiag/docdiag/lib/go2"
	"github.com/docdiag/docdiag/lib/log"
)

type sequenceDiagram struct {
	ctx   context.Context
	seq   *ddgraph.Sequence
	ruler ddgraph.Ruler
	theme *ddthemes.Theme
	opts  *ConfigurableOpts

	// order holds the participants without duplicate ids
	// rank: left to right position of participants
	order        []*ddgraph.Participant
	participants map[string]*ddgraph.Participant
	rank         map[string]int

	// open activation spans of each participant, innermost last
	stacks map[string][]*ddgraph.ActivationSpan

	actorXStep      float64
	maxHeaderHeight float64

	// cursor is where the next event is stamped, lastY the y of the latest stamp
	cursor float64
	lastY  float64

	maxBlockDepth int
}

func newSequenceDiagram(ctx context.Context, seq *ddgraph.Sequence, ruler ddgraph.Ruler, theme *ddthemes.Theme, opts *ConfigurableOpts) *sequenceDiagram {
	sd := &sequenceDiagram{
		ctx:          ctx,
		seq:          seq,
		ruler:        ruler,
		theme:        theme,
		opts:         opts,
		participants: make(map[string]*ddgraph.Participant, len(seq.Participants)),
		rank:         make(map[string]int, len(seq.Participants)),
		stacks:       make(map[string][]*ddgraph.ActivationSpan),
		actorXStep:   opts.ParticipantSpacing,
	}

	for _, p := range seq.Participants {
		if _, ok := sd.participants[p.ID]; ok {
			log.Warn(ctx, "duplicate participant", slog.F("participant", p.ID))
			continue
		}
		sd.participants[p.ID] = p
		sd.rank[p.ID] = len(sd.order)
		sd.order = append(sd.order, p)

		w, h := sd.measure(p.Label(), false)
		minHeight := MIN_PARTICIPANT_HEIGHT
		if p.IsActor() {
			minHeight = MIN_ACTOR_HEIGHT
		}
		p.Box = geo.NewBox(nil,
			math.Max(MIN_PARTICIPANT_WIDTH, w+2*LABEL_PADDING_X),
			math.Max(minHeight, h+2*LABEL_PADDING_Y),
		)
		sd.maxHeaderHeight = math.Max(sd.maxHeaderHeight, p.Height)
	}

	// ensures that long labels, spanning over multiple participants, don't make for large gaps
	// between participants by distributing the label length across the rank difference
	seq.Events.Walk(func(e ddgraph.Event) {
		m, ok := e.(*ddgraph.Message)
		if !ok || m.Text == "" {
			return
		}
		from, ok1 := sd.rank[m.From]
		to, ok2 := sd.rank[m.To]
		if !ok1 || !ok2 || from == to {
			return
		}
		w, _ := sd.measure(m.Text, false)
		rankDiff := math.Abs(float64(from - to))
		sd.actorXStep = math.Max(sd.actorXStep, w/rankDiff+MIN_HORIZONTAL_PAD)
	})

	return sd
}

func (sd *sequenceDiagram) measure(text string, bold bool) (float64, float64) {
	text = ddgraph.ApplyTextTransform(text, sd.theme.LabelTransform())
	font := sd.theme.Font(sd.theme.BodyFontSize(), bold, false, false)
	return sd.ruler.Measure(font, text)
}

func (sd *sequenceDiagram) layout() {
	sd.placeParticipants()

	sd.seq.Spans = nil
	sd.cursor = sd.opts.Padding + sd.maxHeaderHeight + HEADER_GAP
	sd.lastY = sd.cursor
	sd.layoutEvents(sd.seq.Events, 0)

	sd.seq.LifelineEnd = sd.cursor + LIFELINE_TAIL
	sd.closeSpans()
	sd.shift()
}

// placeParticipants places participants bottom aligned, side by side
func (sd *sequenceDiagram) placeParticipants() {
	x := sd.opts.Padding
	for _, p := range sd.order {
		p.TopLeft = geo.NewPoint(x, sd.opts.Padding+sd.maxHeaderHeight-p.Height)
		p.CenterX = x + p.Width/2
		x += p.Width + sd.actorXStep
	}
	// duplicates share the geometry of the first participant with their id
	for _, p := range sd.seq.Participants {
		if first := sd.participants[p.ID]; first != p {
			p.Box = first.Box.Copy()
			p.CenterX = first.CenterX
		}
	}
}

func (sd *sequenceDiagram) layoutEvents(events ddgraph.Events, depth int) {
	sd.maxBlockDepth = go2.Max(sd.maxBlockDepth, depth)
	for _, e := range events {
		switch e := e.(type) {
		case *ddgraph.Message:
			sd.layoutMessage(e)
		case *ddgraph.Note:
			sd.layoutNote(e)
		case *ddgraph.Block:
			sd.layoutBlock(e, depth)
		case *ddgraph.Activation:
			e.Y = sd.lastY
			if e.Activate {
				sd.activate(e.Participant, e.Y)
			} else {
				sd.deactivate(e.Participant, e.Y)
			}
		}
	}
}

func (sd *sequenceDiagram) layoutMessage(m *ddgraph.Message) {
	for _, id := range []string{m.From, m.To} {
		if _, ok := sd.participants[id]; !ok {
			log.Warn(sd.ctx, "message references unknown participant", slog.F("participant", id))
		}
	}

	m.Y = sd.cursor
	sd.lastY = m.Y

	_, labelHeight := sd.measure(m.Text, false)
	step := math.Max(sd.opts.MessageSpacing, labelHeight+VERTICAL_PAD)
	if m.IsSelf() {
		step = math.Max(SELF_MESSAGE_DISTANCE, labelHeight+SELF_MESSAGE_DISTANCE/2)
	}
	sd.cursor += step

	if m.Activate {
		sd.activate(m.To, m.Y)
	}
	if m.Deactivate {
		sd.deactivate(m.From, m.Y)
	}
}

func (sd *sequenceDiagram) activate(id string, y float64) {
	if _, ok := sd.participants[id]; !ok {
		log.Warn(sd.ctx, "activating unknown participant", slog.F("participant", id))
		return
	}
	span := &ddgraph.ActivationSpan{
		Participant: id,
		StartY:      y,
		EndY:        y,
		Depth:       len(sd.stacks[id]),
	}
	sd.stacks[id] = append(sd.stacks[id], span)
	sd.seq.Spans = append(sd.seq.Spans, span)
}

func (sd *sequenceDiagram) deactivate(id string, y float64) {
	stack := sd.stacks[id]
	if len(stack) == 0 {
		log.Warn(sd.ctx, "deactivating participant that is not active", slog.F("participant", id))
		return
	}
	stack[len(stack)-1].EndY = y
	sd.stacks[id] = stack[:len(stack)-1]
}

// closeSpans ends spans that were never deactivated at the end of the lifelines.
func (sd *sequenceDiagram) closeSpans() {
	for _, p := range sd.order {
		for _, span := range sd.stacks[p.ID] {
			span.EndY = sd.seq.LifelineEnd
		}
		delete(sd.stacks, p.ID)
	}
}

func (sd *sequenceDiagram) layoutNote(n *ddgraph.Note) {
	w, h := sd.measure(n.Text, false)
	w += 2 * NOTE_PADDING
	h += 2 * NOTE_PADDING

	var refs []*ddgraph.Participant
	for _, id := range n.Participants {
		if p, ok := sd.participants[id]; ok {
			refs = append(refs, p)
		} else {
			log.Warn(sd.ctx, "note references unknown participant", slog.F("participant", id))
		}
	}

	var x float64
	switch {
	case len(refs) == 0:
		left, right := sd.participantsExtent(sd.order)
		w = math.Max(w, right-left)
		x = (left+right)/2 - w/2
	case n.Placement == ddgraph.NoteLeftOf:
		x = refs[0].CenterX - NOTE_GAP - w
	case n.Placement == ddgraph.NoteRightOf:
		x = refs[len(refs)-1].CenterX + NOTE_GAP
	default:
		minC, maxC := math.Inf(1), math.Inf(-1)
		for _, p := range refs {
			minC = math.Min(minC, p.CenterX)
			maxC = math.Max(maxC, p.CenterX)
		}
		w = math.Max(w, maxC-minC+2*NOTE_GAP)
		x = (minC+maxC)/2 - w/2
	}

	n.Box = geo.NewBox(geo.NewPoint(x, sd.cursor), w, h)
	sd.lastY = sd.cursor
	sd.cursor += h + NOTE_MARGIN
}

// participantsExtent is the left and right of the boxes of ps. With no participants it is
// the padding.
func (sd *sequenceDiagram) participantsExtent(ps []*ddgraph.Participant) (left, right float64) {
	left, right = math.Inf(1), math.Inf(-1)
	for _, p := range ps {
		left = math.Min(left, p.TopLeft.X)
		right = math.Max(right, p.Right())
	}
	if len(ps) == 0 {
		return sd.opts.Padding, sd.opts.Padding
	}
	return left, right
}

// layoutBlock stacks the sections of b below a label strip, each section after the first
// below a divider. Horizontally b covers every participant referenced within it, and wider
// still for every level of blocks nested in it.
//
//	┌─────┬──────────────────┐
//	│ alt │ [label]          │
//	├─────┘                  │
//	│  ──────────────────►   │  section 1
//	│- - - - - - - - - - - - │
//	│  ◄──────────────────   │  section 2
//	└────────────────────────┘
func (sd *sequenceDiagram) layoutBlock(b *ddgraph.Block, depth int) {
	refs := sd.blockParticipants(b)
	if len(refs) == 0 {
		refs = sd.order
	}
	left, right := sd.participantsExtent(refs)
	pad := BLOCK_PADDING + float64(nestedBlockDepth(b))*BLOCK_NESTED_INSET
	left -= pad
	right += pad

	header := string(b.Kind)
	if b.Label != "" {
		header += " " + b.Label
	}
	labelWidth, labelHeight := sd.measure(header, true)
	if right-left < labelWidth+2*BLOCK_LABEL_PADDING {
		right = left + labelWidth + 2*BLOCK_LABEL_PADDING
	}

	top := sd.cursor
	sd.lastY = top
	sd.cursor += labelHeight + 2*BLOCK_LABEL_PADDING

	for i, s := range b.Sections {
		if i == 0 {
			s.Y = top
		} else {
			sd.cursor += SECTION_DIVIDER_GAP
			s.Y = sd.cursor
			if s.Label != "" {
				_, h := sd.measure(s.Label, false)
				sd.cursor += h + BLOCK_LABEL_PADDING
			}
		}
		sd.layoutEvents(s.Events, depth+1)
	}

	// lastY stays at the latest stamp inside the block, or its top when it is empty
	sd.cursor += BLOCK_BOTTOM_PADDING
	b.Box = geo.NewBox(geo.NewPoint(left, top), right-left, sd.cursor-top)
}

// blockParticipants collects the known participants referenced anywhere within b, in rank order.
func (sd *sequenceDiagram) blockParticipants(b *ddgraph.Block) []*ddgraph.Participant {
	seen := make(map[string]bool)
	add := func(ids ...string) {
		for _, id := range ids {
			if _, ok := sd.participants[id]; ok {
				seen[id] = true
			}
		}
	}
	for _, s := range b.Sections {
		s.Events.Walk(func(e ddgraph.Event) {
			switch e := e.(type) {
			case *ddgraph.Message:
				add(e.From, e.To)
			case *ddgraph.Note:
				add(e.Participants...)
			case *ddgraph.Activation:
				add(e.Participant)
			}
		})
	}

	var refs []*ddgraph.Participant
	for _, p := range sd.order {
		if seen[p.ID] {
			refs = append(refs, p)
		}
	}
	return refs
}

// nestedBlockDepth counts the levels of blocks nested inside b.
func nestedBlockDepth(b *ddgraph.Block) int {
	depth := 0
	for _, s := range b.Sections {
		for _, e := range s.Events {
			if nested, ok := e.(*ddgraph.Block); ok {
				depth = go2.Max(depth, 1+nestedBlockDepth(nested))
			}
		}
	}
	return depth
}

// shift moves everything right when a note or block sticks out left of the padding.
func (sd *sequenceDiagram) shift() {
	minX := math.Inf(1)
	for _, p := range sd.seq.Participants {
		minX = math.Min(minX, p.TopLeft.X)
	}
	sd.seq.Events.Walk(func(e ddgraph.Event) {
		if box := eventBox(e); box != nil {
			minX = math.Min(minX, box.TopLeft.X)
		}
	})
	if math.IsInf(minX, 1) || minX >= sd.opts.Padding {
		return
	}

	dx := sd.opts.Padding - minX
	log.Debug(sd.ctx, "shifting sequence right", slog.F("dx", dx))
	for _, p := range sd.seq.Participants {
		p.TopLeft.X += dx
		p.CenterX += dx
	}
	sd.seq.Events.Walk(func(e ddgraph.Event) {
		if box := eventBox(e); box != nil {
			box.TopLeft.X += dx
		}
	})
}

func eventBox(e ddgraph.Event) *geo.Box {
	switch e := e.(type) {
	case *ddgraph.Note:
		return e.Box
	case *ddgraph.Block:
		return e.Box
	}
	return nil
}

// size includes the participant row repeated below the lifelines.
func (sd *sequenceDiagram) size() ddgraph.Size {
	right := 0.
	for _, p := range sd.seq.Participants {
		right = math.Max(right, p.Right())
	}
	sd.seq.Events.Walk(func(e ddgraph.Event) {
		if box := eventBox(e); box != nil {
			right = math.Max(right, box.Right())
		}
	})
	return ddgraph.Size{
		Width:  right + sd.opts.Padding,
		Height: sd.seq.LifelineEnd + sd.maxHeaderHeight + sd.opts.Padding,
	}
}
