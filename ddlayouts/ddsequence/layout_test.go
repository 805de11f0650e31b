package ddsequence_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docdiag/docdiag/ddgraph"
	"github.com/docdiag/docdiag/ddlayouts/ddsequence"
	"github.com/docdiag/docdiag/lib/log"
	"github.com/docdiag/docdiag/lib/textmeasure"
)

// With the fixed ruler at the default body size, a char is 8 wide and a line 20 tall.
func layout(t *testing.T, seq *ddgraph.Sequence) ddgraph.Size {
	ctx := log.WithTB(context.Background(), t, nil)
	size, err := ddsequence.Layout(ctx, seq, textmeasure.NewFixedRuler(), nil, nil)
	assert.Nil(t, err)
	return size
}

func participants(ids ...string) []*ddgraph.Participant {
	var ps []*ddgraph.Participant
	for _, id := range ids {
		ps = append(ps, &ddgraph.Participant{ID: id})
	}
	return ps
}

func flatten(events ddgraph.Events) []float64 {
	var ys []float64
	events.Walk(func(e ddgraph.Event) {
		ys = append(ys, e.Top())
	})
	return ys
}

func assertMonotonic(t *testing.T, events ddgraph.Events) {
	ys := flatten(events)
	for i := 1; i < len(ys); i++ {
		assert.GreaterOrEqual(t, ys[i], ys[i-1], "event %d", i)
	}
}

func TestBasicSequence(t *testing.T) {
	msg := &ddgraph.Message{From: "alice", To: "bob", Text: "hello"}
	seq := &ddgraph.Sequence{
		Participants: participants("alice", "bob"),
		Events:       ddgraph.Events{msg},
	}
	size := layout(t, seq)

	alice, bob := seq.Participants[0], seq.Participants[1]
	assert.Equal(t, 100., alice.Width)
	assert.Equal(t, 40., alice.Height)
	assert.Equal(t, 70., alice.CenterX)
	assert.Equal(t, 320., bob.CenterX)
	assert.GreaterOrEqual(t, bob.CenterX-alice.CenterX, alice.Width+ddsequence.DefaultOpts.ParticipantSpacing)

	assert.Equal(t, 80., msg.Y)
	assert.Greater(t, msg.Y, alice.Height)

	assert.Equal(t, 140., seq.LifelineEnd)
	assert.Equal(t, ddgraph.Size{Width: 390, Height: 200}, size)
}

func TestActorHeight(t *testing.T) {
	seq := &ddgraph.Sequence{
		Participants: []*ddgraph.Participant{
			{ID: "user", Kind: ddgraph.KindActor},
			{ID: "api"},
		},
	}
	layout(t, seq)

	user, api := seq.Participants[0], seq.Participants[1]
	assert.Equal(t, ddsequence.MIN_ACTOR_HEIGHT, user.Height)
	assert.Equal(t, ddsequence.MIN_PARTICIPANT_HEIGHT, api.Height)
	// bottom aligned
	assert.Equal(t, user.Bottom(), api.Bottom())
}

func TestLabelSpacing(t *testing.T) {
	long := strings.Repeat("x", 60)
	seq := &ddgraph.Sequence{
		Participants: participants("a", "b", "c"),
		Events: ddgraph.Events{
			&ddgraph.Message{From: "a", To: "c", Text: long},
		},
	}
	layout(t, seq)

	a, b := seq.Participants[0], seq.Participants[1]
	// 480 wide label spread over two gaps
	assert.Equal(t, 290., b.TopLeft.X-a.Right())
}

func TestSelfMessage(t *testing.T) {
	self := &ddgraph.Message{From: "a", To: "a", Text: "think"}
	next := &ddgraph.Message{From: "a", To: "b"}
	seq := &ddgraph.Sequence{
		Participants: participants("a", "b"),
		Events:       ddgraph.Events{self, next},
	}
	layout(t, seq)
	assert.Equal(t, ddsequence.SELF_MESSAGE_DISTANCE, next.Y-self.Y)
}

func TestActivationSpans(t *testing.T) {
	call := &ddgraph.Message{From: "a", To: "b", Activate: true}
	nested := &ddgraph.Message{From: "a", To: "b", Activate: true}
	reply := &ddgraph.Message{From: "b", To: "a", Deactivate: true}
	seq := &ddgraph.Sequence{
		Participants: participants("a", "b"),
		Events:       ddgraph.Events{call, nested, reply},
	}
	layout(t, seq)

	if assert.Len(t, seq.Spans, 2) {
		outer, inner := seq.Spans[0], seq.Spans[1]
		assert.Equal(t, "b", outer.Participant)
		assert.Equal(t, 0, outer.Depth)
		assert.Equal(t, 1, inner.Depth)
		assert.Equal(t, call.Y, outer.StartY)
		assert.Equal(t, nested.Y, inner.StartY)
		assert.Equal(t, reply.Y, inner.EndY)
		// never deactivated
		assert.Equal(t, seq.LifelineEnd, outer.EndY)
	}
}

func TestExplicitActivation(t *testing.T) {
	msg := &ddgraph.Message{From: "a", To: "b"}
	on := &ddgraph.Activation{Participant: "b", Activate: true}
	msg2 := &ddgraph.Message{From: "b", To: "a"}
	off := &ddgraph.Activation{Participant: "b"}
	stray := &ddgraph.Activation{Participant: "ghost", Activate: true}
	seq := &ddgraph.Sequence{
		Participants: participants("a", "b"),
		Events:       ddgraph.Events{msg, on, msg2, off, stray},
	}
	layout(t, seq)

	assert.Equal(t, msg.Y, on.Y)
	assert.Equal(t, msg2.Y, off.Y)
	// no vertical advance
	assert.Equal(t, ddsequence.DefaultOpts.MessageSpacing, msg2.Y-msg.Y)
	if assert.Len(t, seq.Spans, 1) {
		assert.Equal(t, msg.Y, seq.Spans[0].StartY)
		assert.Equal(t, msg2.Y, seq.Spans[0].EndY)
	}
	assertMonotonic(t, seq.Events)
}

func TestActivationAfterNoteAndBlock(t *testing.T) {
	note := &ddgraph.Note{Placement: ddgraph.NoteOver, Participants: []string{"a"}, Text: "hi"}
	onAfterNote := &ddgraph.Activation{Participant: "a", Activate: true}
	inner := &ddgraph.Message{From: "a", To: "b"}
	block := &ddgraph.Block{
		Kind:     ddgraph.BlockOpt,
		Sections: []*ddgraph.Section{{Events: ddgraph.Events{inner}}},
	}
	offAfterBlock := &ddgraph.Activation{Participant: "a"}
	empty := &ddgraph.Block{Kind: ddgraph.BlockBreak}
	onAfterEmpty := &ddgraph.Activation{Participant: "b", Activate: true}
	seq := &ddgraph.Sequence{
		Participants: participants("a", "b"),
		Events:       ddgraph.Events{note, onAfterNote, block, offAfterBlock, empty, onAfterEmpty},
	}
	layout(t, seq)

	assert.Equal(t, note.Top(), onAfterNote.Y)
	assert.Equal(t, inner.Y, offAfterBlock.Y)
	assert.Equal(t, empty.Top(), onAfterEmpty.Y)
	if assert.Len(t, seq.Spans, 2) {
		assert.Equal(t, note.Top(), seq.Spans[0].StartY)
		assert.Equal(t, inner.Y, seq.Spans[0].EndY)
		assert.Equal(t, seq.LifelineEnd, seq.Spans[1].EndY)
	}
	assertMonotonic(t, seq.Events)
}

func TestNotes(t *testing.T) {
	left := &ddgraph.Note{Placement: ddgraph.NoteLeftOf, Participants: []string{"b"}, Text: "hi"}
	right := &ddgraph.Note{Placement: ddgraph.NoteRightOf, Participants: []string{"a"}, Text: "hi"}
	over := &ddgraph.Note{Placement: ddgraph.NoteOver, Participants: []string{"a", "b"}, Text: "hi"}
	lost := &ddgraph.Note{Placement: ddgraph.NoteOver, Participants: []string{"ghost"}, Text: "hi"}
	seq := &ddgraph.Sequence{
		Participants: participants("a", "b"),
		Events:       ddgraph.Events{left, right, over, lost},
	}
	layout(t, seq)
	a, b := seq.Participants[0], seq.Participants[1]

	assert.Equal(t, 36., left.Width)
	assert.Equal(t, 40., left.Height)
	assert.Equal(t, b.CenterX-ddsequence.NOTE_GAP, left.Right())
	assert.Equal(t, a.CenterX+ddsequence.NOTE_GAP, right.TopLeft.X)

	assert.Equal(t, b.CenterX-a.CenterX+2*ddsequence.NOTE_GAP, over.Width)
	assert.Equal(t, (a.CenterX+b.CenterX)/2, over.Center().X)

	// unresolved notes span the whole diagram
	assert.Equal(t, a.TopLeft.X, lost.TopLeft.X)
	assert.Equal(t, b.Right(), lost.Right())

	assert.Equal(t, left.Bottom()+ddsequence.NOTE_MARGIN, right.Top())
	assertMonotonic(t, seq.Events)
}

func TestShiftLeftNote(t *testing.T) {
	note := &ddgraph.Note{Placement: ddgraph.NoteLeftOf, Participants: []string{"a"}, Text: strings.Repeat("n", 20)}
	seq := &ddgraph.Sequence{
		Participants: participants("a"),
		Events:       ddgraph.Events{note},
	}
	size := layout(t, seq)

	a := seq.Participants[0]
	assert.Equal(t, 20., note.TopLeft.X)
	assert.Equal(t, 160., a.TopLeft.X)
	assert.Equal(t, 210., a.CenterX)
	assert.Equal(t, a.Right()+ddsequence.DefaultOpts.Padding, size.Width)
}

func TestBlocks(t *testing.T) {
	m1 := &ddgraph.Message{From: "a", To: "b", Text: "try"}
	m2 := &ddgraph.Message{From: "b", To: "c", Text: "retry"}
	inner := &ddgraph.Block{
		Kind:  ddgraph.BlockLoop,
		Label: "until done",
		Sections: []*ddgraph.Section{
			{Events: ddgraph.Events{m2}},
		},
	}
	m3 := &ddgraph.Message{From: "b", To: "a", Text: "fail"}
	outer := &ddgraph.Block{
		Kind:  ddgraph.BlockAlt,
		Label: "ok",
		Sections: []*ddgraph.Section{
			{Label: "ok", Events: ddgraph.Events{m1, inner}},
			{Label: "else", Events: ddgraph.Events{m3}},
		},
	}
	after := &ddgraph.Message{From: "c", To: "a"}
	seq := &ddgraph.Sequence{
		Participants: participants("a", "b", "c", "d"),
		Events:       ddgraph.Events{outer, after},
	}
	layout(t, seq)
	a, c, d := seq.Participants[0], seq.Participants[2], seq.Participants[3]

	assertMonotonic(t, seq.Events)

	// vertical containment
	for _, m := range []*ddgraph.Message{m1, m2, m3} {
		assert.Greater(t, m.Y, outer.Top())
		assert.Less(t, m.Y, outer.Bottom())
	}
	assert.Greater(t, m2.Y, inner.Top())
	assert.Less(t, m2.Y, inner.Bottom())
	assert.LessOrEqual(t, inner.Bottom(), outer.Sections[1].Y)
	assert.LessOrEqual(t, outer.Bottom(), after.Y)

	// horizontal containment, referenced participants only
	assert.Less(t, outer.TopLeft.X, inner.TopLeft.X)
	assert.Greater(t, outer.Right(), inner.Right())
	assert.Less(t, outer.TopLeft.X, a.TopLeft.X)
	assert.Greater(t, outer.Right(), c.Right())
	assert.Less(t, outer.Right(), d.TopLeft.X)

	assert.Equal(t, outer.Top(), outer.Sections[0].Y)
	assert.Equal(t, outer.Sections[1].Y, m3.Y-20-ddsequence.BLOCK_LABEL_PADDING)
	assert.GreaterOrEqual(t, a.TopLeft.X, ddsequence.DefaultOpts.Padding)
	assert.GreaterOrEqual(t, outer.TopLeft.X, ddsequence.DefaultOpts.Padding)
}

func TestUnreferencedBlock(t *testing.T) {
	block := &ddgraph.Block{
		Kind: ddgraph.BlockRect,
		Sections: []*ddgraph.Section{
			{Events: ddgraph.Events{&ddgraph.Note{Placement: ddgraph.NoteOver, Participants: []string{"ghost"}, Text: "?"}}},
		},
	}
	empty := &ddgraph.Block{Kind: ddgraph.BlockOpt}
	seq := &ddgraph.Sequence{
		Participants: participants("a", "b"),
		Events:       ddgraph.Events{block, empty},
	}
	layout(t, seq)
	a, b := seq.Participants[0], seq.Participants[1]

	assert.Less(t, block.TopLeft.X, a.TopLeft.X)
	assert.Greater(t, block.Right(), b.Right())
	assert.Greater(t, empty.Height, 0.)
	assertMonotonic(t, seq.Events)
}

func TestEmptySequence(t *testing.T) {
	size := layout(t, &ddgraph.Sequence{})
	assert.Equal(t, ddgraph.Size{}, size)

	ctx := log.WithTB(context.Background(), t, nil)
	_, err := ddsequence.Layout(ctx, nil, textmeasure.NewFixedRuler(), nil, nil)
	assert.NotNil(t, err)
}
