// ddsequence lays out sequence diagrams: participants side by side, and their events stacked
// top to bottom in order, with blocks wrapping the events of their sections.
package ddsequence

import (
	"context"
	"errors"

	"cdr.dev/slog"
	"oss.terrastruct.com/xdefer"

	"github.com/docdiag/docdiag/ddgraph"
	"github.com/docdiag/docdiag/ddthemes"
	"github.com/docdiag/docdiag/ddthemes/ddthemescatalog"
	"github.com/docdiag/docdiag/lib/log"
)

type ConfigurableOpts struct {
	// ParticipantSpacing is the minimum gap between participant boxes.
	ParticipantSpacing float64 `json:"participantSpacing" toml:"participant_spacing"`
	// MessageSpacing is the minimum vertical distance between consecutive messages.
	MessageSpacing float64 `json:"messageSpacing" toml:"message_spacing"`
	Padding        float64 `json:"padding" toml:"padding"`
}

var DefaultOpts = ConfigurableOpts{
	ParticipantSpacing: 150,
	MessageSpacing:     40,
	Padding:            20,
}

// Layout places the participants of seq, stamps every event with its y, and derives the
// activation spans. References to unknown participants are logged and otherwise ignored.
func Layout(ctx context.Context, seq *ddgraph.Sequence, ruler ddgraph.Ruler, theme *ddthemes.Theme, opts *ConfigurableOpts) (size ddgraph.Size, err error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	defer xdefer.Errorf(&err, "failed to sequence layout")

	if seq == nil {
		return size, errors.New("sequence is nil")
	}
	if ruler == nil {
		return size, errors.New("ruler is nil")
	}
	if theme == nil {
		theme = ddthemescatalog.Default()
	}
	if n := seq.DropNil(); n > 0 {
		log.Warn(ctx, "dropped null sequence entries", slog.F("count", n))
	}

	if len(seq.Participants) == 0 && len(seq.Events) == 0 {
		seq.Spans = nil
		seq.LifelineEnd = 0
		log.Debug(ctx, "empty sequence")
		return size, nil
	}

	sd := newSequenceDiagram(ctx, seq, ruler, theme, opts)
	sd.layout()

	log.Debug(ctx, "sequence layout",
		slog.F("participants", len(seq.Participants)),
		slog.F("events", len(seq.Events)),
		slog.F("spans", len(seq.Spans)),
		slog.F("maxBlockDepth", sd.maxBlockDepth),
	)
	return sd.size(), nil
}
