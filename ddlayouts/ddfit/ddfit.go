// ddfit shrinks laid out diagrams that are wider than the space they are shown in.
package ddfit

import (
	"context"

	"cdr.dev/slog"

	"github.com/docdiag/docdiag/lib/log"
)

// Scalable is a laid out model whose every position and size can be multiplied by a factor.
type Scalable interface {
	Scale(factor float64)
}

// ScaleToFit scales m uniformly so that a diagram naturalWidth wide fits in targetWidth.
// It returns the factor applied. Diagrams that already fit, have no width, or have no
// target to fit into are left untouched with a factor of 1.
func ScaleToFit(ctx context.Context, m Scalable, naturalWidth, targetWidth float64) float64 {
	if naturalWidth <= targetWidth || naturalWidth <= 0 || targetWidth <= 0 {
		return 1.
	}
	factor := targetWidth / naturalWidth
	log.Debug(ctx, "scaling to fit",
		slog.F("natural", naturalWidth),
		slog.F("target", targetWidth),
		slog.F("factor", factor),
	)
	m.Scale(factor)
	return factor
}
