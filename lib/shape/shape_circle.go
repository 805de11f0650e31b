package shape

import "math"

type shapeCircle struct {
	baseShape
}

// NewCircle covers both circle and double circle, which share their outer size.
func NewCircle(shapeType string) Shape {
	return shapeCircle{
		baseShape: baseShape{Type: shapeType},
	}
}

func (s shapeCircle) GetDimensionsToFit(width, height float64) (float64, float64) {
	diameter := math.Max(width, height)
	return diameter, diameter
}
