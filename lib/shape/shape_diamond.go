package shape

import "math"

type shapeDiamond struct {
	baseShape
}

func NewDiamond() Shape {
	return shapeDiamond{
		baseShape: baseShape{Type: DIAMOND_TYPE},
	}
}

func (s shapeDiamond) GetDimensionsToFit(width, height float64) (float64, float64) {
	side := DIAMOND_FACTOR * math.Max(width, height)
	return side, side
}
