package shape

type shapeHexagon struct {
	baseShape
}

func NewHexagon() Shape {
	return shapeHexagon{
		baseShape: baseShape{Type: HEXAGON_TYPE},
	}
}

// Each angled side takes a quarter of the height horizontally.
func (s shapeHexagon) GetDimensionsToFit(width, height float64) (float64, float64) {
	return width + height/2, height
}
