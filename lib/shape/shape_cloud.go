package shape

const cloudInflation = 1.3

type shapeCloud struct {
	baseShape
}

// NewCloud covers the irregular mindmap outlines (cloud and bang).
func NewCloud(shapeType string) Shape {
	return shapeCloud{
		baseShape: baseShape{Type: shapeType},
	}
}

func (s shapeCloud) GetDimensionsToFit(width, height float64) (float64, float64) {
	width, height = width*cloudInflation, height*cloudInflation
	// very wide content makes the lobes collapse
	return LimitAR(width, height, 4)
}
