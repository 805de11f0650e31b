package shape

type shapeParallelogram struct {
	baseShape
}

func NewParallelogram(shapeType string) Shape {
	return shapeParallelogram{
		baseShape: baseShape{Type: shapeType},
	}
}

// slanted sides lean by 26.6° (rise 2, run 1)
func (s shapeParallelogram) GetDimensionsToFit(width, height float64) (float64, float64) {
	return width + height, height
}
