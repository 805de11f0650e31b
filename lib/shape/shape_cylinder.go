package shape

const cylinderCapHeight = 12.

type shapeCylinder struct {
	baseShape
}

func NewCylinder() Shape {
	return shapeCylinder{
		baseShape: baseShape{Type: CYLINDER_TYPE},
	}
}

func (s shapeCylinder) GetDimensionsToFit(width, height float64) (float64, float64) {
	return width, height + 2*cylinderCapHeight
}
