package shape

import (
	"math"
	"strings"
)

const (
	RECTANGLE_TYPE     = "rectangle"
	SQUARE_TYPE        = "square"
	ROUNDED_TYPE       = "rounded"
	STADIUM_TYPE       = "stadium"
	SUBROUTINE_TYPE    = "subroutine"
	CYLINDER_TYPE      = "cylinder"
	CIRCLE_TYPE        = "circle"
	DOUBLE_CIRCLE_TYPE = "double_circle"
	DIAMOND_TYPE       = "diamond"
	HEXAGON_TYPE       = "hexagon"
	PARALLELOGRAM_TYPE = "parallelogram"
	TRAPEZOID_TYPE     = "trapezoid"
	CLOUD_TYPE         = "cloud"
	BANG_TYPE          = "bang"

	// DIAMOND_FACTOR leaves room for content rotated into the diamond.
	DIAMOND_FACTOR = 1.4
)

var Shapes = []string{
	RECTANGLE_TYPE,
	SQUARE_TYPE,
	ROUNDED_TYPE,
	STADIUM_TYPE,
	SUBROUTINE_TYPE,
	CYLINDER_TYPE,
	CIRCLE_TYPE,
	DOUBLE_CIRCLE_TYPE,
	DIAMOND_TYPE,
	HEXAGON_TYPE,
	PARALLELOGRAM_TYPE,
	TRAPEZOID_TYPE,
	CLOUD_TYPE,
	BANG_TYPE,
}

// Shape sizes a node around its already padded content box.
type Shape interface {
	Is(shape string) bool
	GetType() string

	// GetDimensionsToFit returns the outer size of the shape whose inner content area
	// is width x height.
	GetDimensionsToFit(width, height float64) (float64, float64)
}

type baseShape struct {
	Type string
}

func (s baseShape) Is(shapeType string) bool {
	return s.Type == shapeType
}

func (s baseShape) GetType() string {
	return s.Type
}

func (s baseShape) GetDimensionsToFit(width, height float64) (float64, float64) {
	return width, height
}

// Normalize maps a shape tag to its canonical form. Unknown and empty tags are rectangles.
func Normalize(shapeType string) string {
	switch t := strings.ToLower(strings.TrimSpace(shapeType)); t {
	case SQUARE_TYPE, ROUNDED_TYPE, STADIUM_TYPE, SUBROUTINE_TYPE, CYLINDER_TYPE,
		CIRCLE_TYPE, DOUBLE_CIRCLE_TYPE, DIAMOND_TYPE, HEXAGON_TYPE,
		PARALLELOGRAM_TYPE, TRAPEZOID_TYPE, CLOUD_TYPE, BANG_TYPE:
		return t
	case "doublecircle", "double-circle":
		return DOUBLE_CIRCLE_TYPE
	case "rhombus":
		return DIAMOND_TYPE
	default:
		return RECTANGLE_TYPE
	}
}

func NewShape(shapeType string) Shape {
	switch t := Normalize(shapeType); t {
	case CIRCLE_TYPE, DOUBLE_CIRCLE_TYPE:
		return NewCircle(t)
	case DIAMOND_TYPE:
		return NewDiamond()
	case HEXAGON_TYPE:
		return NewHexagon()
	case PARALLELOGRAM_TYPE, TRAPEZOID_TYPE:
		return NewParallelogram(t)
	case CLOUD_TYPE, BANG_TYPE:
		return NewCloud(t)
	case CYLINDER_TYPE:
		return NewCylinder()
	default:
		return baseShape{Type: t}
	}
}

// LimitAR grows the smaller side so that the larger side is at most aspectRatio times it.
func LimitAR(width, height, aspectRatio float64) (float64, float64) {
	if width > aspectRatio*height {
		height = math.Round(width / aspectRatio)
	} else if height > aspectRatio*width {
		width = math.Round(height / aspectRatio)
	}
	return width, height
}
