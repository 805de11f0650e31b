package geo

import (
	"fmt"
	"math"
)

type Box struct {
	TopLeft *Point  `json:"topLeft"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func NewBox(tl *Point, width, height float64) *Box {
	if tl == nil {
		tl = NewPoint(0, 0)
	}
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Center() *Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

func (b *Box) Right() float64 {
	return b.TopLeft.X + b.Width
}

func (b *Box) Bottom() float64 {
	return b.TopLeft.Y + b.Height
}

// Scale multiplies position and size by factor.
func (b *Box) Scale(factor float64) {
	if b == nil {
		return
	}
	b.TopLeft.Scale(factor)
	b.Width *= factor
	b.Height *= factor
}

// Port returns the point where a ray leaving the center of b in direction (dx, dy)
// crosses the border of b.
//
//	      dy
//	 ┌────▲────┐
//	 │    │   ╱│ <- exits the right side when |dx|·h/2 > |dy|·w/2
//	 │    ●───►│ dx
//	 │         │
//	 └─────────┘
func (b *Box) Port(dx, dy float64) *Point {
	c := b.Center()
	hw := b.Width / 2
	hh := b.Height / 2
	if dx == 0 && dy == 0 {
		return c
	}
	if math.Abs(dx)*hh > math.Abs(dy)*hw {
		side := float64(Sign(dx))
		return NewPoint(c.X+side*hw, c.Y+dy*hw/math.Abs(dx))
	}
	side := float64(Sign(dy))
	return NewPoint(c.X+dx*hh/math.Abs(dy), c.Y+side*hh)
}

// Overlaps reports whether b and other share interior area.
func (b *Box) Overlaps(other *Box) bool {
	return b.TopLeft.X < other.Right() && other.TopLeft.X < b.Right() &&
		b.TopLeft.Y < other.Bottom() && other.TopLeft.Y < b.Bottom()
}

func (b *Box) ToString() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
