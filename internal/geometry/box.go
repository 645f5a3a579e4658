// Package geometry normalizes detector region output into canonical
// axis-aligned boxes and derives area-based metrics from them.
//
// All coordinates are in image pixel space with the origin at the top-left
// corner, x growing right and y growing down. Adapters are responsible for
// converting into this coordinate system before calling into this package.
package geometry

// Box is a canonical axis-aligned rectangle in image pixel coordinates.
//
// Width and height are always non-negative; an empty box is valid and simply
// contributes zero area.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Area returns the box area in square pixels.
func (b Box) Area() float64 {
	return b.W * b.H
}

// Point is a single 2D point in image pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Quad is a four-point region, not necessarily axis-aligned. Text detectors
// commonly emit these for rotated words.
type Quad [4]Point

// FromQuad returns the axis-aligned bounding box of a quadrilateral.
//
// The point order is irrelevant: any permutation of the same four points
// yields the same Box. A degenerate quad collapses to a zero-area box.
func FromQuad(q Quad) Box {
	minX, maxX := q[0].X, q[0].X
	minY, maxY := q[0].Y, q[0].Y
	for _, p := range q[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// FromCorners builds a Box from an (x1,y1)-(x2,y2) corner pair.
//
// An inverted pair clamps to zero width/height rather than producing a
// negative extent.
func FromCorners(x1, y1, x2, y2 float64) Box {
	w := x2 - x1
	if w < 0 {
		w = 0
	}
	h := y2 - y1
	if h < 0 {
		h = 0
	}
	return Box{X: x1, Y: y1, W: w, H: h}
}
