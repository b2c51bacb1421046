package ocrconv

// The in-memory representation of labelled regions and their bounding boxes.

import "fmt"

// Point is a 2D point in image coordinates.
type Point struct {
	X, Y float64
}

// Region is one labelled shape from an annotation file, reduced to its two
// defining corner points. The corners may be given in any order.
type Region struct {
	Label  string
	Points [2]Point
}

// Bounds derives the axis-aligned bounding box of the region: left and upper
// are the minimum of the corner coordinates, right and lower the maximum,
// truncated to integers.
func (r Region) Bounds() BoundingBox {
	b := BoundingBox{
		Left:  int(r.Points[0].X),
		Upper: int(r.Points[0].Y),
		Right: int(r.Points[1].X),
		Lower: int(r.Points[1].Y),
	}
	if b.Right < b.Left {
		b.Left, b.Right = b.Right, b.Left
	}
	if b.Lower < b.Upper {
		b.Upper, b.Lower = b.Lower, b.Upper
	}
	return b
}

// BoundingBox is an axis-aligned rectangle with absolute pixel coordinates
// relative to the top-left corner of the image.
type BoundingBox struct {
	Left, Upper, Right, Lower int
}

// Width is the box width in pixels.
func (b BoundingBox) Width() int {
	return b.Right - b.Left
}

// Height is the box height in pixels.
func (b BoundingBox) Height() int {
	return b.Lower - b.Upper
}

// Empty reports whether the box has no area. Regions whose corners truncate
// to the same pixel column or row produce empty boxes, which cannot be
// encoded as an image and are skipped.
func (b BoundingBox) Empty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// InImage reports whether all four coordinates lie strictly within a
// width x height image. Boxes that fail this test are skipped rather than
// clipped.
func (b BoundingBox) InImage(width, height int) bool {
	return b.Left >= 0 && b.Upper >= 0 &&
		b.Right < width && b.Lower < height &&
		b.Left < width && b.Upper < height
}

// String formats the box as (left,upper)(right,lower).
func (b BoundingBox) String() string {
	return fmt.Sprintf("(%d,%d)(%d,%d)", b.Left, b.Upper, b.Right, b.Lower)
}
