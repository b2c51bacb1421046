package ocrconv

import "testing"

func TestRegionBounds(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		want   BoundingBox
	}{
		{
			"ordered corners",
			Region{Points: [2]Point{{10, 10}, {50, 30}}},
			BoundingBox{Left: 10, Upper: 10, Right: 50, Lower: 30},
		},
		{
			"reversed corners",
			Region{Points: [2]Point{{50, 30}, {10, 10}}},
			BoundingBox{Left: 10, Upper: 10, Right: 50, Lower: 30},
		},
		{
			"mixed corners",
			Region{Points: [2]Point{{50, 10}, {10, 30}}},
			BoundingBox{Left: 10, Upper: 10, Right: 50, Lower: 30},
		},
		{
			"fractional coordinates truncate",
			Region{Points: [2]Point{{10.9, 10.2}, {50.7, 30.9}}},
			BoundingBox{Left: 10, Upper: 10, Right: 50, Lower: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.region.Bounds(); got != tt.want {
				t.Errorf("Bounds: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundingBoxInImage(t *testing.T) {
	tests := []struct {
		name string
		box  BoundingBox
		want bool
	}{
		{"inside", BoundingBox{10, 10, 50, 30}, true},
		{"touches last pixel", BoundingBox{0, 0, 99, 99}, true},
		{"right at width", BoundingBox{10, 10, 100, 30}, false},
		{"right beyond width", BoundingBox{10, 10, 150, 30}, false},
		{"lower at height", BoundingBox{10, 10, 50, 100}, false},
		{"left negative", BoundingBox{-1, 10, 50, 30}, false},
		{"upper negative", BoundingBox{10, -1, 50, 30}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.InImage(100, 100); got != tt.want {
				t.Errorf("InImage(100, 100) for %v: got %v, want %v", tt.box, got, tt.want)
			}
		})
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	tests := []struct {
		name string
		box  BoundingBox
		want bool
	}{
		{"has area", BoundingBox{10, 10, 50, 30}, false},
		{"single pixel", BoundingBox{10, 10, 11, 11}, false},
		{"zero width", BoundingBox{10, 10, 10, 30}, true},
		{"zero height", BoundingBox{10, 10, 50, 10}, true},
		{"zero area", BoundingBox{10, 10, 10, 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Empty(); got != tt.want {
				t.Errorf("Empty for %v: got %v, want %v", tt.box, got, tt.want)
			}
		})
	}
}

func TestRegionBounds_CornersInSamePixel(t *testing.T) {
	// Corners that truncate to the same pixel column and row leave no area
	// to crop.
	r := Region{Points: [2]Point{{10.2, 10.3}, {10.9, 10.8}}}
	if b := r.Bounds(); !b.Empty() {
		t.Errorf("Bounds %v should be empty", b)
	}
}

func TestBoundingBoxSize(t *testing.T) {
	b := BoundingBox{Left: 10, Upper: 10, Right: 50, Lower: 30}
	if b.Width() != 40 || b.Height() != 20 {
		t.Errorf("size: got %dx%d, want 40x20", b.Width(), b.Height())
	}
}

func TestBoundingBoxString(t *testing.T) {
	b := BoundingBox{Left: 1, Upper: 2, Right: 3, Lower: 4}
	if got := b.String(); got != "(1,2)(3,4)" {
		t.Errorf("String: got %q, want (1,2)(3,4)", got)
	}
}
