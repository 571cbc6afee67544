package sandbox

import (
	"math"
	"testing"
)

func TestTransform_RoundTrip(t *testing.T) {
	tf := fitTransform(Rect{MinX: 0, MinY: 0, W: 1200, H: 800}, 900, 600)
	for _, p := range [][2]float64{{0, 0}, {600, 400}, {1200, 800}, {-33, 917}} {
		sx, sy := tf.ToScreen(p[0], p[1])
		wx, wy := tf.ToWorld(sx, sy)
		if math.Abs(wx-p[0]) > 1e-9 || math.Abs(wy-p[1]) > 1e-9 {
			t.Fatalf("round trip drifted: (%f,%f) -> (%f,%f)", p[0], p[1], wx, wy)
		}
	}
}

func TestTransform_ContentInsideViewport(t *testing.T) {
	tf := fitTransform(Rect{MinX: -100, MinY: 50, W: 400, H: 300}, 800, 500)
	// Corners of the content rect land strictly inside the viewport thanks
	// to the padding.
	for _, p := range [][2]float64{{-100, 50}, {300, 350}} {
		sx, sy := tf.ToScreen(p[0], p[1])
		if sx <= 0 || sx >= 800 || sy <= 0 || sy >= 500 {
			t.Fatalf("content corner (%f,%f) maps outside viewport: (%f,%f)", p[0], p[1], sx, sy)
		}
	}
}

func TestContentBounds_GrowsWithNodes(t *testing.T) {
	s := NewStore()
	base := s.ContentBounds()
	if base != defaultBounds() {
		t.Fatalf("empty store bounds should equal world bounds, got %+v", base)
	}

	s.AddNode(-200, -100)
	s.AddNode(1500, 900)
	grown := s.ContentBounds()
	if grown.MinX != -200 || grown.MinY != -100 {
		t.Fatalf("min corner not expanded: %+v", grown)
	}
	if grown.MinX+grown.W != 1500 || grown.MinY+grown.H != 900 {
		t.Fatalf("max corner not expanded: %+v", grown)
	}
}

func TestPickRadius_ScalesWithZoom(t *testing.T) {
	tf := fitTransform(Rect{MinX: 0, MinY: 0, W: 100, H: 100}, 1000, 1000)
	// ~7x magnification: a 14px pick radius is roughly 2 world units.
	r := tf.PickRadius(14)
	if r <= 0 || r >= 14 {
		t.Fatalf("magnified pick radius should shrink in world units, got %f", r)
	}

	var zero Transform
	if zero.PickRadius(14) != 14 {
		t.Fatal("degenerate transform falls back to the pixel radius")
	}
}
