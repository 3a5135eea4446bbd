package camera

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at origin, got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreen(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	tests := []struct {
		name   string
		wx, wy float32
		sx, sy float32
	}{
		{"origin is screen center", 0, 0, 640, 360},
		{"y up in world is up on screen", 0, 100, 640, 260},
		{"top left corner", -640, 360, 0, 0},
		{"bottom right corner", 640, -360, 1280, 720},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
			if !approx(sx, tt.sx) || !approx(sy, tt.sy) {
				t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.X, cam.Y = 37, -12
	cam.SetZoom(1.7)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !approx(sx, tc.sx) || !approx(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestScreenToNormalized(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	tests := []struct {
		sx, sy float32
		xn, yn float32
	}{
		{0, 0, 0, 0},
		{1280, 720, 1, 1},
		{640, 360, 0.5, 0.5},
		{320, 540, 0.25, 0.75},
	}
	for _, tt := range tests {
		xn, yn := cam.ScreenToNormalized(tt.sx, tt.sy)
		if !approx(xn, tt.xn) || !approx(yn, tt.yn) {
			t.Errorf("ScreenToNormalized(%v, %v) = (%v, %v), want (%v, %v)", tt.sx, tt.sy, xn, yn, tt.xn, tt.yn)
		}
	}

	// Zoomed in 2x, the screen corner is a quarter of the way into the world.
	cam.SetZoom(2)
	xn, yn := cam.ScreenToNormalized(0, 0)
	if !approx(xn, 0.25) || !approx(yn, 0.25) {
		t.Errorf("zoomed corner = (%v, %v), want (0.25, 0.25)", xn, yn)
	}
}

func TestPan(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2)
	cam.Pan(100, 50)

	// Screen right is world +x, screen down is world -y.
	if !approx(cam.X, 50) || !approx(cam.Y, -25) {
		t.Errorf("after pan camera at (%v, %v), want (50, -25)", cam.X, cam.Y)
	}

	cam.Reset()
	if cam.X != 0 || cam.Y != 0 || cam.Zoom != 1 {
		t.Errorf("Reset left camera at (%v, %v) zoom %v", cam.X, cam.Y, cam.Zoom)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %v, got %v", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %v, got %v", cam.MinZoom, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	if !cam.IsVisible(0, 0, 1) {
		t.Error("origin should be visible")
	}
	if cam.IsVisible(700, 0, 10) {
		t.Error("point beyond the right edge should be culled")
	}
	if !cam.IsVisible(645, 0, 10) {
		t.Error("circle overlapping the right edge should be visible")
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.SetZoom(2)
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX != -200 || maxX != 200 || minY != -150 || maxY != 150 {
		t.Errorf("bounds = (%v, %v, %v, %v), want (-200, -150, 200, 150)", minX, minY, maxX, maxY)
	}
}
