package solex

import (
	"image"
	"math"
	"testing"

	"github.com/abworrall/solex-geometry/pkg/emath"
)

// syntheticSun draws a bright disk on a dim background.
func syntheticSun(w, h int, cx, cy, r float64) emath.FloatGrid {
	g := emath.NewFloatGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := 1000.0
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= r {
				v = 40000.0
			}
			g.Set(x, y, v)
		}
	}
	return g
}

func TestFindSolarDisk(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		cx, cy, r float64
	}{
		{"centered", 100, 80, 50, 40, 20},
		{"off center", 200, 200, 70, 120, 45},
		{"touching the top", 100, 100, 50, 30, 30},
	}
	for _, tt := range tests {
		g := syntheticSun(tt.w, tt.h, tt.cx, tt.cy, tt.r)
		d, err := FindSolarDisk(g, 0.25)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if math.Abs(d.CenterX-tt.cx) > 1 || math.Abs(d.CenterY-tt.cy) > 1 {
			t.Errorf("%s: center = (%.1f,%.1f), want (%.1f,%.1f)", tt.name, d.CenterX, d.CenterY, tt.cx, tt.cy)
		}
		if math.Abs(d.Radius()-tt.r) > 1 {
			t.Errorf("%s: radius = %.2f, want %.2f", tt.name, d.Radius(), tt.r)
		}
	}
}

func TestFindSolarDisk_IgnoresDisconnectedGlints(t *testing.T) {
	g := syntheticSun(100, 100, 50, 50, 20)
	g.Set(2, 2, 40000) // a hot pixel, well away from the disk
	d, err := FindSolarDisk(g, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d.Radius()-20) > 1 {
		t.Errorf("radius = %.2f, the glint got included", d.Radius())
	}
}

func TestFindSolarDisk_Blank(t *testing.T) {
	g := emath.NewFloatGrid(10, 10)
	if _, err := FindSolarDisk(g, 0.25); err == nil {
		t.Errorf("found a disk in a blank grid")
	}
}

func TestGrowRectangle(t *testing.T) {
	r := image.Rectangle{image.Point{5, 5}, image.Point{5, 5}}
	r = GrowRectangle(r, image.Point{2, 8})
	r = GrowRectangle(r, image.Point{9, 1})
	want := image.Rectangle{image.Point{2, 1}, image.Point{9, 8}}
	if r != want {
		t.Errorf("got %v, want %v", r, want)
	}
}
