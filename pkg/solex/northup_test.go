package solex

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/solex-geometry/pkg/emath"
	"github.com/abworrall/solex-geometry/pkg/geodesy"
)

// After the north-up rotation, every pixel should land on the same
// heliographic point as before, with P taken out of the orientation.
func TestNorthUpTransform_PreservesHeliographicPosition(t *testing.T) {
	before := geodesy.NewSphere(geodesy.NewCircularDisk(300, 250, 200), geodesy.Orientation{P: emath.Deg2Rad(-23.5), B0: emath.Deg2Rad(4.1)})
	after := before
	after.Orientation.P = 0

	m := NewNorthUpTransform(before).ToMatrix()

	for _, p := range []geodesy.Point{{X: 300, Y: 250}, {X: 300, Y: 100}, {X: 420, Y: 310}, {X: 180, Y: 200}, {X: 350, Y: 430}} {
		x, y := m.Apply(p.X, p.Y)
		q := geodesy.Point{X: x, Y: y}

		v1 := before.ApplyInverseRotation(before.ImageToSphere(p))
		v2 := after.ApplyInverseRotation(after.ImageToSphere(q))
		if r3.Norm(r3.Sub(v1, v2)) > 1e-9 {
			t.Errorf("%s -> %s: heliographic %v != %v", p, q, v1, v2)
		}
	}
}

func gaussianBlob(w, h int, cx, cy, sigma float64) emath.FloatGrid {
	g := emath.NewFloatGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d2 := (float64(x)-cx)*(float64(x)-cx) + (float64(y)-cy)*(float64(y)-cy)
			g.Set(x, y, 1000*math.Exp(-d2/(2*sigma*sigma)))
		}
	}
	return g
}

func TestNorthUpTransform_XFormGrid(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
	}{
		{"no rotation", 0},
		{"small tilt", 7.2},
		{"large tilt", -26.3},
	}
	for _, tt := range tests {
		// A blob centered on the rotation center looks the same after rotation
		src := gaussianBlob(41, 41, 20, 20, 5)
		xform := NorthUpTransform{RotationCenterX: 20, RotationCenterY: 20, RotateByDeg: tt.deg}
		out := xform.XFormGrid(src)

		if out.Dx() != src.Dx() || out.Dy() != src.Dy() {
			t.Fatalf("%s: size changed to %dx%d", tt.name, out.Dx(), out.Dy())
		}
		for y := 10; y <= 30; y++ {
			for x := 10; x <= 30; x++ {
				if got, want := out.Get(x, y), src.Get(x, y); math.Abs(got-want) > 20 {
					t.Errorf("%s: [%d,%d] = %.1f, want %.1f", tt.name, x, y, got, want)
				}
			}
		}
	}
}

func TestFrameNorthUp(t *testing.T) {
	f := Frame{
		Rectified: gaussianBlob(41, 41, 20, 20, 5),
		Sphere:    geodesy.NewSphere(geodesy.NewCircularDisk(20, 20, 15), geodesy.Orientation{P: 0.3, B0: -0.1}),
	}
	xform := f.NorthUp()
	if math.Abs(xform.RotateByDeg-emath.Rad2Deg(0.3)) > 1e-12 {
		t.Errorf("rotated by %f", xform.RotateByDeg)
	}
	if f.Orientation.P != 0 || f.Orientation.B0 != -0.1 {
		t.Errorf("orientation after north-up: %s", f.Orientation)
	}
	if f.Disk.CenterX != 20 || f.Disk.CenterY != 20 {
		t.Errorf("disk moved: %s", f.Disk)
	}
}
