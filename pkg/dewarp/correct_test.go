package dewarp

import (
	"math"
	"testing"

	"github.com/abworrall/solex-geometry/pkg/emath"
)

// A frame where each row holds its own row index, plus a little per-column texture
func testFrame(w, h int) emath.FloatGrid {
	g := emath.NewFloatGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, float64(100*y+x%3))
		}
	}
	return g
}

func TestPolynomialYCorrection(t *testing.T) {
	p := Polynomial{A: 0.001, B: -0.2, C: 30}
	got := p.YCorrection(10, 64)
	want := -0.001*100 + 0.2*10 - 30 + 32
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("YCorrection = %v, want %v", got, want)
	}
	if math.Abs(p.At(10)+got-32) > 1e-12 {
		t.Errorf("At(x) + YCorrection(x) should be height/2")
	}
}

func TestCorrect_LineOnMiddleRowIsIdentity(t *testing.T) {
	for _, h := range []int{8, 9} {
		in := testFrame(7, h)
		p := Polynomial{C: float64(h) / 2}
		out := Correct(in, p)
		for y := 0; y < h; y++ {
			for x := 0; x < 7; x++ {
				if out.Get(x, y) != in.Get(x, y) {
					t.Fatalf("h=%d: out(%d,%d) = %v, want %v", h, x, y, out.Get(x, y), in.Get(x, y))
				}
			}
		}
	}
}

func TestCorrect_ZeroPolynomialShiftsByHalfHeight(t *testing.T) {
	in := testFrame(5, 10)
	out := Correct(in, Polynomial{})

	// Source row is y - 5; everything above row 5 clamps to row 0
	for y := 0; y < 10; y++ {
		srcY := y - 5
		if srcY < 0 {
			srcY = 0
		}
		for x := 0; x < 5; x++ {
			if out.Get(x, y) != in.Get(x, srcY) {
				t.Fatalf("out(%d,%d) = %v, want in(%d,%d) = %v", x, y, out.Get(x, y), x, srcY, in.Get(x, srcY))
			}
		}
	}
}

func TestCorrect_WholeRowShift(t *testing.T) {
	in := testFrame(6, 10)
	// Line sits one row above the middle, so everything moves down by one
	out := Correct(in, Polynomial{C: 4})
	for y := 0; y < 10; y++ {
		srcY := y - 1
		if srcY < 0 {
			srcY = 0
		}
		for x := 0; x < 6; x++ {
			if out.Get(x, y) != in.Get(x, srcY) {
				t.Fatalf("out(%d,%d) = %v, want %v", x, y, out.Get(x, y), in.Get(x, srcY))
			}
		}
	}
}

func TestCorrect_HalfRowShiftAverages(t *testing.T) {
	in := testFrame(4, 10)
	out := Correct(in, Polynomial{C: 5.5})
	// source row is y + 0.5
	for y := 0; y < 9; y++ {
		want := (in.Get(1, y) + in.Get(1, y+1)) / 2
		if math.Abs(out.Get(1, y)-want) > 1e-9 {
			t.Errorf("out(1,%d) = %v, want %v", y, out.Get(1, y), want)
		}
	}
	// Last row borrows from below the frame, which clamps to the last row
	if out.Get(1, 9) != in.Get(1, 9) {
		t.Errorf("out(1,9) = %v, want clamped %v", out.Get(1, 9), in.Get(1, 9))
	}
}

func TestCorrect_CurvedLineIsFlattened(t *testing.T) {
	w, h := 41, 60
	p := Polynomial{A: 0.01, B: -0.4, C: 25}

	// Draw a bright line along the polynomial
	in := emath.NewFloatGrid(w, h)
	for x := 0; x < w; x++ {
		y := p.At(float64(x))
		in.Set(x, int(math.Round(y)), 1000)
	}

	out := Correct(in, p)

	// The line is whole-pixel only where the polynomial is integral; check it
	// lands near the middle row on every column.
	for x := 0; x < w; x++ {
		best, bestY := -1.0, -1
		for y := 0; y < h; y++ {
			if v := out.Get(x, y); v > best {
				best, bestY = v, y
			}
		}
		if bestY < h/2-1 || bestY > h/2+1 {
			t.Errorf("column %d: line at row %d, want about %d", x, bestY, h/2)
		}
	}
}

func TestCorrect_DoesNotTouchInput(t *testing.T) {
	in := testFrame(5, 6)
	before := in.Values()
	Correct(in, Polynomial{A: 0.3, B: 1, C: -2})
	after := in.Values()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}

func TestCorrect_Deterministic(t *testing.T) {
	in := testFrame(33, 47)
	p := Polynomial{A: 0.0123, B: -0.37, C: 19.3}

	saved := Workers
	defer func() { Workers = saved }()

	Workers = 1
	serial := Correct(in, p)
	Workers = 8
	parallel := Correct(in, p)
	again := Correct(in, p)

	s, pv, a := serial.Values(), parallel.Values(), again.Values()
	for i := range s {
		if s[i] != pv[i] || s[i] != a[i] {
			t.Fatalf("value %d differs: %v / %v / %v", i, s[i], pv[i], a[i])
		}
	}
}

func TestCorrect_NaNPropagates(t *testing.T) {
	in := testFrame(4, 4)
	out := Correct(in, Polynomial{A: math.NaN()})
	for _, v := range out.Values() {
		if !math.IsNaN(v) {
			t.Fatalf("got %v, want NaN", v)
		}
	}
}

func TestCorrectY(t *testing.T) {
	p := Polynomial{B: 0.5, C: 3}
	// Line passes through row 3+0.5*4 = 5 at x=4; it should map to the middle row
	if got := CorrectY(p, 20, 4, 5); math.Abs(got-10) > 1e-12 {
		t.Errorf("CorrectY = %v, want 10", got)
	}
}

func TestCorrectRestricted(t *testing.T) {
	in := testFrame(5, 10)

	// Move everything down by 2 rows: rows 0,1 borrow from above the frame
	out, first := CorrectRestricted(in, Polynomial{C: 3})
	if first != 2 {
		t.Errorf("first row = %d, want 2", first)
	}
	if out.Dy() != 8 || out.Dx() != 5 {
		t.Fatalf("restricted size = %dx%d, want 5x8", out.Dx(), out.Dy())
	}
	for y := 0; y < out.Dy(); y++ {
		if out.Get(0, y) != in.Get(0, y) {
			t.Errorf("row %d = %v, want %v", y, out.Get(0, y), in.Get(0, y))
		}
	}

	// A steep tilt means no row is entirely inside the frame
	out, _ = CorrectRestricted(in, Polynomial{B: 5, C: 5})
	if out.Dy() != 0 {
		t.Errorf("steep tilt kept %d rows, want 0", out.Dy())
	}

	// Identity keeps everything
	out, first = CorrectRestricted(in, Polynomial{C: 5})
	if first != 0 || out.Dy() != 10 {
		t.Errorf("identity restricted = first %d, %d rows; want 0, 10", first, out.Dy())
	}
}
