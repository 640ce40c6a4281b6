package ephem

import (
	"math"
	"testing"
	"time"

	"github.com/abworrall/solex-geometry/pkg/emath"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		when time.Time
		want float64
	}{
		{time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2460310.5},
		{time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC), 2460311.25},
		// Timezones are folded into UTC first
		{time.Date(2000, 1, 1, 13, 0, 0, 0, time.FixedZone("CET", 3600)), 2451545.0},
	}
	for _, tt := range tests {
		if got := JulianDate(tt.when); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("JulianDate(%s) = %f, want %f", tt.when, got, tt.want)
		}
	}
}

func TestCarringtonRotation(t *testing.T) {
	if got := CarringtonRotation(2451545.0); got != 1958 {
		t.Errorf("CarringtonRotation(J2000) = %d, want 1958", got)
	}
	if got := CarringtonRotation(carringtonBaseJD); got != 1 {
		t.Errorf("CarringtonRotation(base) = %d, want 1", got)
	}
}

// B0 and P swing through their extremes at roughly the same dates each year
func TestCompute_Extremes(t *testing.T) {
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 12, 0, 0, 0, time.UTC) }

	tests := []struct {
		name  string
		when  time.Time
		b0    float64
		p     float64
		b0Tol float64
		pTol  float64
	}{
		{"B0 min", day(time.March, 6), -7.25, 0, 0.1, 360},
		{"B0 max", day(time.September, 8), 7.25, 0, 0.1, 360},
		{"P min", day(time.April, 6), 0, -26.3, 360, 0.3},
		{"P max", day(time.October, 10), 0, 26.3, 360, 0.3},
		{"B0 zero, early June", day(time.June, 6), 0, 0, 0.3, 360},
	}
	for _, tt := range tests {
		sp := Compute(tt.when)
		if got := emath.Rad2Deg(sp.B0); math.Abs(got-tt.b0) > tt.b0Tol {
			t.Errorf("%s: B0 = %.3f, want %.3f", tt.name, got, tt.b0)
		}
		if got := emath.Rad2Deg(sp.P); math.Abs(got-tt.p) > tt.pTol {
			t.Errorf("%s: P = %.3f, want %.3f", tt.name, got, tt.p)
		}
		if sp.L0 < 0 || sp.L0 >= 2*math.Pi {
			t.Errorf("%s: L0 = %f, out of range", tt.name, sp.L0)
		}
	}
}

func TestCompute_Orientation(t *testing.T) {
	sp := Compute(time.Date(2024, 4, 8, 18, 0, 0, 0, time.UTC))
	o := sp.Orientation()
	if o.P != sp.P || o.B0 != sp.B0 {
		t.Errorf("Orientation() = %s, from %s", o, sp)
	}
}

func TestPositiveAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{1, 1},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := positiveAngle(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("positiveAngle(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
