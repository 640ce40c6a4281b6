// Package ephem works out how the sun is oriented, as seen from the
// earth, at a given moment. Formulas are from Meeus, "Astronomical
// Algorithms" (2nd ed), chapters 22, 25 and 29.
package ephem

import(
	"fmt"
	"math"
	"time"

	"github.com/abworrall/solex-geometry/pkg/emath"
	"github.com/abworrall/solex-geometry/pkg/geodesy"
)

const(
	CarringtonRotationPeriod = 27.2753 // days
	carringtonBaseJD         = 2398167 // start of rotation #1

	inclination              = 7.25    // degrees; solar equator vs. ecliptic
	daysPerCentury           = 36525.0
	j2000                    = 2451545.0
)

// SolarParameters describe the sun's orientation. Angles are radians.
type SolarParameters struct {
	CarringtonRotation int
	B0                 float64  // heliographic latitude of the disk center
	L0                 float64  // heliographic longitude of the disk center, [0, 2pi)
	P                  float64  // position angle of the rotation axis
}

func (sp SolarParameters)String() string {
	return fmt.Sprintf("SolarParams[CR%d, B0=%.2fdeg, L0=%.2fdeg, P=%.2fdeg]", sp.CarringtonRotation,
		emath.Rad2Deg(sp.B0), emath.Rad2Deg(sp.L0), emath.Rad2Deg(sp.P))
}

func (sp SolarParameters)Orientation() geodesy.Orientation {
	return geodesy.Orientation{P:sp.P, B0:sp.B0}
}

// JulianDate for a moment in time (taken as UTC).
func JulianDate(t time.Time) float64 {
	t = t.UTC()
	year, month, day := t.Year(), int(t.Month()), t.Day()

	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	jdn := day + (153*m + 2)/5 + 365*y + y/4 - y/100 + y/400 - 32045

	frac := float64(t.Hour() - 12) / 24.0 +
		float64(t.Minute()) / 1440.0 +
		float64(t.Second()) / 86400.0 +
		float64(t.Nanosecond() / 1e6) / 86400000.0

	return float64(jdn) + frac
}

func CarringtonRotation(jd float64) int {
	return int(math.Floor((jd - carringtonBaseJD) / CarringtonRotationPeriod)) + 1
}

func Compute(t time.Time) SolarParameters {
	return ComputeForJulianDate(JulianDate(t))
}

func ComputeForJulianDate(jd float64) SolarParameters {
	// Ch. 29: sun's rotation, and longitude of the ascending node of the solar equator
	theta := (jd - 2398220) * 360 / 25.38
	k := 73.6667 + 1.3958333 * (jd - 2396758) / daysPerCentury

	// Ch. 25: apparent longitude of the sun
	t := (jd - j2000) / daysPerCentury
	meanLong := 280.46646 + 36000.76983*t + 0.0003032*t*t
	meanAnom := emath.Deg2Rad(357.52911 + 35999.05029*t - 0.0001537*t*t)
	center := (1.914602 - 0.004817*t - 0.000014*t*t) * math.Sin(meanAnom) +
		(0.019993 - 0.000101*t) * math.Sin(2*meanAnom) +
		0.000289 * math.Sin(3*meanAnom)
	trueLong := meanLong + center
	apparentLong := trueLong - 0.00569 - 0.00478 * math.Sin(emath.Deg2Rad(125.04 - 1934.136*t))

	// Ch. 22: obliquity of the ecliptic, with the main nutation terms
	meanObliquity := 23.439291111 - 0.013004167*t - 0.000000164*t*t + 0.000000504*t*t*t
	sunMeanLong := emath.Deg2Rad(280.4665 + 36000.7698*t)
	moonMeanLong := emath.Deg2Rad(218.3165 + 481267.8813*t)
	omega := emath.Deg2Rad(125.04452 - 1934.136261*t + 0.0020708*t*t + t*t*t/450000)
	nutObliquity := 0.002555556 * math.Cos(omega) +
		0.000158333 * math.Cos(2*sunMeanLong) +
		0.000027778 * math.Cos(2*moonMeanLong) -
		0.000025 * math.Cos(2*omega)

	obliquity := emath.Deg2Rad(meanObliquity + nutObliquity)
	lambda := emath.Deg2Rad(apparentLong + nutObliquity)
	incl := emath.Deg2Rad(inclination)

	x := math.Atan(-math.Cos(lambda) * math.Tan(obliquity))
	lk := positiveAngle(emath.Deg2Rad(apparentLong - k))
	y := math.Atan(-math.Cos(lk) * math.Tan(incl))

	// eta has to be in the same quadrant as (lambda - K)
	eta := math.Atan(math.Tan(lk) * math.Cos(incl))
	if math.Abs(math.Mod(lk + math.Pi, 2*math.Pi) - eta) >= math.Pi/2 {
		eta += math.Pi
	}

	return SolarParameters{
		CarringtonRotation: CarringtonRotation(jd),
		B0:                 math.Asin(math.Sin(lk) * math.Sin(incl)),
		L0:                 positiveAngle(eta - emath.Deg2Rad(math.Mod(theta, 360))),
		P:                  x + y,
	}
}

// positiveAngle wraps an angle into [0, 2pi)
func positiveAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2*math.Pi
	}
	return a
}
