package geodesy

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/solex-geometry/pkg/emath"
)

// DefaultCurveSamples is how many points GeodesicCurve generates
// along an arc (t = 0, 0.02, ..., 1).
const DefaultCurveSamples = 51

// Orientation is how the sun appears to us at the time of
// observation. Both angles are in radians.
type Orientation struct {
	P  float64 `yaml:"p"`  // position angle of solar north, from image "up"
	B0 float64 `yaml:"b0"` // heliographic latitude of the disk center
}

func (o Orientation)String() string {
	return fmt.Sprintf("Orient[P=%.2fdeg, B0=%.2fdeg]", emath.Rad2Deg(o.P), emath.Rad2Deg(o.B0))
}

// InverseRotation maps observed sphere coords into body-fixed ones:
// undo P (about the line of sight), then B0 (about the x axis).
func (o Orientation)InverseRotation() emath.Mat3 {
	// Compose back to front - rightmost is applied first
	return emath.RotateX(o.B0).Mult(emath.RotateZ(o.P))
}

// SolarRotation is the reverse of InverseRotation.
func (o Orientation)SolarRotation() emath.Mat3 {
	return emath.RotateZ(-o.P).Mult(emath.RotateX(-o.B0))
}

// A Sphere projects between image pixels and the visible hemisphere of
// the sun.
type Sphere struct {
	Disk         SolarDisk
	Orientation
	CurveSamples int  // points per GeodesicCurve; 0 means DefaultCurveSamples
}

func NewSphere(d SolarDisk, o Orientation) Sphere {
	return Sphere{Disk:d, Orientation:o, CurveSamples:DefaultCurveSamples}
}

func (s Sphere)String() string {
	return fmt.Sprintf("Sphere[%s, %s, %d samples]", s.Disk, s.Orientation, s.samples())
}

func (s Sphere)samples() int {
	if s.CurveSamples < 2 {
		return DefaultCurveSamples
	}
	return s.CurveSamples
}

// ImageToSphere lifts an image point onto the near side of the unit
// sphere. Points off the disk are flattened onto the limb.
func (s Sphere)ImageToSphere(p Point) r3.Vec {
	x, y := s.Disk.Normalize(p)
	return r3.Vec{X:x, Y:y, Z:hemisphereZ(x, y)}
}

// SphereToImage projects back onto the image plane; it only makes
// sense for Visible points.
func (s Sphere)SphereToImage(v r3.Vec) Point {
	r := s.Disk.Radius()
	return Point{s.Disk.CenterX + v.X*r, s.Disk.CenterY + v.Y*r}
}

// Visible says whether a point (in observed coords) is on the side facing us.
func Visible(v r3.Vec) bool { return v.Z > 0 }

func (s Sphere)ApplyInverseRotation(v r3.Vec) r3.Vec { return s.InverseRotation().ApplyR3(v) }
func (s Sphere)ApplySolarRotation(v r3.Vec) r3.Vec   { return s.SolarRotation().ApplyR3(v) }

// Slerp walks along the great circle from p1 (t=0) to p2 (t=1). If the
// points are (nearly) coincident or opposite, there's no well defined
// arc, and we just return p1.
func Slerp(p1, p2 r3.Vec, t float64) r3.Vec {
	theta := math.Acos(emath.Clamp(r3.Dot(p1, p2), -1, 1))
	sinTheta := math.Sin(theta)
	if sinTheta < 1e-6 {
		return p1
	}
	a := math.Sin((1-t) * theta) / sinTheta
	b := math.Sin(t * theta) / sinTheta
	return r3.Add(r3.Scale(a, p1), r3.Scale(b, p2))
}

// GeodesicCurve returns the great circle arc between two image points,
// as a polyline in image coords. The arc is computed in body-fixed
// coords and then put back into the observed orientation, so it bends
// the way a "straight line" over the tilted sun really does. Samples
// that end up round the back of the sun are dropped.
func (s Sphere)GeodesicCurve(start, end Point) []Point {
	inv := s.InverseRotation()
	fwd := s.SolarRotation()

	p1 := inv.ApplyR3(s.ImageToSphere(start))
	p2 := inv.ApplyR3(s.ImageToSphere(end))

	n := s.samples()
	pts := make([]Point, 0, n)
	for i:=0; i<n; i++ {
		t := float64(i) / float64(n-1)
		observed := fwd.ApplyR3(Slerp(p1, p2, t))
		if Visible(observed) {
			pts = append(pts, s.SphereToImage(observed))
		}
	}
	return pts
}

// StraightLine is the off-disk counterpart of GeodesicCurve.
func StraightLine(start, end Point) []Point {
	return []Point{start, end}
}
