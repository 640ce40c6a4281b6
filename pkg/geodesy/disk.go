package geodesy

import(
	"fmt"
	"math"
)

// DiskTolerance is how far past the fitted radius (as a multiple) a
// point can be and still count as being on the disk.
const DiskTolerance = 1.01

// A Point is a position in image pixel coordinates (y axis points down).
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point)String() string { return fmt.Sprintf("(%.1f,%.1f)", p.X, p.Y) }

func (p Point)DistanceTo(q Point) float64 {
	return math.Hypot(p.X - q.X, p.Y - q.Y)
}

// A SolarDisk is the ellipse fitted to the edge of the sun in the
// image. We treat it as a circle, with the average of the two
// semi-axes as the radius.
type SolarDisk struct {
	CenterX   float64 `yaml:"centerx"`
	CenterY   float64 `yaml:"centery"`
	SemiAxisA float64 `yaml:"semiaxisa"`
	SemiAxisB float64 `yaml:"semiaxisb"`
}

func NewCircularDisk(cx, cy, r float64) SolarDisk {
	return SolarDisk{CenterX:cx, CenterY:cy, SemiAxisA:r, SemiAxisB:r}
}

func (d SolarDisk)Radius() float64 { return (d.SemiAxisA + d.SemiAxisB) / 2 }
func (d SolarDisk)Center() Point   { return Point{d.CenterX, d.CenterY} }
func (d SolarDisk)IsZero() bool    { return d.Radius() == 0 }

func (d SolarDisk)String() string {
	return fmt.Sprintf("Disk[center%s, r=%.1f]", d.Center(), d.Radius())
}

// Contains says whether the point is on the disk, allowing a bit of
// slack for a slightly-off ellipse fit.
func (d SolarDisk)Contains(p Point) bool {
	return p.DistanceTo(d.Center()) <= d.Radius() * DiskTolerance
}

// Normalize returns the offset of p from the disk center, in units of solar radii.
func (d SolarDisk)Normalize(p Point) (float64, float64) {
	r := d.Radius()
	return (p.X - d.CenterX) / r, (p.Y - d.CenterY) / r
}

// hemisphereZ is the depth of a point on the near hemisphere of a unit
// sphere. Points a bit outside the disk get pinned to the limb (z=0).
func hemisphereZ(x, y float64) float64 {
	return math.Sqrt(math.Max(0, 1 - x*x - y*y))
}

// AngularDistance is the great circle angle (radians) between two
// points on the disk, as seen face-on (i.e. ignoring P and B0).
func (d SolarDisk)AngularDistance(p1, p2 Point) float64 {
	x1, y1 := d.Normalize(p1)
	x2, y2 := d.Normalize(p2)
	dot := x1*x2 + y1*y2 + hemisphereZ(x1,y1)*hemisphereZ(x2,y2)
	return math.Acos(math.Max(-1, math.Min(1, dot)))
}

// PlanarDistance is the straight line distance between two points,
// in solar radii. Used for things off the disk (prominences etc).
func (d SolarDisk)PlanarDistance(p1, p2 Point) float64 {
	return p1.DistanceTo(p2) / d.Radius()
}
