package measure

import(
	"fmt"

	"github.com/abworrall/solex-geometry/pkg/geodesy"
)

// Mode says what kind of geometry a path is measured with. It is fixed
// by the first point placed, and never changes.
type Mode int

const(
	DiskMode   Mode = iota // on the disk; great circle arcs over the sphere
	PlanarMode             // off the disk; straight lines in the sky plane
)

func (m Mode)String() string {
	switch m {
	case DiskMode:   return "disk"
	case PlanarMode: return "planar"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ModeFor picks the mode a path starting at p would have.
func ModeFor(d geodesy.SolarDisk, p geodesy.Point) Mode {
	if d.Contains(p) {
		return DiskMode
	}
	return PlanarMode
}

type State int

const(
	Empty State = iota
	InProgress
	Completed
)

func (s State)String() string {
	switch s {
	case Empty:      return "empty"
	case InProgress: return "in-progress"
	case Completed:  return "completed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// A Path is a sequence of points placed by the user. Points are only
// ever appended, and once Completed the path is frozen.
type Path struct {
	points []geodesy.Point
	mode   Mode
	state  State
}

func (p *Path)Mode() Mode   { return p.mode }
func (p *Path)State() State { return p.state }
func (p *Path)Len() int     { return len(p.points) }

func (p *Path)Points() []geodesy.Point {
	return append([]geodesy.Point(nil), p.points...)
}

func (p *Path)Last() (geodesy.Point, bool) {
	if len(p.points) == 0 {
		return geodesy.Point{}, false
	}
	return p.points[len(p.points)-1], true
}

func (p *Path)String() string {
	return fmt.Sprintf("Path[%s, %s, %d pts]", p.state, p.mode, len(p.points))
}

// accepts says whether pt could be added to the path without mixing modes.
func (p *Path)accepts(d geodesy.SolarDisk, pt geodesy.Point) bool {
	switch p.state {
	case Empty:      return true
	case InProgress: return ModeFor(d, pt) == p.mode
	}
	return false
}

func (p *Path)add(d geodesy.SolarDisk, pt geodesy.Point) bool {
	if !p.accepts(d, pt) {
		return false
	}
	if p.state == Empty {
		p.mode = ModeFor(d, pt)
		p.state = InProgress
	}
	p.points = append(p.points, pt)
	return true
}

func (p *Path)complete() { p.state = Completed }

// segment returns the polyline to draw between two points of this path.
func (p *Path)segment(s geodesy.Sphere, from, to geodesy.Point) []geodesy.Point {
	if p.mode == DiskMode {
		return s.GeodesicCurve(from, to)
	}
	return geodesy.StraightLine(from, to)
}

// Segments returns one polyline (image coords) per pair of consecutive points.
func (p *Path)Segments(s geodesy.Sphere) [][]geodesy.Point {
	segs := [][]geodesy.Point{}
	for i:=1; i<len(p.points); i++ {
		segs = append(segs, p.segment(s, p.points[i-1], p.points[i]))
	}
	return segs
}

// SolarRadii is the length of the path; for disk paths it is the sum
// of the great circle angles (radians == solar radii on the surface).
//
// The disk angles are taken face-on, without P/B0, whereas the drawn
// curves do use P/B0.
func (p *Path)SolarRadii(d geodesy.SolarDisk) float64 {
	total := 0.0
	for i:=1; i<len(p.points); i++ {
		if p.mode == DiskMode {
			total += d.AngularDistance(p.points[i-1], p.points[i])
		} else {
			total += d.PlanarDistance(p.points[i-1], p.points[i])
		}
	}
	return total
}

func (p *Path)DistanceKm(d geodesy.SolarDisk) float64 { return geodesy.ToKm(p.SolarRadii(d)) }
func (p *Path)Label(d geodesy.SolarDisk) string       { return geodesy.FormatKm(p.DistanceKm(d)) }

// LabelAnchor is where the distance label goes, in pane coords: just
// up and right of the last point.
func (p *Path)LabelAnchor(v Viewport) geodesy.Point {
	last, _ := p.Last()
	pane := v.ImageToPane(last)
	return geodesy.Point{X:pane.X + 10, Y:pane.Y - 10}
}
