package measure

import(
	"github.com/abworrall/solex-geometry/pkg/geodesy"
)

// A Session turns a stream of clicks and key presses (already mapped
// into image coords) into measurement paths. It is owned by one event
// loop; it is not safe for concurrent use.
type Session struct {
	Sphere      geodesy.Sphere

	current    *Path
	completed []*Path
}

func NewSession(s geodesy.Sphere) *Session {
	return &Session{Sphere: s}
}

// Current is the path being drawn, or nil.
func (s *Session)Current() *Path { return s.current }

// Measurements are the completed paths, oldest first.
func (s *Session)Measurements() []*Path {
	return append([]*Path(nil), s.completed...)
}

func (s *Session)disk() geodesy.SolarDisk { return s.Sphere.Disk }

// Click places a point. The first click starts a path and fixes its
// mode; later clicks that would mix disk & off-disk points are ignored.
// Returns whether the point was added.
func (s *Session)Click(pt geodesy.Point) bool {
	if s.current == nil {
		s.current = &Path{}
	}
	return s.current.add(s.disk(), pt)
}

// DoubleClick completes the path if it has at least two points (the
// double-clicked point itself isn't added); otherwise it's a Click.
// Returns whether it changed anything.
func (s *Session)DoubleClick(pt geodesy.Point) bool {
	if s.current != nil && s.current.Len() > 1 {
		if !s.current.accepts(s.disk(), pt) {
			return false
		}
		s.finish()
		return true
	}
	return s.Click(pt)
}

// Enter completes a path of two or more points.
func (s *Session)Enter() bool {
	if s.current == nil || s.current.Len() < 2 {
		return false
	}
	s.finish()
	return true
}

// Escape completes a path of two or more points, and throws away a
// path that is too short to measure anything.
func (s *Session)Escape() {
	if s.Enter() {
		return
	}
	s.current = nil
}

// Clear throws away all measurements, including the one in progress.
func (s *Session)Clear() {
	s.current = nil
	s.completed = nil
}

func (s *Session)finish() {
	s.current.complete()
	s.completed = append(s.completed, s.current)
	s.current = nil
}

// Preview is the dashed segment from the last point to the mouse.
// It is nil if there is no path, or if the mouse is somewhere that
// the next click would be ignored.
func (s *Session)Preview(mouse geodesy.Point) []geodesy.Point {
	if s.current == nil || s.current.Len() == 0 || !s.current.accepts(s.disk(), mouse) {
		return nil
	}
	last, _ := s.current.Last()
	return s.current.segment(s.Sphere, last, mouse)
}

// LiveDistance is the running distance label for the path in
// progress; empty if there isn't one.
func (s *Session)LiveDistance() string {
	if s.current == nil || s.current.Len() == 0 {
		return ""
	}
	return s.current.Label(s.disk())
}
