package solex

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/abworrall/solex-geometry/pkg/emath"
	"github.com/abworrall/solex-geometry/pkg/geodesy"
)

// A Frame holds one spectroheliograph scan loaded from an input file,
// and everything we work out about it.
type Frame struct {
	LoadFilename  string
	CapturedAt    time.Time          // From EXIF, if the file had any

	Raw           emath.FloatGrid    // As loaded
	Rectified     emath.FloatGrid    // After the distortion correction
	FirstRow      int                // Row of Raw that Rectified starts at (non-zero if restricted)

	geodesy.Sphere                   // Where the sun is in Rectified, and how it's tilted
}

func (f Frame)String() string {
	str := fmt.Sprintf("%s: %dx%d", f.Filename(), f.Raw.Dx(), f.Raw.Dy())
	if !f.CapturedAt.IsZero() {
		str += fmt.Sprintf(" @%s", f.CapturedAt.UTC().Format(time.RFC3339))
	}
	return str + ", " + f.Sphere.String()
}

func (f Frame)Filename() string {
	return filepath.Base(f.LoadFilename)
}

// Name is the filename without its extension, for naming outputs.
func (f Frame)Name() string {
	return strings.TrimSuffix(f.Filename(), filepath.Ext(f.LoadFilename))
}
