package solex

import(
	"fmt"
	"image"

	"golang.org/x/image/draw"      // replace by "image/draw" at some point
	"golang.org/x/image/math/f64"  // replace by "image/math/f64" at some point

	"github.com/abworrall/solex-geometry/pkg/emath"
	"github.com/abworrall/solex-geometry/pkg/geodesy"
)

// A NorthUpTransform rotates a frame about the disk center, so that
// the solar rotation axis ends up vertical in the image.
type NorthUpTransform struct {
	RotationCenterX float64
	RotationCenterY float64
	RotateByDeg     float64
}

func (xform NorthUpTransform)String() string {
	return fmt.Sprintf("NorthUp[(%6.2f,%6.2f), %5.2fdeg]", xform.RotationCenterX, xform.RotationCenterY, xform.RotateByDeg)
}

func NewNorthUpTransform(s geodesy.Sphere) NorthUpTransform {
	return NorthUpTransform{
		RotationCenterX: s.Disk.CenterX,
		RotationCenterY: s.Disk.CenterY,
		RotateByDeg:     emath.Rad2Deg(s.Orientation.P),
	}
}

// ToMatrix maps a pixel in the original frame to its place in the
// north-up frame.
func (xform NorthUpTransform)ToMatrix() emath.Aff3 {
	return emath.RotateAbout(xform.RotateByDeg, xform.RotationCenterX, xform.RotationCenterY)
}

// XFormGrid resamples the grid through the transform. The grid goes
// via a 16 bit image so we can use the Catmull-Rom kernel; values are
// mapped back into the grid's original range afterwards.
func (xform NorthUpTransform)XFormGrid(src emath.FloatGrid) emath.FloatGrid {
	lo, hi := src.MinMax()
	srcImg := src.ToGray16(lo, hi)

	// draw puts pixel centers at +0.5, we put them on the integers
	m := emath.Identity().Translate(0.5, 0.5).Mult(xform.ToMatrix()).Translate(-0.5, -0.5)

	dst := image.NewGray16(srcImg.Bounds())
	draw.CatmullRom.Transform(dst, f64.Aff3(m), srcImg, srcImg.Bounds(), draw.Src, nil)

	out := emath.NewFloatGridFromImage(dst)
	for y:=0; y<out.Dy(); y++ {
		row := out.Row(y)
		for x := range row {
			row[x] = lo + (row[x] / 0xFFFF) * (hi - lo)
		}
	}
	return out
}

// NorthUp rotates the rectified frame so solar north is up. The
// frame's orientation is updated to match (P becomes zero); the disk
// center doesn't move.
func (f *Frame)NorthUp() NorthUpTransform {
	xform := NewNorthUpTransform(f.Sphere)
	f.Rectified = xform.XFormGrid(f.Rectified)
	f.Sphere.Orientation.P = 0
	return xform
}
