package solex

import(
	"fmt"
	"image"

	"github.com/abworrall/solex-geometry/pkg/emath"
	"github.com/abworrall/solex-geometry/pkg/geodesy"
)

// A diskFill is the set of bright pixels connected to the luminal
// center; its bounding box gives us a rough solar disk.
type diskFill struct {
	LuminalCenter image.Point     // The 'centre of mass' of the bright pixels
	Bounds        image.Rectangle // Inclusive box around the filled pixels
	N             int             // How many pixels got filled
}

func (df *diskFill)Grow(p image.Point) {
	if df.N == 0 {
		df.Bounds.Min = p
		df.Bounds.Max = p
	} else {
		df.Bounds = GrowRectangle(df.Bounds, p)
	}
	df.N++
}

func (df diskFill)Disk() geodesy.SolarDisk {
	return geodesy.SolarDisk{
		CenterX:   float64(df.Bounds.Min.X + df.Bounds.Max.X) / 2,
		CenterY:   float64(df.Bounds.Min.Y + df.Bounds.Max.Y) / 2,
		SemiAxisA: float64(df.Bounds.Dx() + 1) / 2,
		SemiAxisB: float64(df.Bounds.Dy() + 1) / 2,
	}
}

// FindSolarDisk makes a rough guess at the solar disk, for frames
// where no fitted ellipse was supplied. It finds the centroid of the
// bright pixels, assumes that is on the disk, and then floodfills out
// until it hits dark sky. Anything brighter than `threshold` (as a
// fraction of the grid's range) counts as disk.
func FindSolarDisk(g emath.FloatGrid, threshold float64) (geodesy.SolarDisk, error) {
	min, max := g.MinMax()
	if g.Dx() == 0 || g.Dy() == 0 || max <= min {
		return geodesy.SolarDisk{}, fmt.Errorf("FindSolarDisk: grid is blank")
	}
	thresh := min + threshold * (max - min)
	bright := func(p image.Point) bool { return g.Get(p.X, p.Y) > thresh }

	df := diskFill{}
	if !df.computeLuminalCenter(g, thresh) || !bright(df.LuminalCenter) {
		return geodesy.SolarDisk{}, fmt.Errorf("FindSolarDisk: no bright pixels at the luminal center")
	}

	w, h := g.Dx(), g.Dy()
	seen := make([]bool, w*h)

	p := image.Point{}
	toVisit := []image.Point{df.LuminalCenter}
	for len(toVisit) > 0 {
		p, toVisit = toVisit[0], toVisit[1:]

		if seen[p.Y*w + p.X] {
			continue
		}
		seen[p.Y*w + p.X] = true

		// Dark sky; this is the edge of the disk
		if !bright(p) {
			continue
		}

		df.Grow(p)

		if p.X > 0 && !seen[p.Y*w + p.X-1] {
			toVisit = append(toVisit, image.Point{p.X-1, p.Y})
		}
		if p.Y > 0 && !seen[(p.Y-1)*w + p.X] {
			toVisit = append(toVisit, image.Point{p.X, p.Y-1})
		}
		if p.X < w-1 && !seen[p.Y*w + p.X+1] {
			toVisit = append(toVisit, image.Point{p.X+1, p.Y})
		}
		if p.Y < h-1 && !seen[(p.Y+1)*w + p.X] {
			toVisit = append(toVisit, image.Point{p.X, p.Y+1})
		}
	}

	return df.Disk(), nil
}

// computeLuminalCenter finds the centroid of all pixels above the
// threshold. Returns false if there weren't any.
func (df *diskFill)computeLuminalCenter(g emath.FloatGrid, thresh float64) bool {
	sumX, sumY, n := 0,0,0
	for y:=0; y<g.Dy(); y++ {
		for x:=0; x<g.Dx(); x++ {
			if g.Get(x,y) > thresh {
				sumX += x
				sumY += y
				n++
			}
		}
	}
	if n == 0 {
		return false
	}

	df.LuminalCenter = image.Point{sumX/n, sumY/n}
	return true
}

func GrowRectangle(r image.Rectangle, p image.Point) image.Rectangle {
	if p.X < r.Min.X {
		r.Min.X = p.X
	} else if p.X > r.Max.X {
		r.Max.X = p.X
	}

	if p.Y < r.Min.Y {
		r.Min.Y = p.Y
	} else if p.Y > r.Max.Y {
		r.Max.Y = p.Y
	}

	return r
}
