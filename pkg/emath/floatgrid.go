package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/codahale/hdrhistogram"
	"github.com/fogleman/gg"
	"github.com/skypies/util/histogram"
	"gonum.org/v1/gonum/stat"
)

// A FloatGrid is a grid of floats, stored row-major. It is how we hold
// a single channel frame (e.g. one spectral line image) while we
// resample it.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

// NewFloatGridFromValues wraps a row-major slice; it panics if the
// slice doesn't hold exactly w*h values.
func NewFloatGridFromValues(w, h int, vals []float64) FloatGrid {
	if len(vals) != w*h {
		panic(fmt.Sprintf("NewFloatGridFromValues: %d values for %dx%d grid", len(vals), w, h))
	}
	g := NewFloatGrid(w, h)
	copy(g.values, vals)
	return g
}

func (g1 *FloatGrid)NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Row(y int) []float64     { return fg.values[fg.stride*y : fg.stride*(y+1)] }

func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

func (g1 *FloatGrid)Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values:make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

// Values returns a copy of the row-major values.
func (fg *FloatGrid)Values() []float64 {
	vals := make([]float64, len(fg.values))
	copy(vals, fg.values)
	return vals
}

// ClampedGet is Get, but coords outside the grid are moved to the nearest edge.
func (fg *FloatGrid)ClampedGet(x, y int) float64 {
	if x < 0 {
		x = 0
	} else if x >= fg.Dx() {
		x = fg.Dx()-1
	}
	if y < 0 {
		y = 0
	} else if y >= fg.Dy() {
		y = fg.Dy()-1
	}
	return fg.Get(x, y)
}

// Bilinear interpolates the value at a fractional position, from the
// four surrounding grid points. Neighbours off the edge of the grid
// take the value of the nearest edge point (see ClampedGet).
func (fg *FloatGrid)Bilinear(x, y float64) float64 {
	x1 := int(math.Floor(x))
	y1 := int(math.Floor(y))
	x2 := x1 + 1
	y2 := y1 + 1

	p1 := (float64(x2) - x) * fg.ClampedGet(x1, y1) + (x - float64(x1)) * fg.ClampedGet(x2, y1)
	p2 := (float64(x2) - x) * fg.ClampedGet(x1, y2) + (x - float64(x1)) * fg.ClampedGet(x2, y2)
	return (float64(y2) - y) * p1 + (y - float64(y1)) * p2
}

// SubRows returns a new grid holding rows [y0, y1).
func (fg *FloatGrid)SubRows(y0, y1 int) FloatGrid {
	if y1 < y0 {
		y1 = y0
	}
	g := NewFloatGrid(fg.Dx(), y1-y0)
	copy(g.values, fg.values[fg.stride*y0 : fg.stride*y1])
	return g
}

func (fg *FloatGrid)MinMax() (float64, float64) {
	min := math.MaxFloat64
	max := -1.0  * min

	for i:=0 ; i<len(fg.values) ; i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	return min, max
}

func (fg *FloatGrid)Stats() string {
	min, max := fg.MinMax()
	mean, std := stat.MeanStdDev(fg.values, nil)
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}, mean %.2f, sd %.2f]", fg.Dx(), fg.Dy(), min, max, mean, std)
}

// Histogram buckets the values into 64 buckets across [min,max], for
// eyeballing in verbose logs.
func (fg *FloatGrid)Histogram() string {
	min, max := fg.MinMax()
	h := histogram.Histogram{NumBuckets:64, ValMin:0, ValMax:64}
	if max <= min {
		return fmt.Sprintf("%v", &h)
	}
	for _, v := range fg.values {
		if math.IsNaN(v) { continue }
		h.Add(histogram.ScalarVal(int(63.0 * (v - min) / (max - min))))
	}
	return fmt.Sprintf("%v", &h)
}

// FindMaxMinAtPercentile returns the values found at the two
// percentiles (range [0,100]). NaNs are ignored. Values are bucketed
// at 3 significant figures, which is plenty for a display stretch.
func (fg *FloatGrid)FindMaxMinAtPercentile(minPrct, maxPrct float64) (float64, float64) {
	min, max := fg.MinMax()
	if max <= min {
		return min, max
	}

	// hdrhistogram wants positive ints, so map [min,max] into [1, 1e6]
	scale := 1e6 / (max - min)
	h := hdrhistogram.New(1, 1000001, 3)
	for _, v := range fg.values {
		if math.IsNaN(v) { continue }
		h.RecordValue(1 + int64((v - min) * scale))
	}

	lo := float64(h.ValueAtQuantile(minPrct) - 1) / scale + min
	hi := float64(h.ValueAtQuantile(maxPrct) - 1) / scale + min
	if lo < min { lo = min }
	if hi > max { hi = max }
	return lo, hi
}

// ToGray16 maps the grid into a 16 bit grayscale image, linearly
// stretching [lo,hi] to [0,0xFFFF] and clipping outside that range.
func (fg *FloatGrid)ToGray16(lo, hi float64) *image.Gray16 {
	img := image.NewGray16(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	span := hi - lo
	if span <= 0 { span = 1 }

	for y:=0; y<fg.Dy(); y++ {
		for x:=0; x<fg.Dx(); x++ {
			v := (fg.Get(x,y) - lo) / span
			if v < 0 || math.IsNaN(v) { v = 0 }
			if v > 1 { v = 1 }
			img.SetGray16(x, y, color.Gray16{uint16(v * 0xFFFF)})
		}
	}
	return img
}

// NewFloatGridFromImage takes the gray value [0,0xFFFF] of every pixel.
func NewFloatGridFromImage(img image.Image) FloatGrid {
	b := img.Bounds()
	fg := NewFloatGrid(b.Dx(), b.Dy())
	for y:=b.Min.Y; y<b.Max.Y; y++ {
		for x:=b.Min.X; x<b.Max.X; x++ {
			fg.Set(x-b.Min.X, y-b.Min.Y, float64(ColToGrayU16(img.At(x,y))))
		}
	}
	return fg
}

// ColToGrayU16 maps a color into a gray value in the range [0, 0xFFFF].
func ColToGrayU16(c color.Color) uint16 {
	r, g, b, _ := c.RGBA() // channel values in range [0, 0xFFFF]
	gray := float64(r) * 0.2989 + float64(g) * 0.5870 + float64(b) * 0.1140
	if gray > 0xFFFF { gray = 0xFFFF }

	return uint16(gray)
}

// ToImg saves a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision
func (fg *FloatGrid)ToImg(title, filename string) error {
	min, max := fg.MinMax()

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			lum := fg.Get(x,y)
			gray := GammaExpand_F64 ((lum - min) / (max - min))
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,1,1)
	dc.DrawString(title, 50, 50)
	return dc.SavePNG(filename)
}
