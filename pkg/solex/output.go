package solex

import(
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/solex-geometry/pkg/emath"
	"github.com/abworrall/solex-geometry/pkg/geodesy"
	"github.com/abworrall/solex-geometry/pkg/measure"
)

// StretchedImage is the rectified frame as 16 bit gray, with the
// configured percentiles stretched to black & white.
func (f *Frame)StretchedImage(cfg Config) *image.Gray16 {
	lo, hi := f.Rectified.FindMaxMinAtPercentile(cfg.StretchLow, cfg.StretchHigh)
	if cfg.Verbosity > 1 {
		log.Printf("%s: stretching [%.1f, %.1f] to full range\n", f.Filename(), lo, hi)
	}
	return f.Rectified.ToGray16(lo, hi)
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// MeasurementColor picks a distinct color for the i'th measurement.
func MeasurementColor(i int) color.Color {
	return colorful.Hsv(float64((i * 67) % 360), 0.85, 1.0).Clamped()
}

// DrawOverlay renders the frame, with the limb, the completed
// measurements and their distance labels, and the path in progress
// (dashed).
func (f *Frame)DrawOverlay(cfg Config, sess *measure.Session, vp measure.Viewport) image.Image {
	dc := gg.NewContextForImage(f.StretchedImage(cfg))

	dc.SetRGBA(1, 1, 0, 0.5)
	dc.SetLineWidth(1)
	dc.DrawCircle(f.Disk.CenterX, f.Disk.CenterY, f.Disk.Radius())
	dc.Stroke()

	strokePolyline := func(pts []geodesy.Point) {
		for i, p := range pts {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		dc.Stroke()
	}

	for i, m := range sess.Measurements() {
		dc.SetColor(MeasurementColor(i))
		dc.SetLineWidth(2)
		for _, seg := range m.Segments(sess.Sphere) {
			strokePolyline(seg)
		}
		anchor := vp.PaneToImage(m.LabelAnchor(vp))
		dc.DrawString(m.Label(sess.Sphere.Disk), anchor.X, anchor.Y)
	}

	if cur := sess.Current(); cur != nil && cur.Len() > 1 {
		dc.SetColor(MeasurementColor(len(sess.Measurements())))
		dc.SetDash(6, 4)
		for _, seg := range cur.Segments(sess.Sphere) {
			strokePolyline(seg)
		}
		dc.SetDash()
	}

	return dc.Image()
}

// hdrGrid lets a FloatGrid be written out by the HDR codecs; values
// are scaled so a 16 bit white is 1.0.
type hdrGrid struct {
	grid emath.FloatGrid
}

// Implement image.Image
func (g hdrGrid)ColorModel() color.Model { return hdrcolor.RGBModel }
func (g hdrGrid)Bounds() image.Rectangle { return image.Rect(0, 0, g.grid.Dx(), g.grid.Dy()) }
func (g hdrGrid)At(x, y int) color.Color { return g.HDRAt(x,y) }

// Implement hdr.Image
func (g hdrGrid)HDRAt(x, y int) hdrcolor.Color {
	v := g.grid.Get(x, y) / 0xFFFF
	return hdrcolor.RGB{R: v, G: v, B: v}
}
func (g hdrGrid)Size() int { return g.grid.Dx() * g.grid.Dy() }

// WriteHDR outputs the rectified frame, unstretched, as a Radiance HDR file.
func (f *Frame)WriteHDR(filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("Frame.WriteHDR, open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		err := rgbe.Encode(writer, hdrGrid{f.Rectified})
		if err != nil {
			log.Printf("Frame.WriteHDR, encoding RGBE file: %v\n", err)
		}
		return err
	}
}
