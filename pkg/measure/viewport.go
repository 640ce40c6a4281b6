package measure

import(
	"github.com/abworrall/solex-geometry/pkg/emath"
	"github.com/abworrall/solex-geometry/pkg/geodesy"
)

const(
	MinZoom = 0.1
	MaxZoom = 10.0
)

// A Viewport maps between image pixels and the (zoomed) pane that
// displays them. It's a plain value; callers pass the current one in.
type Viewport struct {
	Zoom float64
}

func NewViewport() Viewport { return Viewport{Zoom:1.0} }

func (v Viewport)PaneToImage(p geodesy.Point) geodesy.Point {
	return geodesy.Point{X:p.X / v.Zoom, Y:p.Y / v.Zoom}
}

func (v Viewport)ImageToPane(p geodesy.Point) geodesy.Point {
	return geodesy.Point{X:p.X * v.Zoom, Y:p.Y * v.Zoom}
}

// ZoomBy applies one scroll-wheel step: in by 10% for a positive delta,
// out by 10% otherwise.
func (v Viewport)ZoomBy(deltaY float64) Viewport {
	factor := 0.9
	if deltaY > 0 {
		factor = 1.1
	}
	return Viewport{Zoom: emath.Clamp(v.Zoom * factor, MinZoom, MaxZoom)}
}

// FitZoom picks the zoom that makes the image cover the pane.
func FitZoom(imgW, imgH, paneW, paneH float64) Viewport {
	zx, zy := paneW / imgW, paneH / imgH
	if zx > zy {
		return Viewport{Zoom:zx}
	}
	return Viewport{Zoom:zy}
}
