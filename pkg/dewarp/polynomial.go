package dewarp

import "fmt"

// A Polynomial describes how a spectral line curves across the frame:
// at column x the line sits at row a*x^2 + b*x + c.
type Polynomial struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
}

func (p Polynomial)String() string {
	return fmt.Sprintf("Poly[%.6g*x^2 + %.6g*x + %.6g]", p.A, p.B, p.C)
}

func (p Polynomial)At(x float64) float64 {
	return p.A*x*x + p.B*x + p.C
}

// YCorrection is how far (in rows) column x must move so that the
// line ends up on the middle row of a frame of the given height.
func (p Polynomial)YCorrection(x float64, height int) float64 {
	return -p.A*x*x - p.B*x - p.C + float64(height) / 2.0
}
