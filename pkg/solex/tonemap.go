package solex

import(
	"fmt"

	"github.com/mdouchement/hdr/tmo"
)

var(
	Tonemappers = []string{"drago03", "durand", "icam06", "linear", "reinhard05"}
)

func ListTonemappers() string {
	return fmt.Sprintf("%v", Tonemappers)
}

// SetupTonemapper builds a tonemapping operator over the rectified
// frame. The settings keep the bright disk from blowing out, since
// that's what we are measuring.
func (f *Frame)SetupTonemapper(name string) (tmo.ToneMappingOperator, error) {
	img := hdrGrid{f.Rectified}

	switch name {
	case "drago03":
		op := tmo.NewDefaultDrago03(img)
		op.Bias = 1.0
		return op, nil

	case "durand":
		return tmo.NewDefaultDurand(img), nil

	case "icam06":
		op := tmo.NewDefaultICam06(img)
		op.Contrast    = 0.65
		op.MaxClipping = 0.99999
		return op, nil

	case "linear":
		return tmo.NewLinear(img), nil

	case "reinhard05":
		op := tmo.NewDefaultReinhard05(img)
		op.Chromatic = 0.0 // it's all gray anyway
		op.Light     = 0.005
		return op, nil
	}

	return nil, fmt.Errorf("tonemapper %q not recognized, wanted %s", name, ListTonemappers())
}

// WriteTonemapped writes the rectified frame through the named
// tonemapper into a PNG.
func (f *Frame)WriteTonemapped(name, filename string) error {
	op, err := f.SetupTonemapper(name)
	if err != nil {
		return err
	}
	return WritePNG(op.Perform(), filename)
}
