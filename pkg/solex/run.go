package solex

import(
	"fmt"
	"log"
	"sort"

	"github.com/abworrall/solex-geometry/pkg/dewarp"
	"github.com/abworrall/solex-geometry/pkg/ephem"
	"github.com/abworrall/solex-geometry/pkg/geodesy"
	"github.com/abworrall/solex-geometry/pkg/measure"
)

// A Run holds the config and the frames loaded for one invocation, and
// takes each frame through rectification, orientation, measurement
// and output.
type Run struct {
	Config
	Frames []Frame
}

func NewRun() Run {
	return Run{
		Frames: []Frame{},
		Config: NewConfig(),
	}
}

func (r Run)String() string {
	str := fmt.Sprintf("Run %s [\n", r.Polynomial)
	for _, f := range r.Frames {
		str += fmt.Sprintf("  %s\n", f)
	}
	return str + "]\n"
}

func (r *Run)AddFrame(f Frame) {
	r.Frames = append(r.Frames, f)
	sort.Slice(r.Frames, func(i, j int) bool { return r.Frames[i].LoadFilename < r.Frames[j].LoadFilename })
}

// Rectify runs the distortion correction on the frame. With a
// restricted config, only rows with a full set of source pixels
// are kept.
func (f *Frame)Rectify(cfg Config) {
	if cfg.Restricted {
		f.Rectified, f.FirstRow = dewarp.CorrectRestricted(f.Raw, cfg.Polynomial)
	} else {
		f.Rectified, f.FirstRow = dewarp.Correct(f.Raw, cfg.Polynomial), 0
	}
	if cfg.Verbosity > 0 {
		log.Printf("%s: rectified with %s, %d rows kept from row %d\n", f.Filename(), cfg.Polynomial,
			f.Rectified.Dy(), f.FirstRow)
	}
}

// Locate works out where the disk is in the rectified frame, and how
// the sun is tilted.
func (f *Frame)Locate(cfg Config) error {
	f.Sphere.CurveSamples = cfg.CurveSamples

	if cfg.Disk.IsZero() {
		disk, err := FindSolarDisk(f.Rectified, cfg.DiskThreshold)
		if err != nil {
			return fmt.Errorf("%s: %v", f.Filename(), err)
		}
		f.Disk = disk
		log.Printf("%s: no disk configured, guessed %s\n", f.Filename(), disk)
	} else {
		f.Disk = cfg.Disk
	}

	o, err := f.orientation(cfg)
	if err != nil {
		return fmt.Errorf("%s: %v", f.Filename(), err)
	}
	f.Sphere.Orientation = o
	return nil
}

// orientation takes P & B0 from the ephemeris if we know when the
// frame was taken, else from the config.
func (f *Frame)orientation(cfg Config) (geodesy.Orientation, error) {
	when, err := cfg.ObservationTime()
	if err != nil {
		return geodesy.Orientation{}, err
	}
	if when.IsZero() && cfg.UseExifTime {
		when = f.CapturedAt
	}
	if when.IsZero() {
		return cfg.Orientation, nil
	}

	sp := ephem.Compute(when)
	if cfg.Verbosity > 0 {
		log.Printf("%s: %s at %s\n", f.Filename(), sp, when)
	}
	return sp.Orientation(), nil
}

// Measure replays the scripted measurements against the frame.
func (f *Frame)Measure(cfg Config) *measure.Session {
	sess := measure.NewSession(f.Sphere)
	for _, sm := range cfg.Measurements {
		for _, pt := range sm.Points {
			if !sess.Click(pt) && cfg.Verbosity > 0 {
				log.Printf("%s: measurement '%s' ignored %s (mixes on- and off-disk points)\n", f.Filename(), sm.Name, pt)
			}
		}
		sess.Escape()
	}
	for i, m := range sess.Measurements() {
		log.Printf("%s: measurement %d %s: %s\n", f.Filename(), i, m, m.Label(f.Disk))
	}
	return sess
}

// Process takes every frame through the pipeline, writing the outputs
// as it goes.
func (r *Run)Process() error {
	if len(r.Frames) == 0 {
		return fmt.Errorf("no frames loaded")
	}

	for i := range r.Frames {
		f := &r.Frames[i]

		if r.Verbosity > 1 {
			log.Printf("%s: raw %s\n%s", f.Filename(), f.Raw.Stats(), f.Raw.Histogram())
		}

		f.Rectify(r.Config)
		if f.Rectified.Dy() == 0 {
			log.Printf("%s: no rows survive rectification, skipping\n", f.Filename())
			continue
		}
		if err := f.Locate(r.Config); err != nil {
			return err
		}
		if r.NorthUp {
			xform := f.NorthUp()
			if r.Verbosity > 0 {
				log.Printf("%s: %s\n", f.Filename(), xform)
			}
		}
		log.Printf("%s\n", f)

		sess := f.Measure(r.Config)

		overlay := f.DrawOverlay(r.Config, sess, measure.NewViewport())
		if err := WritePNG(overlay, r.OutputFilename(f.Name(), "geom.png")); err != nil {
			return err
		}
		if r.WriteHDR {
			if err := f.WriteHDR(r.OutputFilename(f.Name(), "rectified.hdr")); err != nil {
				return err
			}
		}
		if err := r.tonemap(f); err != nil {
			return err
		}
		if r.Verbosity > 1 {
			f.Rectified.ToImg(f.Filename(), r.OutputFilename(f.Name(), "rectified-debug.png"))
		}
	}

	return nil
}

func (r *Run)tonemap(f *Frame) error {
	names := []string{}
	switch r.Tonemapper {
	case "":    return nil
	case "all": names = Tonemappers
	default:    names = []string{r.Tonemapper}
	}

	for _, name := range names {
		log.Printf("%s: tonemapping with %s\n", f.Filename(), name)
		if err := f.WriteTonemapped(name, r.OutputFilename(f.Name(), "tmo-"+name+".png")); err != nil {
			return fmt.Errorf("%s: %v", f.Filename(), err)
		}
	}
	return nil
}
