package solex

import(
	"fmt"
	"log"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/solex-geometry/pkg/dewarp"
	"github.com/abworrall/solex-geometry/pkg/geodesy"
)

type Config struct {
	Verbosity           int

	Polynomial          dewarp.Polynomial   // The spectral line fit, from the spectroheliograph reduction
	Restricted          bool                // Crop to rows with a full set of source pixels

	Disk                geodesy.SolarDisk   // Fitted disk; if zero, we guess one with FindSolarDisk
	DiskThreshold       float64             // Brightness [0,1] that counts as "on the disk", for the guess

	Orientation         geodesy.Orientation // P & B0, in radians
	ObservedAt          string              // RFC3339; if set, P & B0 come from the ephemeris
	UseExifTime         bool                // Take the observation time from the frame's EXIF
	NorthUp             bool                // Rotate the output so solar north is up
	CurveSamples        int

	OutputPrefix        string
	WriteHDR            bool
	Tonemapper          string              // Also write tonemapped PNGs; "all" for every operator
	StretchLow          float64             // Percentiles [0,100] that get stretched to black & white in PNGs
	StretchHigh         float64

	Measurements        []ScriptedMeasurement
}

// A ScriptedMeasurement is a list of clicks (in image coords) to replay
// through a measurement session; the path is completed at the end.
type ScriptedMeasurement struct {
	Name    string
	Points  []geodesy.Point
}

func NewConfig() Config {
	return Config{
		DiskThreshold:      0.25,
		CurveSamples:       geodesy.DefaultCurveSamples,
		OutputPrefix:       "solex",
		StretchLow:         0.5,
		StretchHigh:        99.5,
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Printf("Can't marshal config yaml: %v\n", err)
		return ""
	}
	return string(b)
}

// ObservationTime parses ObservedAt; the zero time if it's unset.
func (c Config)ObservationTime() (time.Time, error) {
	if c.ObservedAt == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, c.ObservedAt)
	if err != nil {
		return t, fmt.Errorf("observedat '%s': %v", c.ObservedAt, err)
	}
	return t, nil
}

func (c Config)OutputFilename(frame, suffix string) string {
	return fmt.Sprintf("%s-%s-%s", c.OutputPrefix, frame, suffix)
}
