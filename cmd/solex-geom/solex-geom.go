package main

import(
	"flag"
	"log"

	"github.com/abworrall/solex-geometry/pkg/solex"
)

var(
	fVerbosity int
	fObservedAt string
	fUseExifTime bool
	fNorthUp bool
	fRestricted bool
	fCurveSamples int
	fWriteHDR bool
	fOutputPrefix string
	fTonemapper string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fObservedAt, "time", "", "observation time (RFC3339), to look up P and B0")
	flag.BoolVar(&fUseExifTime, "exiftime", false, "take the observation time from each frame's EXIF")
	flag.BoolVar(&fNorthUp, "northup", false, "rotate the output so solar north is up")
	flag.BoolVar(&fRestricted, "restricted", false, "only keep rows that don't need any edge clamping")
	flag.IntVar(&fCurveSamples, "samples", 0, "points per geodesic curve (0 means use the config)")
	flag.BoolVar(&fWriteHDR, "hdr", false, "also write the rectified frame as a Radiance .hdr")
	flag.StringVar(&fOutputPrefix, "o", "", "prefix for output filenames")
	flag.StringVar(&fTonemapper, "tonemapper", "", "also write tonemapped PNGs ('all', or one of "+solex.ListTonemappers()+")")
	flag.Parse()

	log.Printf("solex-geom starting\n")
}

func main() {
	run := solex.NewRun()
	if err := run.LoadFilesAndDirs(flag.Args()...); err != nil {
		log.Fatal(err)
	}

	// Flags override whatever came from a config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":         run.Config.Verbosity = fVerbosity
		case "time":      run.Config.ObservedAt = fObservedAt
		case "exiftime":  run.Config.UseExifTime = fUseExifTime
		case "northup":   run.Config.NorthUp = fNorthUp
		case "restricted":run.Config.Restricted = fRestricted
		case "samples":   run.Config.CurveSamples = fCurveSamples
		case "hdr":       run.Config.WriteHDR = fWriteHDR
		case "o":         run.Config.OutputPrefix = fOutputPrefix
		case "tonemapper":run.Config.Tonemapper = fTonemapper
		}
	})

	if run.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", run.Config.AsYaml())
	}

	if err := run.Process(); err != nil {
		log.Fatal(err)
	}
}
