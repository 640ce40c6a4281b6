package solex

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"

	"github.com/abworrall/solex-geometry/pkg/emath"
)

// LoadFilesAndDirs loads frames (.tif, .png) and config (.yaml) from
// the args, recursing into directories. Other files are skipped.
func (r *Run)LoadFilesAndDirs(args ...string) (error) {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			contents, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				if err := r.LoadFilesAndDirs(filepath.Join(arg, content.Name())); err != nil {
					return fmt.Errorf("load %s: %v", arg, err)
				}
			}

		default:
			if err := r.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %v", arg, err)
			}
		}
	}

	return nil
}

func (r *Run)loadFile(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {

	case ".tif", ".tiff":
		f, err := loadFrame(filename, tiff.Decode)
		if err != nil {
			return fmt.Errorf("Loading %s as TIFF failed: %v", filename, err)
		}
		r.AddFrame(f)

	case ".png":
		f, err := loadFrame(filename, png.Decode)
		if err != nil {
			return fmt.Errorf("Loading %s as PNG failed: %v", filename, err)
		}
		r.AddFrame(f)

	case ".yaml", ".yml":
		cfg, err := loadConfig(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as config YAML failed: %v", filename, err)
		}
		r.Config = cfg
		log.Printf("Loaded base configuration from %s\n", filename)
	}

	return nil
}

func loadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	return newConfigFromYaml(contents)
}

type decodeFunc func(r io.Reader) (image.Image, error)

func loadFrame(filename string, decode decodeFunc) (Frame, error) {
	f := Frame{LoadFilename: filename}

	// The capture time is nice to have (it lets us look up P & B0), but
	// most PNGs, and plenty of TIFFs, won't carry any EXIF.
	if reader, err := os.Open(filename); err != nil {
		return f, fmt.Errorf("open+r exif '%s': %v", filename, err)
	} else {
		if ex, err := exif.Decode(reader); err == nil {
			if t, err := ex.DateTime(); err == nil {
				f.CapturedAt = t
			}
		}
		reader.Close()
	}

	// Re-open the file, now for the image data
	reader, err := os.Open(filename)
	if err != nil {
		return f, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	img, err := decode(reader)
	if err != nil {
		return f, fmt.Errorf("decoding '%s': %v", filename, err)
	}

	f.Raw = emath.NewFloatGridFromImage(img)
	f.Rectified = f.Raw
	return f, nil
}
