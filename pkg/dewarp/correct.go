package dewarp

import(
	"runtime"
	"sync"

	"github.com/abworrall/solex-geometry/pkg/emath"
)

// Workers is how many goroutines Correct fans rows out to. Each row
// is written by exactly one worker, so the output doesn't depend on
// scheduling.
var Workers = runtime.NumCPU()

// Correct straightens the spectral line described by `p`. The frame
// is a vertical spectrum, with each spectral line running roughly
// horizontally; after correction the line we care about is flat and
// sits on the middle row.
//
// Every output pixel (x,y) is resampled (bilinear) from the input at
// (x, y - YCorrection(x)). Samples off the frame take the nearest edge
// value. The input grid is not touched.
func Correct(in emath.FloatGrid, p Polynomial) emath.FloatGrid {
	out := in.NewFromThis()
	forEachRow(in.Dy(), func(y int) {
		row := out.Row(y)
		for x:=0; x<in.Dx(); x++ {
			row[x] = in.Bilinear(float64(x), float64(y) - p.YCorrection(float64(x), in.Dy()))
		}
	})
	return out
}

// CorrectY maps a row in the uncorrected frame to where it ends up
// in the corrected frame.
func CorrectY(p Polynomial, height int, x, y float64) float64 {
	return y + p.YCorrection(x, height)
}

// CorrectRestricted is Correct, but then drops the rows at the top and
// bottom that had to borrow pixels from beyond the edge of the input.
// It returns the cropped grid, and the row in the full corrected frame
// that is now row 0. If no row is clean, the grid has no rows.
func CorrectRestricted(in emath.FloatGrid, p Polynomial) (emath.FloatGrid, int) {
	out := Correct(in, p)
	h := in.Dy()
	maxSrc := float64(h - 1)

	rowIsClean := func(y int) bool {
		for x:=0; x<in.Dx(); x++ {
			sy := float64(y) - p.YCorrection(float64(x), h)
			if !(sy >= 0 && sy <= maxSrc) {
				return false
			}
		}
		return true
	}

	minY := -1
	for y:=0; y<h; y++ {
		if rowIsClean(y) {
			minY = y
			break
		}
	}
	if minY < 0 {
		return out.SubRows(0, 0), 0
	}

	maxY := minY
	for y:=h-1; y>minY; y-- {
		if rowIsClean(y) {
			maxY = y
			break
		}
	}

	return out.SubRows(minY, maxY+1), minY
}

// forEachRow runs f over rows [0,h) using a pool of goroutines.
func forEachRow(h int, f func(y int)) {
	nWorkers := Workers
	if nWorkers < 1 { nWorkers = 1 }
	if nWorkers > h { nWorkers = h }

	var wg sync.WaitGroup
	jobsChan := make(chan int, h)

	for i:=0; i<nWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range jobsChan {
				f(y)
			}
		}()
	}

	for y:=0; y<h; y++ {
		jobsChan<- y
	}
	close(jobsChan)
	wg.Wait()
}
