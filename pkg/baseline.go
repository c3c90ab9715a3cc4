package fribtrace

import (
	"math"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// baselineClipRadius is the largest window distance used when clipping the
// window levels. Pulses up to about twice the window length are removed.
const baselineClipRadius = 2

// estimateBaseline splits the samples in ceil(n/windowScale) contiguous
// windows, takes a low percentile of every window, clips the levels lifted
// by pulses (clipWindowLevels) and linearly interpolates them between window
// centres. Beyond the first and last centre the baseline is kept constant.
func estimateBaseline(samples []float64, windowScale float64, percentile float64) []float64 {
	n := len(samples)
	baseline := make([]float64, n)
	if n == 0 {
		return baseline
	}

	nWindows := int(math.Ceil(float64(n) / windowScale))
	if nWindows < 1 {
		nWindows = 1
	}
	if nWindows > n {
		nWindows = n
	}

	centres := make([]float64, nWindows)
	levels := make([]float64, nWindows)
	window := make([]float64, 0, n/nWindows+1)
	for w := 0; w < nWindows; w++ {
		start := w * n / nWindows
		end := (w + 1) * n / nWindows
		window = append(window[:0], samples[start:end]...)
		slices.Sort(window)
		levels[w] = stat.Quantile(percentile/100.0, stat.Empirical, window, nil)
		centres[w] = float64(start+end-1) / 2.0
	}
	levels = clipWindowLevels(centres, levels, baselineClipRadius)

	k := 0
	for i := range baseline {
		x := float64(i)
		switch {
		case x <= centres[0]:
			baseline[i] = levels[0]
		case x >= centres[nWindows-1]:
			baseline[i] = levels[nWindows-1]
		default:
			for centres[k+1] < x {
				k++
			}
			frac := (x - centres[k]) / (centres[k+1] - centres[k])
			baseline[i] = levels[k] + frac*(levels[k+1]-levels[k])
		}
	}
	return baseline
}

// clipWindowLevels lowers every level to the chord joining the levels r
// windows away on each side, for r = 1..radius. A pulse wider than one
// window raises the low percentile of the windows it covers; the chord of
// windows outside the pulse does not see it. Straight drifts are left as
// they are.
func clipWindowLevels(centres []float64, levels []float64, radius int) []float64 {
	clipped := make([]float64, len(levels))
	copy(clipped, levels)
	previous := make([]float64, len(levels))
	for r := 1; r <= radius; r++ {
		copy(previous, clipped)
		for w := r; w < len(levels)-r; w++ {
			frac := (centres[w] - centres[w-r]) / (centres[w+r] - centres[w-r])
			chord := previous[w-r] + frac*(previous[w+r]-previous[w-r])
			clipped[w] = math.Min(previous[w], chord)
		}
	}
	return clipped
}

// removeBaseline returns the corrected samples and the baseline used.
func removeBaseline(samples []float64, windowScale float64, percentile float64) ([]float64, []float64) {
	baseline := estimateBaseline(samples, windowScale, percentile)
	corrected := make([]float64, len(samples))
	floats.SubTo(corrected, samples, baseline)
	return corrected, baseline
}
