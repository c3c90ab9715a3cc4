package fribtrace

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Width is measured at half of the prominence below the maximum.
const widthRelHeight = 0.5

// findPeaks runs the constrained local maximum search over a baseline
// corrected trace.
//
// Every local maximum is measured first (amplitude, prominence, width) and
// rejected when it fails the threshold, prominence or max width cut. The
// survivors are then thinned greedily: in descending amplitude order (ties
// go to the smaller centroid) a peak is dropped when its centroid is closer
// than the separation to an already accepted one. The result is sorted by
// centroid.
func findPeaks(corrected []float64, raw []float64, params FribParameters) []Peak {
	candidates := make([]Peak, 0)
	for _, idx := range localMaxima(corrected) {
		amplitude := corrected[idx]
		if amplitude < params.PeakThreshold {
			continue
		}
		prominence, leftBase, rightBase := peakProminence(corrected, idx)
		if prominence < params.PeakProminence {
			continue
		}
		left, right := peakWidthBounds(corrected, idx, prominence, leftBase, rightBase)
		if right-left > params.PeakMaxWidth {
			continue
		}
		centroid, integral := weightedCentroid(corrected, left, right)
		candidates = append(candidates, Peak{
			Centroid:             centroid,
			Amplitude:            amplitude,
			UncorrectedAmplitude: raw[idx],
			PositiveInflection:   left,
			NegativeInflection:   right,
			Integral:             integral,
		})
	}
	return suppressClosePeaks(candidates, params.PeakSeparation)
}

// localMaxima returns the indices of the samples larger than both
// neighbours. A flat top counts once, at the middle of the plateau. The
// first and last samples are never maxima.
func localMaxima(x []float64) []int {
	maxima := make([]int, 0)
	iMax := len(x) - 1
	i := 1
	for i < iMax {
		if x[i-1] < x[i] {
			ahead := i + 1
			for ahead < iMax && x[ahead] == x[i] {
				ahead++
			}
			if x[ahead] < x[i] {
				left := i
				right := ahead - 1
				maxima = append(maxima, (left+right)/2)
				i = ahead
			}
		}
		i++
	}
	return maxima
}

// peakProminence walks away from the peak on both sides until a higher
// sample or the trace edge and keeps the lowest point of each side. The
// prominence is measured against the higher of the two.
func peakProminence(x []float64, peak int) (float64, int, int) {
	height := x[peak]

	leftBase := peak
	leftMin := height
	for i := peak; i >= 0 && x[i] <= height; i-- {
		if x[i] < leftMin {
			leftMin = x[i]
			leftBase = i
		}
	}

	rightBase := peak
	rightMin := height
	for i := peak; i < len(x) && x[i] <= height; i++ {
		if x[i] < rightMin {
			rightMin = x[i]
			rightBase = i
		}
	}

	return height - math.Max(leftMin, rightMin), leftBase, rightBase
}

// peakWidthBounds returns the interpolated positions where the trace crosses
// the width height on each side of the peak, bounded by the prominence
// bases.
func peakWidthBounds(x []float64, peak int, prominence float64, leftBase int, rightBase int) (float64, float64) {
	height := x[peak] - prominence*widthRelHeight

	i := peak
	for leftBase < i && height < x[i] {
		i--
	}
	left := float64(i)
	if x[i] < height {
		left += (height - x[i]) / (x[i+1] - x[i])
	}

	i = peak
	for i < rightBase && height < x[i] {
		i++
	}
	right := float64(i)
	if x[i] < height {
		right -= (height - x[i]) / (x[i-1] - x[i])
	}
	return left, right
}

// weightedCentroid computes the amplitude weighted mean position and the
// integral of the samples inside [left, right]. Negative samples do not
// pull the centroid.
func weightedCentroid(x []float64, left float64, right float64) (float64, float64) {
	first := int(math.Ceil(left))
	last := int(math.Floor(right))
	if first < 0 {
		first = 0
	}
	if last > len(x)-1 {
		last = len(x) - 1
	}

	window := x[first : last+1]
	positions := make([]float64, len(window))
	weights := make([]float64, len(window))
	for i, value := range window {
		positions[i] = float64(first + i)
		weights[i] = math.Max(value, 0)
	}

	integral := floats.Sum(window)
	total := floats.Sum(weights)
	if total == 0 {
		return (left + right) / 2, integral
	}
	return floats.Dot(positions, weights) / total, integral
}

func suppressClosePeaks(candidates []Peak, separation float64) []Peak {
	order := make([]Peak, len(candidates))
	copy(order, candidates)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Amplitude != order[j].Amplitude {
			return order[i].Amplitude > order[j].Amplitude
		}
		return order[i].Centroid < order[j].Centroid
	})

	accepted := make([]Peak, 0, len(order))
	for _, candidate := range order {
		tooClose := false
		for _, peak := range accepted {
			if math.Abs(candidate.Centroid-peak.Centroid) < separation {
				tooClose = true
				break
			}
		}
		if !tooClose {
			accepted = append(accepted, candidate)
		}
	}

	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].Centroid < accepted[j].Centroid
	})
	return accepted
}
