// Package time provides time-domain level statistics over sample blocks.
package time

import "math"

// RMS returns the root-mean-square of the signal, or 0 for an empty signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal, or 0 for an empty
// signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}

	return peak
}
