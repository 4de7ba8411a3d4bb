package testutil

import "math"

// ReferenceDFT computes bins 0..n/2 of the forward DFT of x by direct
// summation. It is O(n^2) and meant only as a test oracle.
func ReferenceDFT(x []float64) (re, im []float64) {
	n := len(x)
	bins := n/2 + 1
	re = make([]float64, bins)
	im = make([]float64, bins)
	for k := range bins {
		var sr, si float64
		for i, v := range x {
			angle := -2 * math.Pi * float64(k) * float64(i) / float64(n)
			sr += v * math.Cos(angle)
			si += v * math.Sin(angle)
		}
		re[k] = sr
		im[k] = si
	}
	return re, im
}
