package biquad

import "math"

// Coefficients describes one second-order section with a0 normalized to 1:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// MagnitudeDB returns 20*log10|H| at freqHz for the given sample rate.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	num := polyPower(c.B0, c.B1, c.B2, w)
	den := polyPower(1, c.A1, c.A2, w)
	return 10 * math.Log10(num/den)
}

// polyPower evaluates |p0 + p1 e^-jw + p2 e^-2jw|^2.
func polyPower(p0, p1, p2, w float64) float64 {
	return p0*p0 + p1*p1 + p2*p2 +
		2*(p0*p1+p1*p2)*math.Cos(w) +
		2*p0*p2*math.Cos(2*w)
}
