package biquad

import "fmt"

// stage is one section and its delay line.
type stage struct {
	Coefficients
	s1, s2 float64
}

func (st *stage) run(dst, src []float64) {
	c := st.Coefficients
	s1, s2 := st.s1, st.s2
	for i, x := range src {
		y := c.B0*x + s1
		s1 = c.B1*x - c.A1*y + s2
		s2 = c.B2*x - c.A2*y
		dst[i] = y
	}
	st.s1, st.s2 = s1, s2
}

// Chain is a series of sections with persistent state. It is not safe for
// concurrent use.
type Chain struct {
	stages []stage
}

// NewChain builds a chain at rest from coefficient sets applied in order.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{stages: make([]stage, len(coeffs))}
	for i, k := range coeffs {
		c.stages[i].Coefficients = k
	}
	return c
}

// Cascade joins the sections of several chains into a new chain at rest.
// Nil chains are skipped.
func Cascade(chains ...*Chain) *Chain {
	var coeffs []Coefficients
	for _, ch := range chains {
		if ch == nil {
			continue
		}
		for _, st := range ch.stages {
			coeffs = append(coeffs, st.Coefficients)
		}
	}
	return NewChain(coeffs)
}

// Sections returns the number of second-order sections.
func (c *Chain) Sections() int { return len(c.stages) }

// Filter writes the filtered src to dst and advances the chain state.
// dst may alias src. It panics if the lengths differ.
func (c *Chain) Filter(dst, src []float64) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("biquad: dst length %d, src length %d", len(dst), len(src)))
	}
	if len(c.stages) == 0 {
		copy(dst, src)
		return
	}
	c.stages[0].run(dst, src)
	for i := 1; i < len(c.stages); i++ {
		c.stages[i].run(dst, dst)
	}
}

// MagnitudeDB returns the chain's magnitude response in dB at freqHz.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	var db float64
	for _, st := range c.stages {
		db += st.MagnitudeDB(freqHz, sampleRate)
	}
	return db
}
