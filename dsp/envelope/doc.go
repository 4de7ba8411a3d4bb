// Package envelope provides one-pole envelope followers updated at a fixed
// control rate.
//
// A [Follower] smooths a scalar that is observed once per update tick, such
// as a per-block RMS level. Its coefficient is derived from a time constant
// tau and the update rate:
//
//	alpha = 1 - exp(-1 / (rate * tau))
//
// In [Average] mode the value always moves by alpha*(v - current). In
// [MaxHold] mode it jumps to any higher input immediately and decays toward
// lower inputs with the same coefficient. A fresh follower adopts its first
// input verbatim.
package envelope
