// Package object holds the gameplay entities that live on the virtual playfield.
package object

// Rand is the random source entities draw their spawn parameters from.
// *math/rand.Rand satisfies it; tests substitute a seeded or scripted source.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// uniform returns a value in [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Field describes the virtual playfield dimensions.
type Field struct {
	Width  float64
	Height float64
}
