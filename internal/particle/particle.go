// Package particle is a small particle engine for short-lived burst effects.
// Positions and velocities are in virtual playfield units.
package particle

import (
	"math"
	"sync"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a single point of a burst.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity
	AX, AY      float64 // Constant acceleration (gravity)
	Size        float64 // Diameter in virtual units
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for color curve progress)
	Colors      ColorCurve
}

// newParticle takes a particle from the pool and initializes it.
func newParticle(x, y, vx, vy, size, lifetime float64, cfg *Config) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.AX = cfg.GravityX
	p.AY = cfg.GravityY
	p.Size = size
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Colors = cfg.Colors
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the engine.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Progress returns how far through its life the particle is, in [0, 1].
func (p *Particle) Progress() float64 {
	if p.MaxLifetime <= 0 {
		return 1
	}
	return math.Min(1, math.Max(0, 1-p.Lifetime/p.MaxLifetime))
}

// Color returns the particle's current color and alpha.
func (p *Particle) Color() Stop {
	return p.Colors.At(p.Progress())
}

// update advances the particle. Returns true once it has expired.
func (p *Particle) update(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	p.VX += p.AX * dt
	p.VY += p.AY * dt
	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}
