package particle

import "math"

// Rand is the random source used to scatter burst particles.
type Rand interface {
	Float64() float64
}

// Engine owns every live particle.
type Engine struct {
	rng       Rand
	particles []*Particle
}

// NewEngine creates an empty engine.
func NewEngine(rng Rand) *Engine {
	return &Engine{rng: rng}
}

// Emit spawns cfg.Amount particles at (x, y).
func (e *Engine) Emit(x, y float64, cfg Config) {
	spread := cfg.Spread * math.Pi / 180
	for i := 0; i < cfg.Amount; i++ {
		angle := cfg.Direction + (e.rng.Float64()-0.5)*spread
		speed := cfg.Velocity * (1 - e.rng.Float64()*cfg.VelocityRandomness)
		size := cfg.Size * (1 - e.rng.Float64()*cfg.SizeRandomness)

		vx := math.Cos(angle) * speed
		vy := math.Sin(angle) * speed
		e.particles = append(e.particles, newParticle(x, y, vx, vy, size, cfg.Lifetime, &cfg))
	}
}

// Update advances all particles and releases expired ones.
func (e *Engine) Update(dt float64) {
	kept := e.particles[:0] // reuse backing array
	for _, p := range e.particles {
		if p.update(dt) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(e.particles[len(kept):])
	e.particles = kept
}

// Clear releases every particle.
func (e *Engine) Clear() {
	for _, p := range e.particles {
		p.Release()
	}
	clear(e.particles)
	e.particles = e.particles[:0]
}

// Len returns the number of live particles.
func (e *Engine) Len() int {
	return len(e.particles)
}

// Each calls fn for every live particle. fn must not retain p.
func (e *Engine) Each(fn func(p *Particle)) {
	for _, p := range e.particles {
		fn(p)
	}
}
