// Package effect tracks transient visual artifacts and their expiry timers.
// It has no gameplay consequences of its own.
package effect

// Lifetimes, in seconds.
const (
	RingLifetime  = 0.2
	TrailWindow   = 0.3
	BurstLifetime = 0.4 // Matches the particle lifetime of a burst
)

// MaxBursts caps live burst records; the oldest are evicted first.
const MaxBursts = 64

// Ring is an expanding-looking explosion outline in physical coordinates.
type Ring struct {
	X, Y   float64
	Radius float64
	Age    float64
}

// Fade returns the remaining opacity in [0, 1].
func (r Ring) Fade() float64 {
	return fade(r.Age, RingLifetime)
}

// Burst records a particle burst handed to the particle engine, in virtual
// coordinates, until its particles have run out.
type Burst struct {
	X, Y float64
	Age  float64
}

// TrailSample is a past pointer position in physical coordinates.
type TrailSample struct {
	X, Y float64
	Age  float64
}

// Fade returns the remaining opacity in [0, 1].
func (s TrailSample) Fade() float64 {
	return fade(s.Age, TrailWindow)
}

func fade(age, lifetime float64) float64 {
	return min(1, max(0, 1-age/lifetime))
}

// Registry owns rings, burst records and trail samples.
type Registry struct {
	Rings  []Ring
	Bursts []Burst
	Trail  []TrailSample
}

// AddRing queues a new ring with age 0.
func (r *Registry) AddRing(x, y, radius float64) {
	r.Rings = append(r.Rings, Ring{X: x, Y: y, Radius: radius})
}

// AgeRings advances every ring and drops those that reached RingLifetime.
func (r *Registry) AgeRings(dt float64) {
	kept := r.Rings[:0]
	for _, ring := range r.Rings {
		ring.Age += dt
		if ring.Age < RingLifetime {
			kept = append(kept, ring)
		}
	}
	r.Rings = kept
}

// AddBurst records a burst, evicting the oldest when MaxBursts is reached.
func (r *Registry) AddBurst(x, y float64) {
	if len(r.Bursts) >= MaxBursts {
		n := copy(r.Bursts, r.Bursts[len(r.Bursts)-MaxBursts+1:])
		r.Bursts = r.Bursts[:n]
	}
	r.Bursts = append(r.Bursts, Burst{X: x, Y: y})
}

// AgeBursts advances every burst record and drops finished ones.
func (r *Registry) AgeBursts(dt float64) {
	kept := r.Bursts[:0]
	for _, b := range r.Bursts {
		b.Age += dt
		if b.Age < BurstLifetime {
			kept = append(kept, b)
		}
	}
	r.Bursts = kept
}

// AddTrailSample appends the current pointer position with age 0.
func (r *Registry) AddTrailSample(x, y float64) {
	r.Trail = append(r.Trail, TrailSample{X: x, Y: y})
}

// AgeTrail advances every sample and drops those older than TrailWindow.
func (r *Registry) AgeTrail(dt float64) {
	kept := r.Trail[:0]
	for _, s := range r.Trail {
		s.Age += dt
		if s.Age < TrailWindow {
			kept = append(kept, s)
		}
	}
	r.Trail = kept
}

// Clear drops every effect.
func (r *Registry) Clear() {
	r.Rings = r.Rings[:0]
	r.Bursts = r.Bursts[:0]
	r.Trail = r.Trail[:0]
}
