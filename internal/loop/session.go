package loop

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/tomz197/cursor-crisis/internal/audio"
	"github.com/tomz197/cursor-crisis/internal/effect"
	"github.com/tomz197/cursor-crisis/internal/object"
	"github.com/tomz197/cursor-crisis/internal/particle"
	"github.com/tomz197/cursor-crisis/internal/physics"
)

// Particles receives burst requests. *particle.Engine satisfies it.
type Particles interface {
	Emit(x, y float64, cfg particle.Config)
	Clear()
}

// Assets are the read-only collaborators a session is built with.
type Assets struct {
	Variants []object.Variant
	Sounds   audio.Player
}

// Options configures a new Session.
type Options struct {
	Assets
	Rand      object.Rand
	Particles Particles
	Logger    zerolog.Logger
}

// FrameInput is what the driver samples once per frame.
// Pointer coordinates are physical; Detonate and Restart are press edges.
type FrameInput struct {
	PointerX, PointerY   float64
	ViewportW, ViewportH float64
	Detonate             bool
	Restart              bool
}

// Session is the whole simulation state. It is owned by a single frame loop.
type Session struct {
	Popups     []*object.Popup
	Effects    effect.Registry
	SpawnTimer float64
	Score      int
	Health     float64
	Energy     float64

	StartCuePlayed    bool // Survives Reset
	GameOverCuePlayed bool
	Frames            int // Survives Reset

	LastPointerX, LastPointerY float64 // Physical
	PointerVX, PointerVY       float64 // Virtual
	Facing                     float64 // Radians
	IndicatorAlpha             float64
	GlowTimer                  float64 // Seconds of play, drives the cursor glow pulse

	Scaling physics.Scaling

	assets    Assets
	rng       object.Rand
	particles Particles
	grid      *physics.SpatialGrid
	field     object.Field
	logger    zerolog.Logger
}

// NewSession creates a session ready for its first frame.
func NewSession(opts Options) *Session {
	if opts.Sounds == nil {
		opts.Sounds = audio.Silent{}
	}
	s := &Session{
		assets:    opts.Assets,
		rng:       opts.Rand,
		particles: opts.Particles,
		grid:      physics.NewSpatialGrid(VirtualWidth, VirtualHeight, detonationCellSize),
		field:     object.Field{Width: VirtualWidth, Height: VirtualHeight},
		logger:    opts.Logger,
	}
	s.reset()
	return s
}

// GameOver reports whether health has run out.
func (s *Session) GameOver() bool {
	return s.Health <= 0
}

// Reset returns the session to its starting values. The start-cue flag and
// frame counter are kept.
func (s *Session) Reset() {
	s.reset()
	s.logger.Info().Msg("session reset")
}

func (s *Session) reset() {
	clear(s.Popups)
	s.Popups = s.Popups[:0]
	s.Effects.Clear()
	s.SpawnTimer = 0
	s.Score = 0
	s.Health = 1
	s.Energy = 1
	s.GameOverCuePlayed = false
	s.LastPointerX, s.LastPointerY = 0, 0
	s.PointerVX, s.PointerVY = 0, 0
	s.Facing = 0
	s.IndicatorAlpha = 1
	s.GlowTimer = 0
	if s.particles != nil {
		s.particles.Clear()
	}
}

// Advance runs one simulation step of dt seconds.
func (s *Session) Advance(dt float64, in FrameInput) {
	// The viewport may change on any frame, including after game over.
	s.Scaling = physics.ComputeScaling(in.ViewportW, in.ViewportH, VirtualWidth, VirtualHeight)

	s.Frames++
	if !s.StartCuePlayed && s.Frames > StartCueDelayFrames {
		s.StartCuePlayed = true
		s.assets.Sounds.Play(audio.CueStart)
		s.logger.Info().Int("frame", s.Frames).Msg("session started")
	}

	if s.GameOver() {
		if in.Restart {
			s.Reset()
			s.assets.Sounds.Play(audio.CueStart)
		}
		return
	}

	s.Energy = min(1, s.Energy+EnergyRegen*dt)
	s.GlowTimer += dt

	s.Effects.AddTrailSample(in.PointerX, in.PointerY)
	s.Effects.AgeTrail(dt)

	s.trackPointer(dt, in.PointerX, in.PointerY)

	s.PointerVX, s.PointerVY = s.Scaling.ToVirtual(in.PointerX, in.PointerY)

	s.SpawnTimer += dt
	if s.SpawnTimer >= SpawnInterval {
		s.Popups = append(s.Popups, object.NewPopup(s.rng, s.field, len(s.assets.Variants)))
		s.SpawnTimer = 0
	}

	for _, p := range s.Popups {
		p.AdvancePhase(dt)
		p.Pursue(s.PointerVX, s.PointerVY, dt)
		if p.Contains(s.PointerVX, s.PointerVY) {
			s.Health -= DamageRate * dt
		}
	}
	s.Health = max(0, s.Health)

	s.Effects.AgeRings(dt)
	s.Effects.AgeBursts(dt)

	if in.Detonate {
		s.detonate(in.PointerX, in.PointerY)
	}

	if s.GameOver() && !s.GameOverCuePlayed {
		s.GameOverCuePlayed = true
		s.assets.Sounds.Play(audio.CueGameOver)
		s.logger.Info().Int("score", s.Score).Msg("game over")
	}
}

// trackPointer updates the facing angle and the direction indicator
// opacity from the physical pointer displacement since the last frame.
func (s *Session) trackPointer(dt, px, py float64) {
	dx := px - s.LastPointerX
	dy := py - s.LastPointerY
	moved := physics.Distance(s.LastPointerX, s.LastPointerY, px, py)

	if moved > FacingThreshold {
		s.Facing = math.Atan2(dy, dx)
	}

	target := 0.0
	if moved > IndicatorThreshold {
		target = 1
	}
	s.IndicatorAlpha += (target - s.IndicatorAlpha) * min(1, dt*IndicatorSmoothing)

	s.LastPointerX, s.LastPointerY = px, py
}

// detonate spends energy and destroys every popup within DetonationRadius
// of the pointer. A detonation without energy is dropped silently.
func (s *Session) detonate(px, py float64) {
	if s.Energy < EnergyCost {
		return
	}
	s.Energy -= EnergyCost

	vx, vy := s.PointerVX, s.PointerVY
	hit := s.queryDetonation(vx, vy)

	var centers [][2]float64
	if len(hit) > 0 {
		kept := s.Popups[:0]
		for i, p := range s.Popups {
			if hit[i] {
				cx, cy := p.Center()
				centers = append(centers, [2]float64{cx, cy})
				s.Score++
				continue
			}
			kept = append(kept, p)
		}
		clear(s.Popups[len(kept):])
		s.Popups = kept
	}

	s.assets.Sounds.Play(audio.CueDetonate)
	s.Effects.AddRing(px, py, s.Scaling.Length(DetonationRadius))

	for _, c := range centers {
		s.Effects.AddBurst(c[0], c[1])
		if s.particles != nil {
			s.particles.Emit(c[0], c[1], particle.ExplosionConfig())
		}
	}

	s.logger.Debug().
		Float64("x", vx).
		Float64("y", vy).
		Int("hits", len(centers)).
		Float64("energy", s.Energy).
		Msg("detonation")
}

// queryDetonation returns the indices of popups whose bounding box lies
// within DetonationRadius of (vx, vy).
func (s *Session) queryDetonation(vx, vy float64) map[int]bool {
	s.grid.Clear()
	for i, p := range s.Popups {
		cx, cy := p.Center()
		s.grid.Insert(cx, cy, i)
	}

	const r2 = DetonationRadius * DetonationRadius
	var hit map[int]bool
	s.grid.QueryAround(vx, vy, func(i int) bool {
		if s.Popups[i].DistanceSquaredTo(vx, vy) <= r2 {
			if hit == nil {
				hit = make(map[int]bool)
			}
			hit[i] = true
		}
		return false
	})
	return hit
}
