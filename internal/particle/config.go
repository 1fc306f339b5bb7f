package particle

import colorful "github.com/lucasb-eyer/go-colorful"

// Stop is a color with opacity.
type Stop struct {
	Color colorful.Color
	Alpha float64
}

// ColorCurve is a three-stop gradient sampled over a particle's life.
type ColorCurve struct {
	Start Stop
	Mid   Stop
	End   Stop
}

// At samples the curve at t in [0, 1]: Start→Mid over the first half,
// Mid→End over the second.
func (c ColorCurve) At(t float64) Stop {
	switch {
	case t <= 0:
		return c.Start
	case t >= 1:
		return c.End
	case t < 0.5:
		return blend(c.Start, c.Mid, t*2)
	default:
		return blend(c.Mid, c.End, (t-0.5)*2)
	}
}

func blend(a, b Stop, t float64) Stop {
	return Stop{
		Color: a.Color.BlendRgb(b.Color, t),
		Alpha: a.Alpha + (b.Alpha-a.Alpha)*t,
	}
}

// Config describes one burst.
type Config struct {
	Amount             int     // Particles per burst
	Lifetime           float64 // Seconds
	Spread             float64 // Emission cone in degrees, centered on Direction
	Direction          float64 // Radians
	Velocity           float64 // Units per second
	VelocityRandomness float64 // Fraction of Velocity randomly removed, [0, 1]
	Size               float64 // Units
	SizeRandomness     float64 // Fraction of Size randomly removed, [0, 1]
	GravityX           float64
	GravityY           float64
	Colors             ColorCurve
}

// ExplosionConfig is the burst emitted for every popup destroyed by a detonation.
func ExplosionConfig() Config {
	return Config{
		Amount:             25,
		Lifetime:           0.4,
		Spread:             360,
		Direction:          -1.5707963267948966, // up
		Velocity:           180,
		VelocityRandomness: 0.7,
		Size:               6,
		SizeRandomness:     0.6,
		GravityX:           0,
		GravityY:           120,
		Colors: ColorCurve{
			Start: Stop{Color: colorful.Color{R: 1.0, G: 0.647, B: 0.0}, Alpha: 1.0},
			Mid:   Stop{Color: colorful.Color{R: 1.0, G: 0.4, B: 0.0}, Alpha: 0.8},
			End:   Stop{Color: colorful.Color{R: 0.5, G: 0.0, B: 0.0}, Alpha: 0.0},
		},
	}
}
