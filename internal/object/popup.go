package object

import (
	"math"

	"github.com/tomz197/cursor-crisis/internal/physics"
)

// Spawn ranges for popups, in virtual units.
const (
	PopupMinSize  = 40.0
	PopupMaxSize  = 60.0
	PopupMinSpeed = 40.0  // units per second
	PopupMaxSpeed = 110.0 // units per second
)

// Pulse animation: the drawn size oscillates in [PulseMin, PulseMin+2*PulseAmplitude].
const (
	PulseMin       = 0.85
	PulseAmplitude = 0.15
	PulseRate      = 5.0
)

// pursuitDeadzone is the distance under which a popup stops moving,
// which also keeps the direction normalization away from zero.
const pursuitDeadzone = 1.0

// Popup is a square target that chases the pointer and hurts on contact.
type Popup struct {
	X, Y    float64 // Top-left corner
	W, H    float64 // Always equal
	Speed   float64 // Units per second
	Variant int     // Index into the visual variant catalog
	Phase   float64 // Pulse phase accumulator, grows without bound
}

// NewPopup creates a popup fully inside a field of the given size.
// variants is the number of available visual variants.
func NewPopup(rng Rand, field Field, variants int) *Popup {
	size := uniform(rng, PopupMinSize, PopupMaxSize)
	p := &Popup{
		X:     uniform(rng, 0, field.Width-size),
		Y:     uniform(rng, 0, field.Height-size),
		W:     size,
		H:     size,
		Speed: uniform(rng, PopupMinSpeed, PopupMaxSpeed),
	}
	if variants > 0 {
		p.Variant = rng.Intn(variants)
	}
	p.Phase = uniform(rng, 0, 2*math.Pi)
	return p
}

// AdvancePhase moves the pulse animation forward.
func (p *Popup) AdvancePhase(dt float64) {
	p.Phase += dt
}

// PulseScale returns the cosmetic size multiplier in [0.85, 1.15].
// It never affects hit geometry.
func (p *Popup) PulseScale() float64 {
	return PulseMin + (math.Sin(p.Phase*PulseRate)+1)*PulseAmplitude
}

// Pursue steps the popup's center toward (tx, ty) by Speed*dt.
// Greedy single step: no avoidance, popups may overlap.
func (p *Popup) Pursue(tx, ty, dt float64) {
	cx, cy := p.Center()
	dx := tx - cx
	dy := ty - cy

	dist := math.Sqrt(dx*dx + dy*dy)
	if dist > pursuitDeadzone {
		p.X += dx / dist * p.Speed * dt
		p.Y += dy / dist * p.Speed * dt
	}
}

// Bounds returns the un-pulsed bounding box.
func (p *Popup) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Center returns the popup's midpoint.
func (p *Popup) Center() (float64, float64) {
	return p.Bounds().Center()
}

// Contains reports whether (px, py) touches the popup (x <= px < x+w).
func (p *Popup) Contains(px, py float64) bool {
	return p.Bounds().Contains(px, py)
}

// DistanceSquaredTo returns the squared distance from (px, py) to the
// nearest point of the popup's bounding box.
func (p *Popup) DistanceSquaredTo(px, py float64) float64 {
	return p.Bounds().DistanceSquaredTo(px, py)
}
