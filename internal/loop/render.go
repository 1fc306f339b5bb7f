package loop

import (
	"math"

	"github.com/tomz197/cursor-crisis/internal/draw"
	"github.com/tomz197/cursor-crisis/internal/object"
	"github.com/tomz197/cursor-crisis/internal/particle"
	"github.com/tomz197/cursor-crisis/internal/physics"
)

// Cursor presentation, in virtual units scaled per frame.
const (
	glowRadius     = 60.0
	glowLayers     = 5
	glowAlpha      = 0.06
	glowCoreRadius = 10.0
	glowHotRadius  = 6.0
	glowPulseDepth = 0.08 // Fraction the glow radius breathes by
	glowPulseRate  = 4.0  // Radians per second of GlowTimer
	trailRadius    = 4.0
	trailPull      = 0.3 // Fraction of a sample's offset kept, pulling the trail toward the pointer
	indicatorSize  = 12.0
	ringThickness  = 2.0
)

// particleSource is the read side of the particle engine.
type particleSource interface {
	Each(fn func(p *particle.Particle))
}

// Renderer turns a session into canvas pixels and HUD text.
// It only reads the session.
type Renderer struct {
	canvas   *draw.Canvas
	variants []object.Variant
}

// NewRenderer creates a renderer drawing onto canvas.
func NewRenderer(canvas *draw.Canvas, variants []object.Variant) *Renderer {
	return &Renderer{canvas: canvas, variants: variants}
}

// Draw paints the full frame into the canvas and returns the HUD captions
// to overlay once the canvas is on screen.
func (r *Renderer) Draw(s *Session, particles particleSource, pointerX, pointerY float64) []hudText {
	c := r.canvas
	sc := s.Scaling

	c.Fill(colorBackground)
	c.FillRect(sc.OffsetX, sc.OffsetY, sc.Length(VirtualWidth), sc.Length(VirtualHeight), colorPlayfield, 1)

	for _, p := range s.Popups {
		r.drawPopup(sc, p)
	}

	for _, ring := range s.Effects.Rings {
		c.StrokeCircle(ring.X, ring.Y, ring.Radius, max(1, sc.Length(ringThickness)), colorRing, ring.Fade())
	}

	if particles != nil {
		particles.Each(func(p *particle.Particle) {
			x, y := sc.ToPhysical(p.X, p.Y)
			stop := p.Color()
			c.FillCircle(x, y, sc.Length(p.Size)/2, stop.Color, stop.Alpha)
		})
	}

	drawMeter(c, sc, MeterHealth, s.Health)
	drawMeter(c, sc, MeterEnergy, s.Energy)

	r.drawCursor(s, pointerX, pointerY)

	return hudTexts(s)
}

// drawPopup draws a popup's body at its pulsed size. An index outside the
// catalog falls back to a plain rectangle of the hitbox.
func (r *Renderer) drawPopup(sc physics.Scaling, p *object.Popup) {
	c := r.canvas
	v, ok := object.LookupVariant(r.variants, p.Variant)
	if !ok {
		x, y := sc.ToPhysical(p.X, p.Y)
		c.FillRect(x, y, sc.Length(p.W), sc.Length(p.H), colorFallback, 1)
		return
	}

	cx, cy := sc.ToPhysical(p.Center())
	half := sc.Length(p.W*p.PulseScale()) / 2

	var outline []draw.Point
	switch v.Shape {
	case object.BodyRhombus:
		outline = c.Rhombus(cx, cy, half)
	default:
		outline = c.Squircle(cx, cy, half)
	}
	c.FillPolygon(outline, v.Color, 1)
	c.StrokePolygon(outline, v.Color.BlendRgb(colorBackground, 0.4), 1)

	// Eyes, so popups read as characters.
	eye := max(half*0.14, 0.5)
	c.FillCircle(cx-half*0.35, cy-half*0.15, eye, colorText, 1)
	c.FillCircle(cx+half*0.35, cy-half*0.15, eye, colorText, 1)
}

// drawCursor draws the trail, the glow and the direction indicator around
// the physical pointer position.
func (r *Renderer) drawCursor(s *Session, px, py float64) {
	c := r.canvas
	sc := s.Scaling

	for _, t := range s.Effects.Trail {
		fade := t.Fade()
		x := px + (t.X-px)*trailPull
		y := py + (t.Y-py)*trailPull
		c.FillCircle(x, y, sc.Length(trailRadius)*fade, colorTrail, fade*0.5)
	}

	light := sc.Length(glowRadius) * glowPulse(s.GlowTimer)
	for i := 1; i <= glowLayers; i++ {
		f := float64(i) / glowLayers
		c.FillCircle(px, py, light*f, colorGlow, glowAlpha*(1-f*f))
	}
	c.FillCircle(px, py, sc.Length(glowCoreRadius), colorGlowCore, 0.6)
	c.FillCircle(px, py, sc.Length(glowHotRadius), colorGlowHot, 0.8)

	if s.IndicatorAlpha > 0.01 {
		tip := c.Teardrop(px, py, s.Facing, sc.Length(indicatorSize))
		c.FillPolygon(tip, colorGlow, s.IndicatorAlpha)
	}
}

// glowPulse returns the glow radius factor at time t.
func glowPulse(t float64) float64 {
	return 1 + glowPulseDepth*math.Sin(t*glowPulseRate)
}

// textCell converts a physical position to a 1-based canvas cell.
func textCell(x, y float64) (col, row int) {
	return int(math.Floor(x)) + 1, int(math.Floor(y/2)) + 1
}
