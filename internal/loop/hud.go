package loop

import (
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/cursor-crisis/internal/draw"
	"github.com/tomz197/cursor-crisis/internal/physics"
)

// MeterKind selects which resource a HUD bar shows.
type MeterKind int

const (
	MeterHealth MeterKind = iota
	MeterEnergy
)

// HUD layout in virtual units.
const (
	barWidth       = 140.0
	barHeight      = 24.0
	hudMargin      = 20.0
	barGap         = 40.0 // Between the health bar bottom and the energy bar top
	labelOffset    = 15.0 // Label baseline below the bar
	scoreLineY     = 30.0
	popupsLineY    = 55.0
	restartLineGap = 70.0
)

var (
	colorBackground = mustHex("#0b0b12")
	colorPlayfield  = mustHex("#161625")
	colorBarTrack   = mustHex("#2a2a3a")
	colorHealth     = mustHex("#e62937")
	colorEnergy     = mustHex("#fdf900")
	colorText       = mustHex("#ffffff")
	colorDimText    = mustHex("#828282")
	colorFallback   = mustHex("#808080")
	colorRing       = mustHex("#ff8c1a")
	colorGlow       = colorful.Color{R: 1, G: 0.9, B: 0.4}
	colorGlowCore   = colorful.Color{R: 1, G: 0.95, B: 0.6}
	colorGlowHot    = colorful.Color{R: 1, G: 1, B: 0.8}
	colorTrail      = colorful.Color{R: 1, G: 0.8, B: 0}
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("loop: bad color " + s)
	}
	return c
}

// Label returns the caption drawn under the bar.
func (k MeterKind) Label() string {
	switch k {
	case MeterHealth:
		return "HEALTH"
	case MeterEnergy:
		return "ENERGY"
	default:
		return ""
	}
}

// Fill returns the bar fill color.
func (k MeterKind) Fill() colorful.Color {
	switch k {
	case MeterHealth:
		return colorHealth
	case MeterEnergy:
		return colorEnergy
	default:
		return colorFallback
	}
}

// barRect returns the physical rectangle of a meter bar.
func barRect(sc physics.Scaling, k MeterKind) physics.Rect {
	w := sc.Length(barWidth)
	h := sc.Length(barHeight)
	x := sc.OffsetX + sc.Length(VirtualWidth) - w - sc.Length(hudMargin)
	y := sc.OffsetY + sc.Length(hudMargin)
	if k == MeterEnergy {
		y += h + sc.Length(barGap)
	}
	return physics.Rect{X: x, Y: y, W: w, H: h}
}

// drawMeter paints a bar track and its fill proportional to value.
func drawMeter(c *draw.Canvas, sc physics.Scaling, k MeterKind, value float64) physics.Rect {
	r := barRect(sc, k)
	c.FillRect(r.X, r.Y, r.W, r.H, colorBarTrack, 1)
	c.FillRect(r.X, r.Y, r.W*physics.Clamp(value, 0, 1), r.H, k.Fill(), 1)
	c.StrokeRect(r.X, r.Y, r.W, r.H, colorText, 0.35)
	return r
}

// hudText is a string to overlay at a physical position.
type hudText struct {
	x, y  float64 // Physical position of the first character
	text  string
	color colorful.Color
}

// hudTexts returns the HUD captions for the session's current state.
func hudTexts(s *Session) []hudText {
	sc := s.Scaling
	texts := make([]hudText, 0, 6)

	for _, k := range []MeterKind{MeterHealth, MeterEnergy} {
		r := barRect(sc, k)
		texts = append(texts, hudText{
			x:     r.X + sc.Length(10),
			y:     r.Y + r.H + sc.Length(labelOffset),
			text:  k.Label(),
			color: k.Fill(),
		})
	}

	left := sc.OffsetX + sc.Length(hudMargin)
	texts = append(texts,
		hudText{x: left, y: sc.OffsetY + sc.Length(scoreLineY), text: "Score: " + strconv.Itoa(s.Score), color: colorText},
		hudText{x: left, y: sc.OffsetY + sc.Length(popupsLineY), text: "Popups: " + strconv.Itoa(len(s.Popups)), color: colorDimText},
	)

	if s.GameOver() {
		midX := sc.OffsetX + sc.Length(VirtualWidth)/2
		midY := sc.OffsetY + sc.Length(VirtualHeight)/2
		texts = append(texts,
			centered(midX, midY, "GAME OVER", colorHealth),
			centered(midX, midY+sc.Length(restartLineGap), "PRESS 'R' TO RESTART", colorText),
		)
	}
	return texts
}

// centered places text so its middle column sits at x.
func centered(x, y float64, text string, col colorful.Color) hudText {
	return hudText{x: x - float64(draw.TextWidth(text))/2, y: y, text: text, color: col}
}
