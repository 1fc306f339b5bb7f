package physics

// Scaling maps a fixed virtual playfield onto a physical viewport.
// The playfield is scaled uniformly and centered, leaving letterbox bars on
// the axis with spare room.
type Scaling struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// ComputeScaling returns the uniform scale and centering offsets for a
// virtual playfield of virtW x virtH shown in a physW x physH viewport.
// Must be recomputed whenever the viewport changes.
func ComputeScaling(physW, physH, virtW, virtH float64) Scaling {
	scale := min(physW/virtW, physH/virtH)
	return Scaling{
		Scale:   scale,
		OffsetX: (physW - virtW*scale) / 2,
		OffsetY: (physH - virtH*scale) / 2,
	}
}

// ToVirtual converts a physical point to virtual playfield coordinates.
func (s Scaling) ToVirtual(px, py float64) (float64, float64) {
	return (px - s.OffsetX) / s.Scale, (py - s.OffsetY) / s.Scale
}

// ToPhysical converts a virtual point to physical viewport coordinates.
func (s Scaling) ToPhysical(vx, vy float64) (float64, float64) {
	return s.OffsetX + vx*s.Scale, s.OffsetY + vy*s.Scale
}

// Length scales a virtual distance to physical units.
func (s Scaling) Length(v float64) float64 {
	return v * s.Scale
}
