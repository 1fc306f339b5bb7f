package particle

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitSpawnsConfiguredAmount(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(1)))
	cfg := ExplosionConfig()

	e.Emit(100, 200, cfg)
	require.Equal(t, 25, e.Len())

	e.Each(func(p *Particle) {
		assert.Equal(t, 100.0, p.X)
		assert.Equal(t, 200.0, p.Y)
		speed := math.Hypot(p.VX, p.VY)
		assert.GreaterOrEqual(t, speed, 180*0.3-1e-9)
		assert.LessOrEqual(t, speed, 180.0+1e-9)
		assert.GreaterOrEqual(t, p.Size, 6*0.4-1e-9)
		assert.LessOrEqual(t, p.Size, 6.0)
		assert.Equal(t, 0.4, p.MaxLifetime)
	})
}

func TestUpdateExpiresAfterLifetime(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(2)))
	e.Emit(0, 0, ExplosionConfig())

	e.Update(0.2)
	assert.Equal(t, 25, e.Len())

	e.Update(0.25)
	assert.Zero(t, e.Len())
}

func TestGravityPullsDown(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(3)))
	cfg := ExplosionConfig()
	cfg.Amount = 1
	cfg.Velocity = 0
	e.Emit(0, 0, cfg)

	e.Update(0.1)
	e.Each(func(p *Particle) {
		assert.Zero(t, p.X)
		assert.Greater(t, p.Y, 0.0)
		assert.InDelta(t, 12.0, p.VY, 1e-9)
	})
}

func TestClearReleasesEverything(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(4)))
	e.Emit(0, 0, ExplosionConfig())
	e.Emit(5, 5, ExplosionConfig())
	require.Equal(t, 50, e.Len())

	e.Clear()
	assert.Zero(t, e.Len())
}

func TestColorCurve(t *testing.T) {
	c := ExplosionConfig().Colors

	assert.Equal(t, c.Start, c.At(0))
	assert.Equal(t, c.End, c.At(1))

	mid := c.At(0.5)
	assert.InDelta(t, c.Mid.Alpha, mid.Alpha, 1e-9)
	assert.InDelta(t, c.Mid.Color.G, mid.Color.G, 1e-9)

	quarter := c.At(0.25)
	assert.InDelta(t, 0.9, quarter.Alpha, 1e-9)
	assert.InDelta(t, (0.647+0.4)/2, quarter.Color.G, 1e-9)

	assert.InDelta(t, 0.0, c.At(0.999).Alpha, 0.01)
}
