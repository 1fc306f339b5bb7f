package loop

import (
	"bufio"
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/cursor-crisis/internal/audio"
	"github.com/tomz197/cursor-crisis/internal/input"
	"github.com/tomz197/cursor-crisis/internal/object"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func testRunOptions(w, h int) RunOptions {
	return RunOptions{
		Options: Options{
			Assets: Assets{Variants: object.DefaultVariants(), Sounds: audio.Silent{}},
			Rand:   rand.New(rand.NewSource(3)),
			Logger: zerolog.Nop(),
		},
		FPS:       240,
		MaxWidth:  100,
		MaxHeight: 40,
		TermSize:  fixedSize(w, h),
	}
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	var out bytes.Buffer
	err := Run(bufio.NewReader(strings.NewReader("")), &out, testRunOptions(80, 24))
	require.NoError(t, err)

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\033[?25l\033[?1003h\033[?1006h"), "mouse tracking is enabled first")
	assert.Contains(t, s, "\033[?1006l\033[?1003l", "mouse tracking is disabled on exit")
}

func TestRunStopsOnQuitKey(t *testing.T) {
	var out bytes.Buffer
	err := Run(bufio.NewReader(strings.NewReader("q")), &out, testRunOptions(80, 24))
	require.NoError(t, err)
}

func TestRunReportsTerminalSizeError(t *testing.T) {
	opts := testRunOptions(80, 24)
	opts.TermSize = func() (int, int, error) { return 0, 0, errors.New("not a tty") }

	var out bytes.Buffer
	err := Run(bufio.NewReader(strings.NewReader("")), &out, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a tty")
	assert.Contains(t, out.String(), "\033[?1003l", "the screen is restored on error")
}

func newTestDriver(t *testing.T, w, h int) (*driver, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	d := newDriver(bufio.NewReader(strings.NewReader("")), &out, testRunOptions(w, h))
	require.NoError(t, d.resize())
	return d, &out
}

func TestResizeCentersCappedCanvas(t *testing.T) {
	d, _ := newTestDriver(t, 120, 50)

	assert.Equal(t, 100, d.canvas.Width())
	assert.Equal(t, 80, d.canvas.Height())
	assert.Equal(t, 10, d.canvas.OffsetCol())
	assert.Equal(t, 5, d.canvas.OffsetRow())

	// Until the mouse reports, the pointer rests in the middle.
	assert.Equal(t, 50.0, d.pointerX)
	assert.Equal(t, 40.0, d.pointerY)
}

func TestTrackPointerUsesCanvasPixels(t *testing.T) {
	d, _ := newTestDriver(t, 120, 50)

	d.trackPointer(input.Input{MouseCol: 11, MouseRow: 6, HasMouse: true})
	assert.Equal(t, 0.5, d.pointerX)
	assert.Equal(t, 1.0, d.pointerY)

	d.trackPointer(input.Input{})
	assert.Equal(t, 0.5, d.pointerX, "frames without reports keep the last position")

	in := d.frameInput(input.Input{Detonate: true})
	assert.Equal(t, FrameInput{PointerX: 0.5, PointerY: 1, ViewportW: 100, ViewportH: 80, Detonate: true}, in)
}

func TestDrawWritesFrameAndHud(t *testing.T) {
	d, out := newTestDriver(t, 100, 40)
	d.session.Advance(0.01, d.frameInput(input.Input{}))
	d.session.Health = 0

	require.NoError(t, d.draw())
	s := out.String()

	assert.Contains(t, s, string('▀'))
	assert.Contains(t, s, "Score: 0")
	assert.Contains(t, s, "HEALTH")
	assert.Contains(t, s, "GAME OVER")
	assert.Contains(t, s, "PRESS 'R' TO RESTART")
}

func TestDrawWithEmptyTerminal(t *testing.T) {
	d, out := newTestDriver(t, 0, 0)
	require.NoError(t, d.draw())
	assert.Empty(t, out.String())
}
