// Package loop runs the Cursor Crisis simulation and its terminal frame driver.
package loop

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/cursor-crisis/internal/draw"
	"github.com/tomz197/cursor-crisis/internal/input"
	"github.com/tomz197/cursor-crisis/internal/particle"
)

// maxFrameDelta caps the simulated time of one frame, so a stalled terminal
// does not teleport popups onto the pointer.
const maxFrameDelta = 100 * time.Millisecond

// RunOptions configures the terminal driver.
type RunOptions struct {
	Options

	FPS       int
	MaxWidth  int // Terminal columns used at most
	MaxHeight int // Terminal rows used at most
	TermSize  draw.TermSizeFunc
}

// driver owns everything one terminal session needs between frames.
type driver struct {
	opts      RunOptions
	session   *Session
	particles *particle.Engine
	stream    *input.Stream
	canvas    *draw.Canvas
	out       *draw.ChunkWriter
	renderer  *Renderer

	termW, termH       int
	pointerX, pointerY float64 // Physical, canvas-relative
	pointerSeen        bool
}

// Run starts the main game loop with the standard Input → Update → Draw cycle.
// It returns when the player quits or input ends.
func Run(r *bufio.Reader, w io.Writer, opts RunOptions) error {
	d := newDriver(r, w, opts)
	opts = d.opts

	if err := draw.EnterScreen(w); err != nil {
		return fmt.Errorf("enter screen: %w", err)
	}
	defer draw.LeaveScreen(w)

	log := opts.Logger
	log.Info().Int("fps", opts.FPS).Msg("run loop started")

	frameTime := time.Second / time.Duration(opts.FPS)
	lastTime := time.Now()

	for {
		frameStart := time.Now()
		dt := min(frameStart.Sub(lastTime), maxFrameDelta).Seconds()
		lastTime = frameStart

		// ===== INPUT PHASE =====
		if err := d.resize(); err != nil {
			return err
		}
		in := d.stream.Read()
		if in.Quit {
			break
		}
		d.trackPointer(in)

		// ===== UPDATE PHASE =====
		if d.canvas.Width() > 0 && d.canvas.Height() > 0 {
			d.session.Advance(dt, d.frameInput(in))
			d.particles.Update(dt)
		}

		// ===== DRAW PHASE =====
		if err := d.draw(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// ===== FRAME TIMING =====
		if elapsed := time.Since(frameStart); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}

	log.Info().
		Int("score", d.session.Score).
		Int("frames", d.session.Frames).
		Msg("run loop stopped")
	return nil
}

func newDriver(r *bufio.Reader, w io.Writer, opts RunOptions) *driver {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.TermSize == nil {
		opts.TermSize = draw.DefaultTermSizeFunc
	}

	d := &driver{
		opts:      opts,
		stream:    input.StartStream(r),
		canvas:    draw.NewCanvas(0, 0),
		out:       draw.NewChunkWriter(w, 0, 0),
		particles: particle.NewEngine(opts.Rand),
	}
	opts.Particles = d.particles
	d.session = NewSession(opts.Options)
	d.renderer = NewRenderer(d.canvas, opts.Variants)
	return d
}

// resize fits the canvas to the terminal, capped at the configured maximum
// and centered in any spare room.
func (d *driver) resize() error {
	w, h, err := d.opts.TermSize()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	if w == d.termW && h == d.termH {
		return nil
	}

	cols, rows := w, h
	if d.opts.MaxWidth > 0 {
		cols = min(cols, d.opts.MaxWidth)
	}
	if d.opts.MaxHeight > 0 {
		rows = min(rows, d.opts.MaxHeight)
	}
	offCol, offRow := (w-cols)/2, (h-rows)/2

	d.termW, d.termH = w, h
	d.canvas.Resize(cols, rows)
	d.canvas.SetOffset(offCol, offRow)
	d.out.SetOffset(offCol, offRow)
	if !d.pointerSeen {
		d.pointerX, d.pointerY = float64(cols)/2, float64(rows)
	}

	d.opts.Logger.Debug().
		Int("termWidth", w).
		Int("termHeight", h).
		Int("cols", cols).
		Int("rows", rows).
		Msg("terminal resized")

	// Letterbox areas outside the canvas are never repainted.
	return draw.ClearScreen(d.out)
}

// trackPointer converts the last reported mouse cell to canvas pixels: the
// horizontal middle of the column and the seam between the cell's two pixels.
func (d *driver) trackPointer(in input.Input) {
	if !in.HasMouse {
		return
	}
	d.pointerSeen = true
	d.pointerX = float64(in.MouseCol-1-d.canvas.OffsetCol()) + 0.5
	d.pointerY = float64((in.MouseRow-1-d.canvas.OffsetRow())*2) + 1
}

func (d *driver) frameInput(in input.Input) FrameInput {
	return FrameInput{
		PointerX:  d.pointerX,
		PointerY:  d.pointerY,
		ViewportW: float64(d.canvas.Width()),
		ViewportH: float64(d.canvas.Height()),
		Detonate:  in.Detonate,
		Restart:   in.Restart,
	}
}

// draw renders the canvas, overlays HUD text and flushes the frame.
func (d *driver) draw() error {
	if d.canvas.Width() == 0 || d.canvas.Height() == 0 {
		return d.out.Flush()
	}

	texts := d.renderer.Draw(d.session, d.particles, d.pointerX, d.pointerY)
	if err := d.canvas.Render(d.out); err != nil {
		return err
	}

	for _, t := range texts {
		col, row := textCell(t.x, t.y)
		if row < 1 || row > d.canvas.Rows() {
			continue
		}
		text := t.text
		if col < 1 {
			col = 1
		}
		text = draw.FitText(text, d.canvas.Width()-col+1)
		if text == "" {
			continue
		}
		bg := d.canvas.At(col-1, (row-1)*2)
		d.out.WriteText(col, row, text, t.color, bg)
	}

	return d.out.Flush()
}
