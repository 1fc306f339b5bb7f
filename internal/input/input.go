// Package input decodes raw terminal bytes into per-frame key and mouse
// events.
package input

import (
	"bufio"
	"bytes"
	"strconv"
)

// maxSequenceLen bounds how long an unterminated escape sequence may grow
// before it is discarded.
const maxSequenceLen = 32

// SGR mouse button bits.
const (
	buttonMask   = 0b11
	buttonRight  = 2
	motionFlag   = 32
	wheelFlag    = 64
	extendedFlag = 128
)

// Input represents the current frame's input state.
// Detonate, Restart and Quit are edges: true only on the frame the press arrived.
type Input struct {
	MouseCol, MouseRow int  // Last reported pointer cell, 1-based
	HasMouse           bool // False until the terminal reports the pointer
	Detonate           bool // Right button pressed
	Restart            bool // 'r' pressed
	Quit               bool // 'q', Ctrl-C or end of input
}

// Stream delivers input bytes via a channel and keeps the decoder state
// that spans frames.
type Stream struct {
	ch      chan byte
	closed  bool
	pending []byte // Incomplete escape sequence from the previous frame
	buf     []byte

	mouseCol, mouseRow int
	hasMouse           bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 256)}
}

// Read drains all available bytes from the stream without blocking and
// decodes them.
func (s *Stream) Read() Input {
	s.buf = s.buf[:0]
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.buf = append(s.buf, b)
		default:
			break drain
		}
	}

	in := s.decode(s.buf)
	if s.closed {
		in.Quit = true
	}
	return in
}

// decode parses data on top of any bytes held back from the previous call.
// A sequence still incomplete after a call with no new bytes is dropped, so
// a lone ESC key press never blocks later input.
func (s *Stream) decode(data []byte) Input {
	var in Input
	buf := data
	if len(s.pending) > 0 {
		if len(data) == 0 {
			s.pending = s.pending[:0]
		}
		buf = append(s.pending, data...)
	}

	rest := s.parse(buf, &in)
	s.pending = append(s.pending[:0:0], rest...)

	in.MouseCol, in.MouseRow, in.HasMouse = s.mouseCol, s.mouseRow, s.hasMouse
	return in
}

// parse consumes complete keys and sequences from buf and returns the
// trailing incomplete sequence, if any.
func (s *Stream) parse(buf []byte, in *Input) []byte {
	for i := 0; i < len(buf); {
		b := buf[i]
		if b != '\x1b' {
			applyByte(in, b)
			i++
			continue
		}

		n, ok := s.parseEscape(buf[i:], in)
		if !ok {
			return buf[i:]
		}
		i += n
	}
	return nil
}

// parseEscape consumes one escape sequence at the start of seq and reports
// how many bytes it used. ok is false when seq ends mid-sequence.
func (s *Stream) parseEscape(seq []byte, in *Input) (n int, ok bool) {
	if len(seq) < 2 {
		return 0, false
	}
	if seq[1] != '[' {
		return 1, true // Lone ESC or Alt-modified key
	}
	if len(seq) < 3 {
		return 0, false
	}

	if seq[2] != '<' {
		// Other CSI sequences (arrows, focus) are skipped whole.
		for i := 2; i < len(seq) && i < maxSequenceLen; i++ {
			if seq[i] >= 0x40 && seq[i] <= 0x7e {
				return i + 1, true
			}
		}
		return tooLong(seq)
	}

	for i := 3; i < len(seq) && i < maxSequenceLen; i++ {
		switch c := seq[i]; {
		case c == 'M' || c == 'm':
			s.applyMouse(seq[3:i], c == 'M', in)
			return i + 1, true
		case c != ';' && (c < '0' || c > '9'):
			return i, true // Malformed, drop what was read
		}
	}
	return tooLong(seq)
}

func tooLong(seq []byte) (int, bool) {
	if len(seq) >= maxSequenceLen {
		return maxSequenceLen, true
	}
	return 0, false
}

// applyMouse handles the body of an SGR report: "button;col;row".
func (s *Stream) applyMouse(body []byte, press bool, in *Input) {
	fields := bytes.Split(body, []byte{';'})
	if len(fields) != 3 {
		return
	}
	var v [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(string(f))
		if err != nil {
			return
		}
		v[i] = n
	}
	button, col, row := v[0], v[1], v[2]

	s.mouseCol, s.mouseRow, s.hasMouse = col, row, true

	if press && button&(motionFlag|wheelFlag|extendedFlag) == 0 && button&buttonMask == buttonRight {
		in.Detonate = true
	}
}

// applyByte handles a plain key byte.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'r', 'R':
		in.Restart = true
	}
}
