package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Input
	}{
		{"restart", "r", Input{Restart: true}},
		{"restart upper", "R", Input{Restart: true}},
		{"quit", "q", Input{Quit: true}},
		{"ctrl-c", "\x03", Input{Quit: true}},
		{"space does nothing", " ", Input{}},
		{"arrow skipped", "\x1b[A", Input{}},
		{"lone escape then key", "\x1bxr", Input{Restart: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream()
			assert.Equal(t, tt.want, s.decode([]byte(tt.data)))
		})
	}
}

func TestMouseMotionTracksPosition(t *testing.T) {
	s := newStream()

	in := s.decode([]byte("\x1b[<35;12;7M"))
	assert.True(t, in.HasMouse)
	assert.Equal(t, 12, in.MouseCol)
	assert.Equal(t, 7, in.MouseRow)
	assert.False(t, in.Detonate)

	// The position persists on frames without mouse reports.
	in = s.decode(nil)
	assert.True(t, in.HasMouse)
	assert.Equal(t, 12, in.MouseCol)
}

func TestRightPressDetonates(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{"right press", "\x1b[<2;5;5M", true},
		{"right press with ctrl", "\x1b[<18;5;5M", true},
		{"right release", "\x1b[<2;5;5m", false},
		{"right drag", "\x1b[<34;5;5M", false},
		{"left press", "\x1b[<0;5;5M", false},
		{"wheel", "\x1b[<66;5;5M", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream()
			assert.Equal(t, tt.want, s.decode([]byte(tt.data)).Detonate)
		})
	}
}

func TestLastMouseReportWins(t *testing.T) {
	s := newStream()
	in := s.decode([]byte("\x1b[<35;1;1M\x1b[<2;3;4M\x1b[<35;9;8Mq"))

	assert.Equal(t, 9, in.MouseCol)
	assert.Equal(t, 8, in.MouseRow)
	assert.True(t, in.Detonate)
	assert.True(t, in.Quit)
}

func TestSplitSequence(t *testing.T) {
	s := newStream()

	in := s.decode([]byte("r\x1b[<2;4"))
	assert.True(t, in.Restart)
	assert.False(t, in.HasMouse)

	in = s.decode([]byte("0;6M"))
	assert.True(t, in.Detonate)
	assert.Equal(t, 40, in.MouseCol)
	assert.Equal(t, 6, in.MouseRow)
	assert.False(t, in.Restart, "edges do not repeat")
}

func TestIncompleteSequenceDroppedWhenIdle(t *testing.T) {
	s := newStream()

	s.decode([]byte("\x1b"))
	require.NotEmpty(t, s.pending)

	s.decode(nil)
	assert.Empty(t, s.pending)

	assert.True(t, s.decode([]byte("r")).Restart)
}

func TestMalformedSequences(t *testing.T) {
	s := newStream()

	in := s.decode([]byte("\x1b[<2;x;5Mr"))
	assert.False(t, in.Detonate)
	assert.True(t, in.Restart)

	in = s.decode([]byte("\x1b[<2;5M"))
	assert.False(t, in.HasMouse, "two fields are not a report")

	in = s.decode([]byte("\x1b[<" + strings.Repeat("1", 40) + "q"))
	assert.True(t, in.Quit, "overlong sequences are dropped")
}

func TestStreamEndOfInputQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("x")))

	assert.Eventually(t, func() bool {
		return s.Read().Quit
	}, time.Second, time.Millisecond)
}
