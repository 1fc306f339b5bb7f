package audio

import (
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

// envelope scales a source streamer by Tone.Volume and a linear fade at
// both ends, and stops after the tone's duration.
type envelope struct {
	src   beep.Streamer
	pos   int
	total int
	fade  int
	gain  float64
}

// NewToneStreamer returns a finite streamer for the tone at sample rate sr.
func NewToneStreamer(sr beep.SampleRate, t Tone) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, t.Frequency)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.0fHz: %w", t.Frequency, err)
	}
	return &envelope{
		src:   sine,
		total: sr.N(t.Duration),
		fade:  sr.N(fadeTime),
		gain:  t.Volume,
	}, nil
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if remaining := e.total - e.pos; len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.src.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain * e.level(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok || n > 0
}

// level returns the envelope amplitude at sample i.
func (e *envelope) level(i int) float64 {
	if e.fade <= 0 {
		return 1
	}
	switch {
	case i < e.fade:
		return float64(i) / float64(e.fade)
	case i > e.total-e.fade:
		return float64(e.total-i) / float64(e.fade)
	default:
		return 1
	}
}

func (e *envelope) Err() error {
	return e.src.Err()
}

// WAVFormat is the format cues are exported in: 16-bit mono 44.1kHz PCM.
var WAVFormat = beep.Format{
	SampleRate:  44100,
	NumChannels: 1,
	Precision:   2,
}

// WriteWAV encodes the cue's tone as a WAV file.
func WriteWAV(w io.WriteSeeker, c Cue) error {
	t, ok := ToneFor(c)
	if !ok {
		return fmt.Errorf("no tone for cue %d", c)
	}
	s, err := NewToneStreamer(WAVFormat.SampleRate, t)
	if err != nil {
		return err
	}
	if err := wav.Encode(w, s, WAVFormat); err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	return nil
}
