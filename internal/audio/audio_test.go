package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCueNames(t *testing.T) {
	assert.Equal(t, "start", CueStart.String())
	assert.Equal(t, "detonate", CueDetonate.String())
	assert.Equal(t, "game_over", CueGameOver.String())
	assert.Equal(t, "unknown", Cue(42).String())
}

func TestEveryCueHasATone(t *testing.T) {
	for _, c := range Cues {
		tone, ok := ToneFor(c)
		require.True(t, ok, c.String())
		assert.Greater(t, tone.Frequency, 0.0)
		assert.Greater(t, tone.Duration, time.Duration(0))
		assert.InDelta(t, 0.5, tone.Volume, 1e-9)
	}
	_, ok := ToneFor(Cue(42))
	assert.False(t, ok)
}

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	return out
}

func TestToneStreamerLengthAndEnvelope(t *testing.T) {
	sr := beep.SampleRate(8000)
	tone := Tone{Frequency: 440, Duration: 100 * time.Millisecond, Volume: 0.5}

	s, err := NewToneStreamer(sr, tone)
	require.NoError(t, err)
	samples := drain(t, s)

	require.Len(t, samples, sr.N(tone.Duration))
	assert.Zero(t, samples[0][0], "fade-in starts from silence")

	peak := 0.0
	for _, smp := range samples {
		peak = math.Max(peak, math.Abs(smp[0]))
	}
	assert.LessOrEqual(t, peak, tone.Volume+1e-9)
	assert.Greater(t, peak, tone.Volume*0.9)

	last := samples[len(samples)-1][0]
	assert.Less(t, math.Abs(last), tone.Volume*0.1, "fade-out ends near silence")

	n, ok := s.Stream(make([][2]float64, 16))
	assert.Zero(t, n)
	assert.False(t, ok)
}

func TestToneStreamerRejectsBadFrequency(t *testing.T) {
	_, err := NewToneStreamer(beep.SampleRate(8000), Tone{Frequency: 6000, Duration: time.Second})
	assert.Error(t, err, "above Nyquist")
}

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "detonate.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteWAV(f, CueDetonate))
	require.NoError(t, f.Close())

	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()

	s, format, err := wav.Decode(in)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, WAVFormat.SampleRate, format.SampleRate)
	assert.Equal(t, 1, format.NumChannels)
	assert.Equal(t, 2, format.Precision)

	tone, _ := ToneFor(CueDetonate)
	assert.Equal(t, WAVFormat.SampleRate.N(tone.Duration), s.Len())
}

func TestWriteWAVUnknownCue(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "x.wav"))
	require.NoError(t, err)
	defer f.Close()

	assert.Error(t, WriteWAV(f, Cue(42)))
}

func TestRenderCues(t *testing.T) {
	buffers, err := renderCues(beep.SampleRate(8000))
	require.NoError(t, err)
	require.Len(t, buffers, len(Cues))

	start, _ := ToneFor(CueStart)
	assert.Equal(t, beep.SampleRate(8000).N(start.Duration), buffers[CueStart].Len())
}

func TestWithVolume(t *testing.T) {
	s := &beep.Ctrl{Streamer: beep.Silence(-1)}
	assert.Same(t, s, withVolume(s, 1), "full volume passes the streamer through")

	quiet, ok := withVolume(s, 0.5).(*effects.Volume)
	require.True(t, ok)
	assert.InDelta(t, -1, quiet.Volume, 1e-9)
	assert.False(t, quiet.Silent)

	mute, ok := withVolume(s, 0).(*effects.Volume)
	require.True(t, ok)
	assert.True(t, mute.Silent)
}

func TestSilentPlayer(t *testing.T) {
	var p Player = Silent{}
	assert.NotPanics(t, func() { p.Play(CueStart) })
}
