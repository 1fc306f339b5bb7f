package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const sampleRate = beep.SampleRate(44100)

// SpeakerPlayer plays cues through the system audio device.
// Tones are rendered once into buffers at startup.
type SpeakerPlayer struct {
	buffers map[Cue]*beep.Buffer
	mixer   *beep.Mixer
	volume  float64
	logger  zerolog.Logger
}

// NewSpeakerPlayer opens the audio device and prepares all cues.
// volume is the master volume in [0, 1].
func NewSpeakerPlayer(volume float64, logger zerolog.Logger) (*SpeakerPlayer, error) {
	buffers, err := renderCues(sampleRate)
	if err != nil {
		return nil, err
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	p := &SpeakerPlayer{
		buffers: buffers,
		mixer:   &beep.Mixer{},
		volume:  volume,
		logger:  logger,
	}
	speaker.Play(p.mixer)
	return p, nil
}

// renderCues synthesizes every cue into an in-memory buffer.
func renderCues(sr beep.SampleRate) (map[Cue]*beep.Buffer, error) {
	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	buffers := make(map[Cue]*beep.Buffer, len(Cues))
	for _, c := range Cues {
		t, _ := ToneFor(c)
		s, err := NewToneStreamer(sr, t)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", c, err)
		}
		buf := beep.NewBuffer(format)
		buf.Append(s)
		buffers[c] = buf
	}
	return buffers, nil
}

// Play queues the cue on the mixer and returns immediately.
func (p *SpeakerPlayer) Play(c Cue) {
	buf, ok := p.buffers[c]
	if !ok {
		p.logger.Warn().Int("cue", int(c)).Msg("unknown cue")
		return
	}

	speaker.Lock()
	p.mixer.Add(withVolume(buf.Streamer(0, buf.Len()), p.volume))
	speaker.Unlock()
	p.logger.Debug().Stringer("cue", c).Msg("cue played")
}

// Close stops playback and releases the audio device.
func (p *SpeakerPlayer) Close() {
	speaker.Clear()
	speaker.Close()
}

// withVolume applies a linear master volume to a streamer.
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume >= 1 {
		return s
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(math.Max(volume, 1e-6)),
		Silent:   volume <= 0,
	}
}
