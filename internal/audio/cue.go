// Package audio synthesizes and plays the game's sound cues.
package audio

import "time"

// Cue identifies a one-shot sound the game can trigger.
type Cue int

const (
	CueStart    Cue = iota // Session begins or restarts
	CueDetonate            // Detonation fired, hit or miss
	CueGameOver            // Health ran out
)

// String returns the cue name used in logs and file names.
func (c Cue) String() string {
	switch c {
	case CueStart:
		return "start"
	case CueDetonate:
		return "detonate"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Cues lists every cue.
var Cues = []Cue{CueStart, CueDetonate, CueGameOver}

// Tone is a plain sine beep with a short fade at both ends.
type Tone struct {
	Frequency float64 // Hz
	Duration  time.Duration
	Volume    float64 // Peak amplitude, [0, 1]
}

// fadeTime is the linear fade-in/out length applied to every tone.
const fadeTime = 11 * time.Millisecond

var cueTones = map[Cue]Tone{
	CueStart:    {Frequency: 600, Duration: 500 * time.Millisecond, Volume: 0.5},
	CueDetonate: {Frequency: 1000, Duration: 50 * time.Millisecond, Volume: 0.5},
	CueGameOver: {Frequency: 300, Duration: 800 * time.Millisecond, Volume: 0.5},
}

// ToneFor returns the tone synthesized for a cue.
func ToneFor(c Cue) (Tone, bool) {
	t, ok := cueTones[c]
	return t, ok
}

// Player plays cues. Implementations must not block the caller.
type Player interface {
	Play(c Cue)
}

// Silent is a Player that discards every cue.
type Silent struct{}

// Play does nothing.
func (Silent) Play(Cue) {}
