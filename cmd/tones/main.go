// Command tones writes every sound cue as a WAV file, for auditioning the
// synthesized tones without starting a game.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/tomz197/cursor-crisis/internal/audio"
	"github.com/tomz197/cursor-crisis/internal/logging"
)

func main() {
	out := pflag.StringP("out", "o", ".", "directory to write the WAV files to")
	pflag.Parse()

	logger := logging.NewWriter(zerolog.ConsoleWriter{Out: os.Stderr}, zerolog.InfoLevel)

	if err := writeCues(*out, logger); err != nil {
		logger.Error().Err(err).Msg("writing cues failed")
		os.Exit(1)
	}
}

func writeCues(dir string, logger zerolog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, c := range audio.Cues {
		path := filepath.Join(dir, c.String()+".wav")
		if err := writeCue(path, c); err != nil {
			return fmt.Errorf("cue %s: %w", c, err)
		}
		logger.Info().Str("cue", c.String()).Str("path", path).Msg("cue written")
	}
	return nil
}

func writeCue(path string, c audio.Cue) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := audio.WriteWAV(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
