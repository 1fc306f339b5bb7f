package main

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tomz197/cursor-crisis/internal/audio"
	"github.com/tomz197/cursor-crisis/internal/config"
	"github.com/tomz197/cursor-crisis/internal/logging"
	"github.com/tomz197/cursor-crisis/internal/loop"
	"github.com/tomz197/cursor-crisis/internal/object"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cursor-crisis: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := pflag.NewFlagSet("cursor-crisis", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Stdout belongs to the game, so logs go to a file.
	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer closer.Close()

	if cfg.File != "" {
		logger.Info().Str("path", cfg.File).Msg("config file loaded")
	}

	sounds, closeSounds := openAudio(cfg.Audio, logger)
	defer closeSounds()

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info().Int64("seed", seed).Msg("random source seeded")

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	opts := loop.RunOptions{
		Options: loop.Options{
			Assets: loop.Assets{
				Variants: object.DefaultVariants(),
				Sounds:   sounds,
			},
			Rand:   rand.New(rand.NewSource(seed)),
			Logger: logger,
		},
		FPS:       cfg.Render.FPS,
		MaxWidth:  cfg.Render.MaxWidth,
		MaxHeight: cfg.Render.MaxHeight,
	}

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(reader, os.Stdout, opts); err != nil {
		logger.Error().Err(err).Msg("game stopped")
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}

// openAudio starts the speaker when enabled. A missing audio device only
// silences the game.
func openAudio(cfg config.AudioConfig, logger zerolog.Logger) (audio.Player, func()) {
	if !cfg.Enabled {
		logger.Info().Msg("audio disabled")
		return audio.Silent{}, func() {}
	}

	p, err := audio.NewSpeakerPlayer(cfg.Volume, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		return audio.Silent{}, func() {}
	}
	return p, p.Close
}
