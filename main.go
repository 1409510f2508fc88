package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/lixenwraith/golf-sim/audio"
	"github.com/lixenwraith/golf-sim/config"
	"github.com/lixenwraith/golf-sim/course"
	"github.com/lixenwraith/golf-sim/observability"
	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/sweep"
)

// crashScreen is restored by handleCrash before the stack is printed
var crashScreen tcell.Screen

// handleCrash resets the terminal and prints the stack trace
func handleCrash(r any) {
	if r == nil {
		return
	}
	if crashScreen != nil {
		crashScreen.Fini()
	}
	observability.GetLogger().Error("viewer crashed", zap.Any("panic", r))
	observability.Sync()

	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

func main() {
	cfgFile := pflag.StringP("config", "c", "", "config file (yaml, toml or json)")
	courseFile := pflag.String("course", "", "course file, the built-in practice green when empty")
	mute := pflag.Bool("mute", false, "disable sound")
	pflag.Parse()

	if err := run(*cfgFile, *courseFile, *mute); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile, courseFile string, mute bool) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	// the terminal belongs to tcell, logs only reach the file sink
	observability.InitializeQuiet(cfg.Logger)
	defer observability.Sync()
	logger := observability.GetLogger()

	c := course.Default()
	if courseFile != "" {
		if c, err = course.Load(courseFile); err != nil {
			return err
		}
	}
	engine, err := c.NewEngine(cfg.Engine, logger)
	if err != nil {
		return err
	}

	var sound *audio.SoundManager
	if cfg.Viewer.Audio && !mute {
		sound = audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			// Non-fatal, the viewer runs without sound
			logger.Warn("audio initialization failed", zap.Error(err))
		}
		defer sound.Cleanup()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	crashScreen = screen
	defer screen.Fini()
	defer func() { handleCrash(recover()) }()

	v := NewViewer(screen, c, engine, sound, logger)
	v.pointsPerFrame = cfg.Viewer.PointsPerFrame
	v.sweepOptions = sweep.Options{Workers: cfg.Sweep.Workers, Heuristic: cfg.Sweep.Heuristic, Logger: logger}
	v.evolveOptions = sweep.EvolveOptions{
		Population:       cfg.Evolve.Population,
		Generations:      cfg.Evolve.Generations,
		Elite:            cfg.Evolve.Elite,
		MutationRate:     cfg.Evolve.MutationRate,
		MutationStrength: cfg.Evolve.MutationStrength,
		Seed:             cfg.Evolve.Seed,
		MinSpeed:         cfg.Sweep.MinSpeed,
		MaxSpeed:         cfg.Sweep.MaxSpeed,
	}

	logger.Info("viewer started", zap.String("course", c.Name))
	v.run(context.Background())
	return nil
}

func (v *Viewer) run(ctx context.Context) {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, parameter.EventQueueSize)
	go func() {
		defer func() { handleCrash(recover()) }()
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ctx, ev) {
				return
			}

		case <-ticker.C:
			v.update()
			v.draw()

		case <-ctx.Done():
			return
		}
	}
}
