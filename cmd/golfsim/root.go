package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/golf-sim/config"
	"github.com/lixenwraith/golf-sim/course"
	"github.com/lixenwraith/golf-sim/observability"
	"github.com/lixenwraith/golf-sim/physics"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// app carries state resolved in PersistentPreRunE to the subcommands
type app struct {
	cfgFile    string
	courseFile string

	cfg    *config.Config
	logger *zap.Logger
	runID  string
	// logSink overrides stderr for the console log core, tests only
	logSink zapcore.WriteSyncer
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&app{})
}

func newRootCmdFor(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "golfsim",
		Short:         "Golf shot simulator: trajectories, collisions and shot sweeps over a course",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync()
		},
	}
	root.SetVersionTemplate("golfsim version {{.Version}}\n")
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (yaml, toml or json)")
	root.PersistentFlags().StringVar(&a.courseFile, "course", "", "course file, the built-in practice green when empty")

	root.AddCommand(newSimulateCmd(a), newSweepCmd(a), newEvolveCmd(a), newCompareCmd(a), newVersionCmd())
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	sink := a.logSink
	if sink == nil {
		// stdout carries command output
		sink = zapcore.Lock(os.Stderr)
	}
	observability.Initialize(cfg.Logger, sink)

	a.runID = uuid.NewString()
	a.logger = observability.GetLogger().With(zap.String("run_id", a.runID))
	a.logger.Debug("configuration loaded", zap.String("config", a.cfgFile), zap.String("course", a.courseFile))
	return nil
}

func (a *app) loadCourse() (*course.Course, error) {
	if a.courseFile == "" {
		return course.Default(), nil
	}
	return course.Load(a.courseFile)
}

func (a *app) engineFor(c *course.Course) (*physics.Engine, error) {
	return c.NewEngine(a.cfg.Engine, a.logger)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "golfsim version %s\n", Version)
		},
	}
}
