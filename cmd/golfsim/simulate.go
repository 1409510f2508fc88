package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/golf-sim/course"
	"github.com/lixenwraith/golf-sim/physics"
	"github.com/lixenwraith/golf-sim/vmath"
)

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toPoint(v vmath.Vec2) point { return point{X: v.X, Y: v.Y} }

type eventReport struct {
	Step       int     `json:"step"`
	Kind       string  `json:"kind"`
	Position   point   `json:"position"`
	Obstacle   uint64  `json:"obstacle,omitempty"`
	Bounciness float64 `json:"bounciness,omitempty"`
}

type shotReport struct {
	Velocity point         `json:"velocity"`
	Final    point         `json:"final"`
	Steps    int           `json:"steps"`
	Distance float64       `json:"distance_to_target"`
	Holed    bool          `json:"holed"`
	Events   []eventReport `json:"events,omitempty"`
	Path     []point       `json:"path,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type simulateReport struct {
	RunID  string       `json:"run_id"`
	Course string       `json:"course"`
	Shots  []shotReport `json:"shots"`
}

type simulateFlags struct {
	vx, vy       float64
	angle, speed float64
	path, events bool
}

func newSimulateCmd(a *app) *cobra.Command {
	var f simulateFlags
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate shots from the course start and print the trajectories as JSON",
		Long: `Simulate one shot given by --vx/--vy or --angle/--speed, or every shot listed
in the course file when no velocity is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCourse()
			if err != nil {
				return err
			}
			shots, err := f.shots(cmd, c)
			if err != nil {
				return err
			}
			e, err := a.engineFor(c)
			if err != nil {
				return err
			}

			report := simulateReport{RunID: a.runID, Course: c.Name}
			for _, v0 := range shots {
				report.Shots = append(report.Shots, a.simulate(e, c, v0, f))
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().Float64Var(&f.vx, "vx", 0, "initial velocity x")
	cmd.Flags().Float64Var(&f.vy, "vy", 0, "initial velocity y")
	cmd.Flags().Float64Var(&f.angle, "angle", 0, "shot direction in degrees counter-clockwise from +x")
	cmd.Flags().Float64Var(&f.speed, "speed", 0, "shot speed, used with --angle")
	cmd.Flags().BoolVar(&f.path, "path", false, "include every trajectory position")
	cmd.Flags().BoolVar(&f.events, "events", true, "include bounce and stop events")
	cmd.MarkFlagsMutuallyExclusive("vx", "angle")
	cmd.MarkFlagsMutuallyExclusive("vy", "angle")
	return cmd
}

// shots resolves the velocities to simulate from flags, then from the course file
func (f simulateFlags) shots(cmd *cobra.Command, c *course.Course) ([]vmath.Vec2, error) {
	flags := cmd.Flags()
	switch {
	case flags.Changed("vx") || flags.Changed("vy"):
		return []vmath.Vec2{vmath.V(f.vx, f.vy)}, nil
	case flags.Changed("angle") || flags.Changed("speed"):
		if !(f.speed > 0) {
			return nil, fmt.Errorf("--speed must be positive, got %g", f.speed)
		}
		rad := f.angle * math.Pi / 180
		return []vmath.Vec2{vmath.FromAngle(rad).Scale(f.speed)}, nil
	case len(c.Shots) > 0:
		return c.Shots, nil
	default:
		return nil, errors.New("no shot given: use --vx/--vy, --angle/--speed or list shots in the course")
	}
}

// simulate runs one shot, a step limit is reported in the output rather than failing the command
func (a *app) simulate(e *physics.Engine, c *course.Course, v0 vmath.Vec2, f simulateFlags) shotReport {
	tr, err := e.Trace(v0, c.Ball, c.Terrain)
	target := c.Terrain.Target
	r := shotReport{
		Velocity: toPoint(v0),
		Final:    toPoint(tr.Final()),
		Steps:    tr.Steps(),
		Distance: target.DistanceTo(tr.Final()),
		Holed:    err == nil && target.Contains(tr.Final()),
	}
	if err != nil {
		a.logger.Warn("shot did not settle", zap.Stringer("velocity", v0), zap.Error(err))
		r.Error = err.Error()
	}
	if f.events {
		for _, ev := range tr.Events {
			r.Events = append(r.Events, eventReport{
				Step:       ev.Step,
				Kind:       ev.Kind.String(),
				Position:   toPoint(ev.Position),
				Obstacle:   uint64(ev.Obstacle),
				Bounciness: ev.Bounciness,
			})
		}
	}
	if f.path {
		r.Path = make([]point, len(tr.Positions))
		for i, p := range tr.Positions {
			r.Path[i] = toPoint(p)
		}
	}
	a.logger.Info("shot simulated",
		zap.Stringer("velocity", v0),
		zap.Int("steps", r.Steps),
		zap.Float64("distance", r.Distance),
		zap.Bool("holed", r.Holed))
	return r
}
