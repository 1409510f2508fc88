package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/golf-sim/sweep"
)

type sweepReport struct {
	RunID      string         `json:"run_id"`
	Course     string         `json:"course"`
	Heuristic  string         `json:"heuristic"`
	Candidates int            `json:"candidates"`
	Settled    int            `json:"settled"`
	Best       []sweepRanking `json:"best"`
}

type sweepRanking struct {
	Rank     int     `json:"rank"`
	Velocity point   `json:"velocity"`
	Score    float64 `json:"score"`
	Final    point   `json:"final"`
	Steps    int     `json:"steps"`
	Bounces  int     `json:"bounces"`
	Holed    bool    `json:"holed"`
	Water    bool    `json:"water"`
}

func newSweepCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a grid of shot angles and speeds concurrently and rank them against the target",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.Sweep
			flags := cmd.Flags()
			if flags.Changed("workers") {
				sc.Workers, _ = flags.GetInt("workers")
			}
			if flags.Changed("angles") {
				sc.Angles, _ = flags.GetInt("angles")
			}
			if flags.Changed("speeds") {
				sc.Speeds, _ = flags.GetInt("speeds")
			}
			if flags.Changed("min-speed") {
				sc.MinSpeed, _ = flags.GetFloat64("min-speed")
			}
			if flags.Changed("max-speed") {
				sc.MaxSpeed, _ = flags.GetFloat64("max-speed")
			}
			if flags.Changed("heuristic") {
				sc.Heuristic, _ = flags.GetString("heuristic")
			}
			if flags.Changed("top") {
				sc.Top, _ = flags.GetInt("top")
			}

			c, err := a.loadCourse()
			if err != nil {
				return err
			}
			e, err := a.engineFor(c)
			if err != nil {
				return err
			}
			s, err := sweep.New(e, sweep.Options{Workers: sc.Workers, Heuristic: sc.Heuristic, Logger: a.logger})
			if err != nil {
				return err
			}
			candidates, err := sweep.Grid(sc.Angles, sc.Speeds, sc.MinSpeed, sc.MaxSpeed)
			if err != nil {
				return err
			}

			results, err := s.Evaluate(cmd.Context(), c.Ball, c.Terrain, candidates)
			if err != nil {
				return err
			}

			report := sweepReport{
				RunID:      a.runID,
				Course:     c.Name,
				Heuristic:  sc.Heuristic,
				Candidates: len(candidates),
			}
			for _, r := range results {
				if r.Err == nil {
					report.Settled++
				}
			}
			for i, r := range sweep.Rank(results) {
				if i >= sc.Top || r.Err != nil {
					break
				}
				report.Best = append(report.Best, toRanking(i+1, r))
			}

			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), report)
			case "table":
				return writeSweepTable(cmd.OutOrStdout(), report)
			default:
				return fmt.Errorf("unknown format %q (json, table)", format)
			}
		},
	}

	// defaults shown here are informational, unset flags keep the configured values
	cmd.Flags().Int("workers", 0, "concurrent simulations, 0 means GOMAXPROCS")
	cmd.Flags().Int("angles", 36, "shot directions evenly spaced around the ball")
	cmd.Flags().Int("speeds", 5, "shot speeds per direction")
	cmd.Flags().Float64("min-speed", 1, "slowest candidate speed")
	cmd.Flags().Float64("max-speed", 5, "fastest candidate speed")
	cmd.Flags().String("heuristic", "final", "ranking heuristic: final, closest, finalClosest")
	cmd.Flags().Int("top", 5, "number of ranked shots to print")
	cmd.Flags().StringVarP(&format, "format", "o", "table", "output format: table or json")
	return cmd
}

func toRanking(rank int, r sweep.Result) sweepRanking {
	return sweepRanking{
		Rank:     rank,
		Velocity: toPoint(r.Velocity),
		Score:    r.Score,
		Final:    toPoint(r.Final),
		Steps:    r.Steps,
		Bounces:  r.Bounces,
		Holed:    r.Holed,
		Water:    r.Water,
	}
}

func writeSweepTable(w io.Writer, r sweepReport) error {
	fmt.Fprintf(w, "course %q, %d/%d shots settled, heuristic %s, run %s\n\n",
		r.Course, r.Settled, r.Candidates, r.Heuristic, r.RunID)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tVX\tVY\tSCORE\tFINAL\tSTEPS\tBOUNCES\tHOLED\tWATER")
	for _, b := range r.Best {
		fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%.4f\t(%.2f, %.2f)\t%d\t%d\t%t\t%t\n",
			b.Rank, b.Velocity.X, b.Velocity.Y, b.Score, b.Final.X, b.Final.Y, b.Steps, b.Bounces, b.Holed, b.Water)
	}
	return tw.Flush()
}
