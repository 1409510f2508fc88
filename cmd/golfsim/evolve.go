package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/golf-sim/sweep"
)

type generationReport struct {
	Generation int     `json:"generation"`
	Best       float64 `json:"best_score"`
	Average    float64 `json:"average_score"`
}

type evolveReport struct {
	RunID     string             `json:"run_id"`
	Course    string             `json:"course"`
	Heuristic string             `json:"heuristic"`
	Seed      uint64             `json:"seed"`
	Best      sweepRanking       `json:"best"`
	History   []generationReport `json:"history"`
}

func newEvolveCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "evolve",
		Short: "Search for the best shot with a genetic algorithm over angle and speed",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, ec := a.cfg.Sweep, a.cfg.Evolve
			flags := cmd.Flags()
			if flags.Changed("workers") {
				sc.Workers, _ = flags.GetInt("workers")
			}
			if flags.Changed("heuristic") {
				sc.Heuristic, _ = flags.GetString("heuristic")
			}
			if flags.Changed("min-speed") {
				sc.MinSpeed, _ = flags.GetFloat64("min-speed")
			}
			if flags.Changed("max-speed") {
				sc.MaxSpeed, _ = flags.GetFloat64("max-speed")
			}
			if flags.Changed("population") {
				ec.Population, _ = flags.GetInt("population")
			}
			if flags.Changed("generations") {
				ec.Generations, _ = flags.GetInt("generations")
			}
			if flags.Changed("seed") {
				ec.Seed, _ = flags.GetUint64("seed")
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
			ev, err := s.Evolve(cmd.Context(), c.Ball, c.Terrain, sweep.EvolveOptions{
				Population:       ec.Population,
				Generations:      ec.Generations,
				Elite:            ec.Elite,
				MutationRate:     ec.MutationRate,
				MutationStrength: ec.MutationStrength,
				Seed:             ec.Seed,
				MinSpeed:         sc.MinSpeed,
				MaxSpeed:         sc.MaxSpeed,
			})
			if err != nil {
				return err
			}

			report := evolveReport{
				RunID:     a.runID,
				Course:    c.Name,
				Heuristic: sc.Heuristic,
				Seed:      ec.Seed,
				Best:      toRanking(1, ev.Best),
			}
			// fitness is the negated score
			for _, h := range ev.History {
				report.History = append(report.History, generationReport{
					Generation: h.Generation,
					Best:       -h.BestScore,
					Average:    -h.AverageScore,
				})
			}

			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), report)
			case "table":
				return writeEvolveTable(cmd.OutOrStdout(), report)
			default:
				return fmt.Errorf("unknown format %q (json, table)", format)
			}
		},
	}

	// defaults shown here are informational, unset flags keep the configured values
	cmd.Flags().Int("workers", 0, "concurrent simulations, 0 means GOMAXPROCS")
	cmd.Flags().String("heuristic", "final", "fitness heuristic: final, closest, finalClosest")
	cmd.Flags().Float64("min-speed", 1, "slowest shot speed")
	cmd.Flags().Float64("max-speed", 5, "fastest shot speed")
	cmd.Flags().Int("population", 32, "candidates per generation")
	cmd.Flags().Int("generations", 40, "maximum generations")
	cmd.Flags().Uint64("seed", 0, "random seed, 0 for a random search")
	cmd.Flags().StringVarP(&format, "format", "o", "table", "output format: table or json")
	return cmd
}

func writeEvolveTable(w io.Writer, r evolveReport) error {
	b := r.Best
	fmt.Fprintf(w, "course %q, heuristic %s, %d generations, run %s\n",
		r.Course, r.Heuristic, len(r.History)-1, r.RunID)
	fmt.Fprintf(w, "best shot (%.3f, %.3f) score %.4f final (%.2f, %.2f) holed %t\n\n",
		b.Velocity.X, b.Velocity.Y, b.Score, b.Final.X, b.Final.Y, b.Holed)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GENERATION\tBEST\tAVERAGE")
	for _, h := range r.History {
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\n", h.Generation, h.Best, h.Average)
	}
	return tw.Flush()
}
