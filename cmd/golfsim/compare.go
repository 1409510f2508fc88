package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/golf-sim/parameter"
	"github.com/lixenwraith/golf-sim/vmath"
)

type compareRow struct {
	StepSize  float64 `json:"step_size"`
	Final     point   `json:"final"`
	Deviation float64 `json:"deviation"`
	Steps     int     `json:"steps"`
	ElapsedMS float64 `json:"elapsed_ms"`
}

type compareReport struct {
	RunID     string       `json:"run_id"`
	Course    string       `json:"course"`
	Velocity  point        `json:"velocity"`
	Reference float64      `json:"reference_step_size"`
	Rows      []compareRow `json:"rows"`
}

func newCompareCmd(a *app) *cobra.Command {
	var (
		vx, vy float64
		steps  []float64
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run one shot at several step sizes and report the drift from a fine reference run",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCourse()
			if err != nil {
				return err
			}
			e, err := a.engineFor(c)
			if err != nil {
				return err
			}
			v0 := vmath.V(vx, vy)
			res, err := e.CompareStepSizes(cmd.Context(), v0, c.Ball, c.Terrain, steps)
			if err != nil {
				return err
			}

			report := compareReport{
				RunID:     a.runID,
				Course:    c.Name,
				Velocity:  toPoint(v0),
				Reference: parameter.ReferenceStepSize,
			}
			for _, r := range res {
				report.Rows = append(report.Rows, compareRow{
					StepSize:  r.StepSize,
					Final:     toPoint(r.Final),
					Deviation: r.Deviation,
					Steps:     r.Steps,
					ElapsedMS: float64(r.Elapsed.Microseconds()) / 1000,
				})
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().Float64Var(&vx, "vx", 3, "initial velocity x")
	cmd.Flags().Float64Var(&vy, "vy", 0, "initial velocity y")
	cmd.Flags().Float64SliceVar(&steps, "steps", []float64{0.05, 0.02, 0.01, 0.005}, "step sizes to compare")
	return cmd
}
