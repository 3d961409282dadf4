package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tripplanner/internal/itinerary"
	"tripplanner/internal/llm"
	"tripplanner/internal/llmtool"
	"tripplanner/internal/types"
)

// revisionReport is written to evaluation.json by the revise command.
type revisionReport struct {
	Initial types.EvaluationResult `json:"initial"`
	Revised types.EvaluationResult `json:"revised"`
}

func newReviseCmd(opts *rootOptions) *cobra.Command {
	var planPath string
	cmd := &cobra.Command{
		Use:   "revise",
		Short: "Build or load a plan and let the LLM reviewer revise it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calls := &llm.CallRecorder{}
			ctx := llm.WithHook(cmd.Context(), calls)
			out := cmd.OutOrStdout()
			req, err := loadRequest(opts.requestPath)
			if err != nil {
				return err
			}
			a, err := newApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			var initial types.TravelPlan
			if planPath != "" {
				initial, err = loadPlan(planPath)
			} else {
				initial, err = itinerary.NewBuilder(a.catalog, a.logger).Build(req)
			}
			if err != nil {
				return err
			}
			if _, err := writeJSON(opts.outDir, "plan_initial.json", initial); err != nil {
				return err
			}
			before, err := a.suite.Run(ctx, a.env, req, initial)
			if err != nil {
				return err
			}
			printEvaluation(out, "initial", before)

			reviser := &llmtool.Reviser{
				LLM:      a.client,
				Tools:    a.toolSet(&req),
				Model:    a.cfg.Model,
				MaxSteps: a.cfg.MaxReactSteps,
				Logger:   a.logger,
			}
			revised, tr, runErr := reviser.Run(ctx, initial)
			if tr != nil {
				if _, err := writeJSON(opts.outDir, "transcript.json", tr); err != nil {
					return err
				}
			}
			if _, err := writeJSON(opts.outDir, "llm_calls.json", calls.Calls()); err != nil {
				return err
			}
			if runErr != nil {
				return runErr
			}
			if _, err := writeJSON(opts.outDir, "plan_revised.json", revised); err != nil {
				return err
			}
			after, err := a.suite.Run(ctx, a.env, req, revised)
			if err != nil {
				return err
			}
			printEvaluation(out, "revised", after)
			path, err := writeJSON(opts.outDir, "evaluation.json", revisionReport{Initial: before, Revised: after})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "session %s finished in %d steps -> %s\n", tr.SessionID, tr.StepCount(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&planPath, "plan", "", "start from this plan instead of building one")
	return cmd
}
