package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tripplanner/internal/types"
)

func newEvaluateCmd(opts *rootOptions) *cobra.Command {
	var planPath string
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run the evaluation suite on a plan file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(opts.requestPath)
			if err != nil {
				return err
			}
			plan, err := loadPlan(planPath)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.suite.Run(cmd.Context(), a.env, req, plan)
			if err != nil {
				return err
			}
			path, err := writeJSON(opts.outDir, "evaluation.json", res)
			if err != nil {
				return err
			}
			printEvaluation(cmd.OutOrStdout(), "plan", res)
			fmt.Fprintf(cmd.OutOrStdout(), "-> %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&planPath, "plan", "", "travel plan JSON file")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func printEvaluation(w io.Writer, label string, res types.EvaluationResult) {
	status := "PASS"
	if !res.Success {
		status = "FAIL"
	}
	fmt.Fprintf(w, "%s: %s (%d checks, %d failures)\n", label, status, len(res.EvalFunctions), len(res.Failures))
	for _, f := range res.Failures {
		fmt.Fprintf(w, "  - %s\n", f)
	}
}
