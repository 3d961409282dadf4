package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tripplanner/internal/itinerary"
	"tripplanner/internal/mock"
)

func newPlanCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Build the initial itinerary without calling an LLM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(opts.requestPath)
			if err != nil {
				return err
			}
			plan, err := itinerary.NewBuilder(mock.Default(), opts.logger()).Build(req)
			if err != nil {
				return err
			}
			path, err := writeJSON(opts.outDir, "plan_initial.json", plan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d days, total cost %d of %d -> %s\n",
				plan.City, len(plan.ItineraryDays), plan.TotalCost, req.Budget, path)
			return nil
		},
	}
}
