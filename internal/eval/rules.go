package eval

import (
	"context"
	"fmt"
	"strings"

	"tripplanner/internal/types"
)

// DatesMatch requires the plan to span exactly the requested stay.
type DatesMatch struct{}

func (DatesMatch) Name() string { return "eval_start_end_dates_match" }

func (c DatesMatch) Run(_ context.Context, _ *Env, req types.VacationRequest, plan types.TravelPlan) error {
	if req.DateOfArrival != plan.StartDate || req.DateOfDeparture != plan.EndDate {
		return failf(c.Name(), "Dates do not match: %s != %s or %s != %s",
			req.DateOfArrival, plan.StartDate, req.DateOfDeparture, plan.EndDate)
	}
	if plan.StartDate.After(plan.EndDate) {
		return failf(c.Name(), "Start date is after end date: %s > %s", plan.StartDate, plan.EndDate)
	}
	return nil
}

// CostIsAccurate requires the stated total to equal the sum of prices.
type CostIsAccurate struct{}

func (CostIsAccurate) Name() string { return "eval_total_cost_is_accurate" }

func (c CostIsAccurate) Run(_ context.Context, _ *Env, _ types.VacationRequest, plan types.TravelPlan) error {
	if calculated := plan.CalculatedCost(); calculated != plan.TotalCost {
		return failf(c.Name(), "Stated total cost does not match calculated total cost: %d != %d", calculated, plan.TotalCost)
	}
	return nil
}

// CostWithinBudget compares the stated total, not the calculated one.
type CostWithinBudget struct{}

func (CostWithinBudget) Name() string { return "eval_total_cost_is_within_budget" }

func (c CostWithinBudget) Run(_ context.Context, _ *Env, req types.VacationRequest, plan types.TravelPlan) error {
	if plan.TotalCost > req.Budget {
		return failf(c.Name(), "Total cost exceeds budget: %d > %d", plan.TotalCost, req.Budget)
	}
	return nil
}

// EventsMatchReference requires every recommended activity to exist in the
// reference lookup and to be identical to it, field for field.
type EventsMatchReference struct{}

func (EventsMatchReference) Name() string { return "eval_itinerary_events_match_actual_events" }

func (c EventsMatchReference) Run(_ context.Context, env *Env, _ types.VacationRequest, plan types.TravelPlan) error {
	if env.Activities == nil {
		return fmt.Errorf("%w: activity lookup", ErrMissingDependency)
	}
	var missing, mismatched []string
	for _, rec := range plan.Recommendations() {
		id := rec.Activity.ActivityID
		ref, ok := env.Activities.ActivityByID(id)
		switch {
		case !ok:
			missing = append(missing, id)
		case !ref.Equal(rec.Activity):
			env.logger().Printf("eval: event %s differs from reference", id)
			mismatched = append(mismatched, id)
		}
	}
	if len(missing) > 0 || len(mismatched) > 0 {
		return failf(c.Name(), "Missing event IDs: %s\nNon-matching event IDs: %s", bracket(missing), bracket(mismatched))
	}
	return nil
}

// InterestsSatisfied requires each traveler to share at least one interest
// with at least one recommended activity.
type InterestsSatisfied struct{}

func (InterestsSatisfied) Name() string { return "eval_itinerary_satisfies_interests" }

func (c InterestsSatisfied) Run(_ context.Context, env *Env, req types.VacationRequest, plan types.TravelPlan) error {
	recs := plan.Recommendations()
	var unmatched []string
	for _, t := range req.Travelers {
		interests := types.NewInterestSet(t.Interests...)
		hits := 0
		for _, rec := range recs {
			if m := interests.Intersect(rec.Activity.RelatedInterests); len(m) > 0 {
				hits++
				env.logger().Printf("eval: traveler %s matches %s at %s", t.Name, types.JoinInterests(m), rec.Activity.Name)
			}
		}
		if hits == 0 {
			unmatched = append(unmatched, t.Name)
		}
	}
	if len(unmatched) > 0 {
		return failf(c.Name(), "Travelers %s have no interest matches in the itinerary.", bracket(unmatched))
	}
	return nil
}

func bracket(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}
