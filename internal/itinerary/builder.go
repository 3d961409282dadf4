// Package itinerary drafts the first version of a travel plan from the mock
// oracle, without any model involvement.
package itinerary

import (
	"fmt"
	"log"
	"sort"

	"tripplanner/internal/types"
)

// Oracle is the slice of the mock catalog the builder reads.
type Oracle interface {
	Weather(date types.Date, city string) (types.Weather, error)
	Activities(date types.Date, city string) []types.Activity
}

const (
	defaultMaxPerDay = 2
	goodValuePrice   = 15
)

type Builder struct {
	Oracle    Oracle
	Logger    *log.Logger
	MaxPerDay int
}

func NewBuilder(o Oracle, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{Oracle: o, Logger: logger, MaxPerDay: defaultMaxPerDay}
}

type candidate struct {
	activity types.Activity
	score    float64
}

// Build picks up to MaxPerDay activities for every date of the stay, best
// interest overlap per unit price first, never exceeding the remaining budget.
// The stated total is the exact sum of chosen prices.
func (b *Builder) Build(req types.VacationRequest) (types.TravelPlan, error) {
	if err := req.Validate(); err != nil {
		return types.TravelPlan{}, err
	}
	dates, err := req.Dates()
	if err != nil {
		return types.TravelPlan{}, err
	}
	maxPerDay := b.MaxPerDay
	if maxPerDay <= 0 {
		maxPerDay = defaultMaxPerDay
	}
	interests := req.InterestUnion()

	plan := types.TravelPlan{
		City:          req.Destination,
		StartDate:     req.DateOfArrival,
		EndDate:       req.DateOfDeparture,
		ItineraryDays: make([]types.ItineraryDay, 0, len(dates)),
	}
	committed := 0
	for _, date := range dates {
		weather, err := b.Oracle.Weather(date, req.Destination)
		if err != nil {
			return types.TravelPlan{}, fmt.Errorf("itinerary: %s: %w", date, err)
		}
		ranked := rank(b.Oracle.Activities(date, req.Destination), interests)

		remaining := req.Budget - committed
		dayCost := 0
		recs := []types.ActivityRecommendation{}
		for _, c := range ranked {
			if len(recs) >= maxPerDay {
				break
			}
			if dayCost+c.activity.Price > remaining {
				continue
			}
			dayCost += c.activity.Price
			recs = append(recs, types.ActivityRecommendation{
				Activity:                 c.activity,
				ReasonsForRecommendation: reasons(c.activity, interests),
			})
		}
		b.Logger.Printf("itinerary: %s candidates=%d picked=%d day_cost=%d", date, len(ranked), len(recs), dayCost)

		plan.ItineraryDays = append(plan.ItineraryDays, types.ItineraryDay{
			Date:                    date,
			Weather:                 weather,
			ActivityRecommendations: recs,
		})
		committed += dayCost
	}
	plan.TotalCost = committed
	return plan, nil
}

// rank orders candidates by score, then name, then id, all descending.
func rank(acts []types.Activity, interests types.InterestSet) []candidate {
	out := make([]candidate, 0, len(acts))
	for _, a := range acts {
		overlap := len(interests.Intersect(a.RelatedInterests))
		out = append(out, candidate{activity: a, score: float64(overlap) - float64(a.Price)/10})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.activity.Name != b.activity.Name {
			return a.activity.Name > b.activity.Name
		}
		return a.activity.ActivityID > b.activity.ActivityID
	})
	return out
}

func reasons(a types.Activity, interests types.InterestSet) []string {
	var out []string
	if matched := interests.Intersect(a.RelatedInterests); len(matched) > 0 {
		out = append(out, "Matches interests: "+types.JoinInterests(matched))
	} else {
		out = append(out, "No direct interest match")
	}
	if a.Price <= goodValuePrice {
		out = append(out, "Good value")
	}
	return out
}
