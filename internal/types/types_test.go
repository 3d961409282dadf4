package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() TravelPlan {
	return TravelPlan{
		City:      "AgentsVille",
		StartDate: "2025-06-10",
		EndDate:   "2025-06-10",
		TotalCost: 20,
		ItineraryDays: []ItineraryDay{{
			Date:    "2025-06-10",
			Weather: Weather{Temperature: 31, TemperatureUnit: "celsius", Condition: "clear"},
			ActivityRecommendations: []ActivityRecommendation{{
				Activity: Activity{
					ActivityID:       "event-2025-06-10-0",
					Name:             "FutureTech Breakfast Meet-Up",
					StartTime:        "2025-06-10T09:00:00",
					EndTime:          "2025-06-10T11:00:00",
					Location:         "The Innovation Atrium",
					Description:      "Tech & coffee <demo>",
					Price:            20,
					RelatedInterests: []Interest{InterestTechnology},
				},
				ReasonsForRecommendation: []string{"Matches interests: technology"},
			}},
		}},
	}
}

func TestTravelPlanRoundTrip(t *testing.T) {
	plan := samplePlan()
	raw, err := EncodeJSON(plan)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Tech & coffee <demo>")

	back, err := DecodeTravelPlan(raw)
	require.NoError(t, err)
	assert.Equal(t, plan, back)

	again, err := EncodeJSON(back)
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(again))
}

func TestDecodeTravelPlanRejects(t *testing.T) {
	raw, err := EncodeJSON(samplePlan())
	require.NoError(t, err)

	cases := map[string]string{
		"unknown field":    strings.Replace(string(raw), `"city"`, `"town": "x", "city"`, 1),
		"bad date":         strings.Replace(string(raw), `"start_date":"2025-06-10"`, `"start_date":"2025-13-40"`, 1),
		"unknown interest": strings.Replace(string(raw), `"technology"`, `"knitting"`, 1),
		"trailing data":    string(raw) + ` {}`,
		"empty reasons":    strings.Replace(string(raw), `["Matches interests: technology"]`, `[]`, 1),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeTravelPlan([]byte(in))
			assert.Error(t, err)
		})
	}
}

func TestTimestampVariantsNormalise(t *testing.T) {
	var a Activity
	raw := `{"activity_id":"x","name":"X","start_time":"2025-06-10 09:00:00","end_time":"2025-06-10T10:00","location":"","description":"","price":0,"related_interests":["Art"]}`
	require.NoError(t, decodeStrict([]byte(raw), &a))
	assert.Equal(t, Timestamp("2025-06-10T09:00:00"), a.StartTime)
	assert.Equal(t, Timestamp("2025-06-10T10:00:00"), a.EndTime)
	assert.Equal(t, []Interest{InterestArt}, a.RelatedInterests)
	assert.Equal(t, MustDate("2025-06-10"), a.StartTime.Date())
	assert.Equal(t, "09:00", a.StartTime.Clock())
}

func TestVacationRequestValidation(t *testing.T) {
	ann, err := NewTraveler("Ann", 30, InterestArt)
	require.NoError(t, err)

	_, err = NewVacationRequest(nil, "AgentsVille", "2025-06-10", "2025-06-12", 10)
	assert.Error(t, err)
	_, err = NewVacationRequest([]Traveler{ann}, "AgentsVille", "2025-06-12", "2025-06-10", 10)
	assert.Error(t, err)
	_, err = NewVacationRequest([]Traveler{ann}, "AgentsVille", "2025-06-10", "2025-06-12", -1)
	assert.Error(t, err)
	_, err = NewTraveler("", 3)
	assert.Error(t, err)

	req, err := NewVacationRequest([]Traveler{ann}, "AgentsVille", "2025-06-10", "2025-06-12", 10)
	require.NoError(t, err)
	dates, err := req.Dates()
	require.NoError(t, err)
	assert.Equal(t, []Date{"2025-06-10", "2025-06-11", "2025-06-12"}, dates)

	raw, err := EncodeJSON(SampleVacationRequest())
	require.NoError(t, err)
	back, err := DecodeVacationRequest(raw)
	require.NoError(t, err)
	assert.Equal(t, SampleVacationRequest(), back)
}

func TestInterestSet(t *testing.T) {
	s := NewInterestSet(InterestMusic, InterestArt)
	got := s.Intersect([]Interest{InterestMusic, InterestSports, InterestArt, InterestMusic})
	assert.Equal(t, []Interest{InterestArt, InterestMusic}, got)
	assert.Equal(t, "art, music", JoinInterests(got))
	assert.Len(t, AllInterests(), 16)
}

func TestEvaluationSummaryNeverNull(t *testing.T) {
	raw, err := EncodeJSON(EvaluationResult{Success: true}.Summary())
	require.NoError(t, err)
	assert.Equal(t, `{"success":true,"failures":[]}`, string(raw))
}

func TestValidateTravelPlanJSON(t *testing.T) {
	raw, err := EncodeJSON(samplePlan())
	require.NoError(t, err)
	plan, err := ValidateTravelPlanJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, samplePlan(), plan)

	_, err = ValidateTravelPlanJSON([]byte(`{"city": "AgentsVille"}`))
	assert.Error(t, err)
	_, err = ValidateTravelPlanJSON([]byte(strings.Replace(string(raw), `"total_cost":20`, `"total_cost":"twenty"`, 1)))
	assert.Error(t, err)

	schema, err := TravelPlanSchemaJSON()
	require.NoError(t, err)
	assert.Contains(t, string(schema), `"itinerary_days"`)
	assert.Contains(t, string(schema), `"theatre"`)
}
