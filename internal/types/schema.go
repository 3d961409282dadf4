package types

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"tripplanner/internal/util/jsonutil"
)

const (
	datePattern      = `^\d{4}-\d{2}-\d{2}$`
	timestampPattern = `^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}(:\d{2})?$`
)

var (
	planSchemaOnce sync.Once
	planSchema     *jsonschema.Schema
	planResolved   *jsonschema.Resolved
	planSchemaErr  error
)

func loadPlanSchema() {
	s, err := jsonschema.For[TravelPlan](nil)
	if err != nil {
		planSchemaErr = fmt.Errorf("types: infer travel plan schema: %w", err)
		return
	}
	s.Title = "TravelPlan"
	s.Properties["start_date"].Pattern = datePattern
	s.Properties["end_date"].Pattern = datePattern

	day := s.Properties["itinerary_days"].Items
	day.Properties["date"].Pattern = datePattern
	activity := day.Properties["activity_recommendations"].Items.Properties["activity"]
	activity.Properties["start_time"].Pattern = timestampPattern
	activity.Properties["end_time"].Pattern = timestampPattern
	minPrice := 0.0
	activity.Properties["price"].Minimum = &minPrice
	enum := make([]any, 0, len(knownInterests))
	for _, i := range AllInterests() {
		enum = append(enum, string(i))
	}
	activity.Properties["related_interests"].Items.Enum = enum

	r, err := s.Resolve(nil)
	if err != nil {
		planSchemaErr = fmt.Errorf("types: resolve travel plan schema: %w", err)
		return
	}
	planSchema, planResolved = s, r
}

// TravelPlanSchema returns the JSON Schema of TravelPlan. Callers must not
// mutate it.
func TravelPlanSchema() (*jsonschema.Schema, error) {
	planSchemaOnce.Do(loadPlanSchema)
	return planSchema, planSchemaErr
}

// TravelPlanSchemaJSON renders the schema for prompts.
func TravelPlanSchemaJSON() ([]byte, error) {
	s, err := TravelPlanSchema()
	if err != nil {
		return nil, err
	}
	return jsonutil.MarshalNoEscapeIndent(s, "", "  ")
}

// ValidateTravelPlanJSON checks raw against the TravelPlan schema, then
// decodes it strictly.
func ValidateTravelPlanJSON(raw []byte) (TravelPlan, error) {
	planSchemaOnce.Do(loadPlanSchema)
	if planSchemaErr != nil {
		return TravelPlan{}, planSchemaErr
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return TravelPlan{}, fmt.Errorf("types: travel plan is not JSON: %w", err)
	}
	if err := planResolved.Validate(instance); err != nil {
		return TravelPlan{}, fmt.Errorf("types: travel plan does not match schema: %w", err)
	}
	return DecodeTravelPlan(raw)
}
