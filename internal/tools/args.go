package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"tripplanner/internal/types"
)

// Args is a decoded tool call. The concrete type identifies the tool.
type Args interface {
	Kind() Kind
	sealed()
}

type CalculatorArgs struct {
	InputExpression string `json:"input_expression" jsonschema:"arithmetic expression, e.g. 20 + 15 * 2"`
}

type ActivitiesArgs struct {
	Date types.Date `json:"date" jsonschema:"date in YYYY-MM-DD format"`
	City string     `json:"city" jsonschema:"city name; only AgentsVille is supported"`
}

// RunEvalsArgs evaluates TravelPlan against VacationInfo, or against the
// session's request when VacationInfo is omitted.
type RunEvalsArgs struct {
	TravelPlan   types.TravelPlan       `json:"travel_plan" jsonschema:"the travel plan to evaluate"`
	VacationInfo *types.VacationRequest `json:"vacation_info,omitempty" jsonschema:"the original vacation request; defaults to the current one"`
}

type FinalAnswerArgs struct {
	FinalOutput types.TravelPlan `json:"final_output" jsonschema:"the final travel plan"`
}

func (CalculatorArgs) Kind() Kind  { return KindCalculator }
func (ActivitiesArgs) Kind() Kind  { return KindActivitiesByDate }
func (RunEvalsArgs) Kind() Kind    { return KindRunEvals }
func (FinalAnswerArgs) Kind() Kind { return KindFinalAnswer }

func (CalculatorArgs) sealed()  {}
func (ActivitiesArgs) sealed()  {}
func (RunEvalsArgs) sealed()    {}
func (FinalAnswerArgs) sealed() {}

var ErrBadArguments = errors.New("tools: bad arguments")

// Decode parses raw arguments for kind. Unknown keys are rejected.
// The final answer accepts either {"final_output": plan} or the plan itself;
// its schema validation happens in DecodeFinalAnswer.
func Decode(kind Kind, raw json.RawMessage) (Args, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		raw = json.RawMessage(`{}`)
	}
	switch kind {
	case KindCalculator:
		var a CalculatorArgs
		if err := decodeStrict(raw, &a); err != nil {
			return nil, fmt.Errorf("%w for %s: %v", ErrBadArguments, kind, err)
		}
		return a, nil
	case KindActivitiesByDate:
		var a ActivitiesArgs
		if err := decodeStrict(raw, &a); err != nil {
			return nil, fmt.Errorf("%w for %s: %v", ErrBadArguments, kind, err)
		}
		return a, nil
	case KindRunEvals:
		var a RunEvalsArgs
		if err := decodeStrict(raw, &a); err != nil {
			return nil, fmt.Errorf("%w for %s: %v", ErrBadArguments, kind, err)
		}
		if err := a.TravelPlan.Validate(); err != nil {
			return nil, fmt.Errorf("%w for %s: %v", ErrBadArguments, kind, err)
		}
		return a, nil
	case KindFinalAnswer:
		plan, err := DecodeFinalAnswer(raw)
		if err != nil {
			return nil, err
		}
		return FinalAnswerArgs{FinalOutput: plan}, nil
	default:
		return nil, fmt.Errorf("tools: unknown kind %d", int(kind))
	}
}

// DecodeFinalAnswer extracts the plan from final-answer arguments and
// validates it against the TravelPlan schema.
func DecodeFinalAnswer(raw json.RawMessage) (types.TravelPlan, error) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return types.TravelPlan{}, fmt.Errorf("%w for %s: %v", ErrBadArguments, KindFinalAnswer, err)
	}
	planRaw := []byte(raw)
	if inner, ok := wrapper["final_output"]; ok {
		if len(wrapper) != 1 {
			return types.TravelPlan{}, fmt.Errorf("%w for %s: unexpected keys next to final_output", ErrBadArguments, KindFinalAnswer)
		}
		planRaw = inner
	}
	return types.ValidateTravelPlanJSON(planRaw)
}

func decodeStrict(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after arguments")
	}
	return nil
}
