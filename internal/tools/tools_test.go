package tools

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/calc"
	"tripplanner/internal/eval"
	"tripplanner/internal/itinerary"
	"tripplanner/internal/llm"
	"tripplanner/internal/mock"
	"tripplanner/internal/types"
)

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func newSet(t *testing.T) (*Set, types.TravelPlan) {
	t.Helper()
	req := types.SampleVacationRequest()
	plan, err := itinerary.NewBuilder(mock.Default(), quiet()).Build(req)
	require.NoError(t, err)
	env := eval.NewEnv(mock.Default(), llm.NewFakeClient(), eval.EnvOptions{Logger: quiet()})
	return &Set{Catalog: mock.Default(), Suite: eval.NewSuite(), Env: env, Request: &req, Logger: quiet()}, plan
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("Calculator_Tool")
	assert.False(t, ok)
	_, ok = ParseKind(" calculator_tool")
	assert.False(t, ok)
	assert.Equal(t, "unknown_tool", Kind(99).String())
}

func TestDecodeStrict(t *testing.T) {
	args, err := Decode(KindCalculator, json.RawMessage(`{"input_expression": "2 + 3 * 4"}`))
	require.NoError(t, err)
	assert.Equal(t, CalculatorArgs{InputExpression: "2 + 3 * 4"}, args)

	_, err = Decode(KindCalculator, json.RawMessage(`{"expression": "1"}`))
	assert.ErrorIs(t, err, ErrBadArguments)

	_, err = Decode(KindActivitiesByDate, json.RawMessage(`{"date": "June 10", "city": "AgentsVille"}`))
	assert.ErrorIs(t, err, ErrBadArguments)

	_, err = Decode(KindRunEvals, nil)
	assert.ErrorIs(t, err, ErrBadArguments)
}

func TestDecodeFinalAnswerShapes(t *testing.T) {
	_, plan := newSet(t)
	raw, err := types.EncodeJSON(plan)
	require.NoError(t, err)

	wrapped, err := Decode(KindFinalAnswer, json.RawMessage(`{"final_output": `+string(raw)+`}`))
	require.NoError(t, err)
	assert.Equal(t, plan, wrapped.(FinalAnswerArgs).FinalOutput)

	inline, err := Decode(KindFinalAnswer, json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, plan, inline.(FinalAnswerArgs).FinalOutput)

	_, err = Decode(KindFinalAnswer, json.RawMessage(`{"final_output": {"city": "AgentsVille"}}`))
	assert.Error(t, err)
	_, err = Decode(KindFinalAnswer, json.RawMessage(`{"final_output": `+string(raw)+`, "note": "x"}`))
	assert.ErrorIs(t, err, ErrBadArguments)
}

func TestExecute(t *testing.T) {
	set, plan := newSet(t)
	ctx := context.Background()

	v, err := set.Execute(ctx, CalculatorArgs{InputExpression: "2 + 3 * 4"})
	require.NoError(t, err)
	assert.Equal(t, 14.0, v)

	_, err = set.Execute(ctx, CalculatorArgs{InputExpression: "1 / 0"})
	assert.ErrorIs(t, err, calc.ErrDivisionByZero)

	v, err = set.Execute(ctx, ActivitiesArgs{Date: "2025-06-11", City: "AgentsVille"})
	require.NoError(t, err)
	assert.Len(t, v, 4)

	v, err = set.Execute(ctx, ActivitiesArgs{Date: "2025-06-11", City: "Atlantis"})
	require.NoError(t, err)
	assert.Equal(t, []types.Activity{}, v)

	_, err = set.Execute(ctx, ActivitiesArgs{City: "AgentsVille"})
	assert.Error(t, err)

	v, err = set.Execute(ctx, RunEvalsArgs{TravelPlan: plan})
	require.NoError(t, err)
	assert.Equal(t, types.EvaluationSummary{Success: true, Failures: []string{}}, v)

	broken := plan
	broken.TotalCost = 999
	other := types.SampleVacationRequest()
	other.Budget = 100
	v, err = set.Execute(ctx, RunEvalsArgs{TravelPlan: broken, VacationInfo: &other})
	require.NoError(t, err)
	sum := v.(types.EvaluationSummary)
	assert.False(t, sum.Success)
	assert.Len(t, sum.Failures, 2)

	v, err = set.Execute(ctx, FinalAnswerArgs{FinalOutput: plan})
	require.NoError(t, err)
	assert.Equal(t, plan, v)
}

func TestRunEvalsNeedsRequest(t *testing.T) {
	set, plan := newSet(t)
	set.Request = nil
	_, err := set.Execute(context.Background(), RunEvalsArgs{TravelPlan: plan})
	assert.ErrorIs(t, err, ErrNoRequest)
}

func TestDescribe(t *testing.T) {
	out := Describe(Specs())
	for _, k := range Kinds() {
		assert.Contains(t, out, "* `"+k.String()+"`")
	}
	assert.Contains(t, out, "vacation_info (VacationRequest, optional)")
}
