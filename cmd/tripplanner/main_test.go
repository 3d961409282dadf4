package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/types"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestPlanCommand(t *testing.T) {
	dir := t.TempDir()
	out := run(t, "plan", "--quiet", "--out", dir)
	assert.Contains(t, out, "total cost 73 of 130")

	raw, err := os.ReadFile(filepath.Join(dir, "plan_initial.json"))
	require.NoError(t, err)
	plan, err := types.DecodeTravelPlan(raw)
	require.NoError(t, err)
	assert.Equal(t, 73, plan.TotalCost)
	assert.Len(t, plan.ItineraryDays, 3)
}

func TestReviseCommandWithFakeProvider(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "none.env")
	out := run(t, "revise", "--quiet", "--provider", "fake", "--env-file", envFile, "--out", dir)
	assert.Contains(t, out, "initial: PASS")
	assert.Contains(t, out, "revised: PASS")
	assert.Contains(t, out, "finished in 2 steps")

	for _, name := range []string{"plan_initial.json", "plan_revised.json", "transcript.json", "evaluation.json", "llm_calls.json"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	raw, err := os.ReadFile(filepath.Join(dir, "transcript.json"))
	require.NoError(t, err)
	var tr struct {
		SessionID string            `json:"session_id"`
		Messages  []json.RawMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(raw, &tr))
	assert.NotEmpty(t, tr.SessionID)
	assert.Len(t, tr.Messages, 5)

	raw, err = os.ReadFile(filepath.Join(dir, "llm_calls.json"))
	require.NoError(t, err)
	var calls []struct {
		Phase string `json:"phase"`
	}
	require.NoError(t, json.Unmarshal(raw, &calls))
	phases := map[string]int{}
	for _, c := range calls {
		phases[c.Phase]++
	}
	assert.Equal(t, 2, phases["react"])
	assert.Positive(t, phases["judge.weather"])
	assert.Positive(t, phases["judge.feedback"])
}

func TestEvaluateCommand(t *testing.T) {
	dir := t.TempDir()
	run(t, "plan", "--quiet", "--out", dir)
	out := run(t, "evaluate", "--quiet", "--provider", "fake", "--env-file", filepath.Join(dir, "none.env"),
		"--plan", filepath.Join(dir, "plan_initial.json"), "--out", dir)
	assert.Contains(t, out, "plan: PASS (7 checks, 0 failures)")
	assert.FileExists(t, filepath.Join(dir, "evaluation.json"))
}

func TestEvaluateNeedsPlan(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"evaluate", "--quiet"})
	assert.Error(t, cmd.Execute())
}
