package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFakeReviewerEvaluatesThenSubmits(t *testing.T) {
	f := NewFakeClient()
	ctx := WithPhase(context.Background(), PhaseReact)
	msgs := []Message{System("sys"), User("Here is the itinerary for review:\n{\"city\": \"AgentsVille\"}")}

	first, err := f.Complete(ctx, Request{Messages: msgs})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(first, `"tool_name": "run_evals_tool"`) || !strings.Contains(first, `"travel_plan":{"city"`) {
		t.Fatalf("first turn = %s", first)
	}

	msgs = append(msgs, Assistant(first), User("OBSERVATION: ok"))
	second, err := f.Complete(ctx, Request{Messages: msgs})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(second, `"tool_name": "final_answer_tool"`) {
		t.Fatalf("second turn = %s", second)
	}
}

func TestFakeJudges(t *testing.T) {
	f := NewFakeClient()
	w, _ := f.Complete(WithPhase(context.Background(), PhaseJudgeWeather), Request{})
	if !strings.Contains(w, "IS_COMPATIBLE") {
		t.Fatalf("weather judge = %q", w)
	}
	fb, _ := f.Complete(WithPhase(context.Background(), PhaseJudgeFeedback), Request{})
	if !strings.Contains(fb, "FINAL OUTPUT:") || !strings.Contains(fb, "FULLY_INCORPORATED") {
		t.Fatalf("feedback judge = %q", fb)
	}
}

func TestScriptedClient(t *testing.T) {
	s := &ScriptedClient{Responses: []string{"one"}}
	got, err := s.Complete(context.Background(), Request{Messages: []Message{User("q")}})
	if err != nil || got != "one" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := s.Complete(context.Background(), Request{}); !errors.Is(err, ErrScriptExhausted) {
		t.Fatalf("expected exhaustion, got %v", err)
	}
	if n := len(s.Requests()); n != 2 {
		t.Fatalf("recorded %d requests", n)
	}
}
