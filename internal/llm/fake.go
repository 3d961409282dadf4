package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Phases used by the planner. FakeClient answers per phase.
const (
	PhaseReact         = "react"
	PhaseJudgeWeather  = "judge.weather"
	PhaseJudgeFeedback = "judge.feedback"
)

// FakeClient is a deterministic offline backend. As reviewer it evaluates
// the plan it was given once and then submits it unchanged; as judge it
// approves everything.
type FakeClient struct{}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Complete(ctx context.Context, req Request) (string, error) {
	switch PhaseFrom(ctx) {
	case PhaseJudgeWeather:
		return "REASONING:\nEvery activity can go ahead in the forecast conditions.\n\nFINAL ANSWER:\nIS_COMPATIBLE", nil
	case PhaseJudgeFeedback:
		return "ANALYSIS:\nEach day of the itinerary lists at least two activities.\n\nFINAL OUTPUT: FULLY_INCORPORATED", nil
	case PhaseReact:
		return fakeReviewerTurn(req)
	default:
		return "{}", nil
	}
}

func fakeReviewerTurn(req Request) (string, error) {
	var plan json.RawMessage
	turns := 0
	for _, m := range req.Messages {
		switch m.Role {
		case RoleUser:
			if plan == nil {
				if i := strings.IndexByte(m.Content, '{'); i >= 0 {
					plan = json.RawMessage(m.Content[i:])
				}
			}
		case RoleAssistant:
			turns++
		}
	}
	if plan == nil || !json.Valid(plan) {
		return "", errors.New("llm: fake reviewer found no plan in the conversation")
	}
	if turns == 0 {
		args, _ := json.Marshal(map[string]json.RawMessage{"travel_plan": plan})
		return fmt.Sprintf("THOUGHT:\nI will run the evaluations on the current itinerary first.\n\nACTION:\n{\"tool_name\": \"run_evals_tool\", \"arguments\": %s}", args), nil
	}
	args, _ := json.Marshal(map[string]json.RawMessage{"final_output": plan})
	return fmt.Sprintf("THOUGHT:\nThe itinerary passes every evaluation, so I will submit it.\n\nACTION:\n{\"tool_name\": \"final_answer_tool\", \"arguments\": %s}", args), nil
}

// ScriptedClient replays canned responses in order and records every request.
// Respond, when set, takes precedence over Responses.
type ScriptedClient struct {
	Responses []string
	Respond   func(ctx context.Context, req Request) (string, error)

	mu       sync.Mutex
	requests []Request
}

var ErrScriptExhausted = errors.New("llm: scripted responses exhausted")

func (s *ScriptedClient) Name() string { return "Scripted" }
func (s *ScriptedClient) Close() error { return nil }

func (s *ScriptedClient) Complete(ctx context.Context, req Request) (string, error) {
	s.mu.Lock()
	n := len(s.requests)
	cp := req
	cp.Messages = append([]Message(nil), req.Messages...)
	s.requests = append(s.requests, cp)
	s.mu.Unlock()

	if s.Respond != nil {
		return s.Respond(ctx, req)
	}
	if n >= len(s.Responses) {
		return "", ErrScriptExhausted
	}
	return s.Responses[n], nil
}

// Requests returns a copy of the requests seen so far.
func (s *ScriptedClient) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}
