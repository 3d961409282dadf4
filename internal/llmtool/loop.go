package llmtool

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"tripplanner/internal/eval"
	"tripplanner/internal/llm"
	"tripplanner/internal/tools"
	"tripplanner/internal/types"
	"tripplanner/internal/util/jsonutil"
)

// DefaultMaxSteps bounds a revision session when Reviser.MaxSteps is unset.
const DefaultMaxSteps = 15

var ErrMaxSteps = errors.New("llmtool: max steps reached")

// BudgetExhaustedError reports a session that never produced a final answer.
type BudgetExhaustedError struct {
	Steps    int
	LastTurn string
}

func (e *BudgetExhaustedError) Error() string {
	return fmt.Sprintf("llmtool: agent did not complete within %d steps. Last response: %s", e.Steps, e.LastTurn)
}

func (e *BudgetExhaustedError) Unwrap() error { return ErrMaxSteps }

// Executor runs decoded tool calls. *tools.Set implements it.
type Executor interface {
	Execute(ctx context.Context, call tools.Args) (any, error)
}

// ToolResult captures the outcome of one tool call.
type ToolResult struct {
	Step        int    `json:"step"`
	Name        string `json:"name"`
	Observation string `json:"observation"`
	Error       string `json:"error,omitempty"`
}

// Transcript is the full conversation of one revision session.
type Transcript struct {
	SessionID string        `json:"session_id"`
	Messages  []llm.Message `json:"messages"`
	Calls     []ToolResult  `json:"tool_calls"`
	Steps     int           `json:"steps"`

	mu sync.Mutex
}

func NewTranscript(system string) *Transcript {
	t := &Transcript{SessionID: uuid.NewString(), Messages: []llm.Message{}, Calls: []ToolResult{}}
	if system != "" {
		t.Messages = append(t.Messages, llm.System(system))
	}
	return t
}

func (t *Transcript) Append(msgs ...llm.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Messages = append(t.Messages, msgs...)
}

func (t *Transcript) record(r ToolResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Calls = append(t.Calls, r)
}

func (t *Transcript) advance(step int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Steps = step
}

// StepCount returns the number of model turns requested so far.
func (t *Transcript) StepCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Steps
}

// Snapshot returns a copy of the messages so far.
func (t *Transcript) Snapshot() []llm.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]llm.Message(nil), t.Messages...)
}

// Reviser drives the THOUGHT/ACTION loop that revises an itinerary until
// the model submits a final answer that passes schema validation.
type Reviser struct {
	LLM          llm.ChatClient
	Tools        Executor
	Model        string
	Temperature  float32
	MaxSteps     int
	Repairer     jsonutil.Repairer
	SystemPrompt string
	Logger       *log.Logger
}

// Run revises plan. The transcript is returned even on error.
func (r *Reviser) Run(ctx context.Context, plan types.TravelPlan) (types.TravelPlan, *Transcript, error) {
	if r == nil || r.LLM == nil || r.Tools == nil {
		return types.TravelPlan{}, nil, fmt.Errorf("llmtool: missing LLM or tools")
	}
	system := r.SystemPrompt
	if system == "" {
		spec, err := ReviewPromptSpec()
		if err != nil {
			return types.TravelPlan{}, nil, err
		}
		if system, err = BuildSystemPrompt(spec); err != nil {
			return types.TravelPlan{}, nil, err
		}
	}
	planJSON, err := types.EncodeJSON(plan)
	if err != nil {
		return types.TravelPlan{}, nil, err
	}

	tr := NewTranscript(system)
	tr.Append(llm.User("Here is the itinerary for review:\n" + string(planJSON)))

	ctx = llm.WithPhase(ctx, llm.PhaseReact)
	maxSteps := r.maxSteps()
	lastTurn := ""
	for step := 1; step <= maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return types.TravelPlan{}, tr, err
		}
		tr.advance(step)
		resp, err := r.LLM.Complete(ctx, llm.Request{Model: r.Model, Messages: tr.Snapshot(), Temperature: r.Temperature})
		if err != nil {
			return types.TravelPlan{}, tr, fmt.Errorf("llmtool: step %d: %w", step, err)
		}
		lastTurn = resp
		tr.Append(llm.Assistant(resp))

		final, done, obs, err := r.step(ctx, tr, step, resp)
		if err != nil {
			return types.TravelPlan{}, tr, err
		}
		if done {
			r.logger().Printf("llmtool: session %s finished at step %d", tr.SessionID, step)
			return final, tr, nil
		}
		tr.Append(llm.User(obs))
	}
	return types.TravelPlan{}, tr, &BudgetExhaustedError{Steps: maxSteps, LastTurn: lastTurn}
}

// step interprets one assistant turn. It returns the final plan when the
// session is over, otherwise the observation for the next turn.
func (r *Reviser) step(ctx context.Context, tr *Transcript, n int, resp string) (types.TravelPlan, bool, string, error) {
	action, ok := ExtractAction(resp)
	if !ok {
		return types.TravelPlan{}, false, "No action found in response.", nil
	}
	inv, err := ParseInvocation(action, r.repairer())
	if err != nil {
		var perr *ProtocolError
		if errors.As(err, &perr) {
			return types.TravelPlan{}, false, perr.Observation, nil
		}
		return types.TravelPlan{}, false, "", err
	}

	kind, ok := tools.ParseKind(inv.ToolName)
	if !ok {
		obs := fmt.Sprintf("OBSERVATION: Unknown tool name '%s' in action string.", inv.ToolName)
		tr.record(ToolResult{Step: n, Name: inv.ToolName, Observation: obs, Error: "unknown tool"})
		return types.TravelPlan{}, false, obs, nil
	}
	r.logger().Printf("llmtool: step %d calls %s", n, kind)

	if kind == tools.KindFinalAnswer {
		plan, err := tools.DecodeFinalAnswer(inv.Arguments)
		if err != nil {
			obs := fmt.Sprintf("Error validating final answer: %v", err)
			tr.record(ToolResult{Step: n, Name: kind.String(), Observation: obs, Error: err.Error()})
			return types.TravelPlan{}, false, obs, nil
		}
		tr.record(ToolResult{Step: n, Name: kind.String(), Observation: "final answer accepted"})
		return plan, true, "", nil
	}

	args, err := tools.Decode(kind, inv.Arguments)
	if err == nil {
		var out any
		out, err = r.Tools.Execute(ctx, args)
		if err == nil {
			body, merr := jsonutil.MarshalNoEscape(out)
			if merr != nil {
				return types.TravelPlan{}, false, "", fmt.Errorf("llmtool: encode %s result: %w", kind, merr)
			}
			obs := fmt.Sprintf("OBSERVATION: Tool %s called successfully with response: %s", kind, body)
			tr.record(ToolResult{Step: n, Name: kind.String(), Observation: obs})
			return types.TravelPlan{}, false, obs, nil
		}
	}
	if fatal(ctx, err) {
		return types.TravelPlan{}, false, "", fmt.Errorf("llmtool: %s: %w", kind, err)
	}
	obs := fmt.Sprintf("OBSERVATION: Error occurred when calling tool %s: %v", kind, err)
	tr.record(ToolResult{Step: n, Name: kind.String(), Observation: obs, Error: err.Error()})
	return types.TravelPlan{}, false, obs, nil
}

// fatal reports errors that the model cannot recover from by retrying.
func fatal(ctx context.Context, err error) bool {
	return errors.Is(err, eval.ErrJudgeContract) ||
		errors.Is(err, eval.ErrMissingDependency) ||
		ctx.Err() != nil
}

func (r *Reviser) maxSteps() int {
	if r.MaxSteps <= 0 {
		return DefaultMaxSteps
	}
	return r.MaxSteps
}

func (r *Reviser) repairer() jsonutil.Repairer {
	if r.Repairer == nil {
		return jsonutil.JSONRepairer{}
	}
	return r.Repairer
}

func (r *Reviser) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}
