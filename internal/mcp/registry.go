package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"tripplanner/internal/tools"
	"tripplanner/internal/util/jsonutil"
)

// ToolSpec documents a tool's contract (name + input schema).
type ToolSpec struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	InputSchema *jsonschema.Schema `json:"input_schema,omitempty"`
}

// Tool is one planner tool callable with raw JSON arguments.
type Tool interface {
	Spec() ToolSpec
	Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error)
}

// Registry holds tool registrations and dispatches calls.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty registry and registers any provided tools.
func NewRegistry(ts ...Tool) *Registry {
	r := &Registry{tools: map[string]Tool{}}
	for _, t := range ts {
		r.Register(t)
	}
	return r
}

// NewPlannerRegistry registers every planner tool backed by exec.
func NewPlannerRegistry(exec Executor) (*Registry, error) {
	r := NewRegistry()
	for _, spec := range tools.Specs() {
		schema, err := inputSchema(spec.Kind)
		if err != nil {
			return nil, fmt.Errorf("mcp: schema for %s: %w", spec.Name, err)
		}
		r.Register(&plannerTool{
			kind: spec.Kind,
			spec: ToolSpec{Name: spec.Name, Description: spec.Description, InputSchema: schema},
			exec: exec,
		})
	}
	return r, nil
}

// Register adds or replaces a tool by name.
func (r *Registry) Register(t Tool) {
	if r == nil || t == nil {
		return
	}
	spec := t.Spec()
	if spec.Name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tools == nil {
		r.tools = map[string]Tool{}
	}
	r.tools[spec.Name] = t
}

// Call invokes a registered tool.
func (r *Registry) Call(ctx context.Context, name string, input json.RawMessage) (json.RawMessage, error) {
	if r == nil {
		return nil, fmt.Errorf("mcp: registry is nil")
	}
	r.mu.RLock()
	t, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("mcp: unknown tool %q", name)
	}
	return t.Call(ctx, input)
}

// Specs returns the current tool specs sorted by name.
func (r *Registry) Specs() []ToolSpec {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ToolSpec, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.Spec())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Executor runs decoded tool calls. *tools.Set implements it.
type Executor interface {
	Execute(ctx context.Context, call tools.Args) (any, error)
}

type plannerTool struct {
	kind tools.Kind
	spec ToolSpec
	exec Executor
}

func (t *plannerTool) Spec() ToolSpec { return t.spec }

func (t *plannerTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	args, err := tools.Decode(t.kind, input)
	if err != nil {
		return nil, err
	}
	out, err := t.exec.Execute(ctx, args)
	if err != nil {
		return nil, err
	}
	return jsonutil.MarshalNoEscape(out)
}

func inputSchema(kind tools.Kind) (*jsonschema.Schema, error) {
	switch kind {
	case tools.KindCalculator:
		return jsonschema.For[tools.CalculatorArgs](nil)
	case tools.KindActivitiesByDate:
		return jsonschema.For[tools.ActivitiesArgs](nil)
	case tools.KindRunEvals:
		return jsonschema.For[tools.RunEvalsArgs](nil)
	case tools.KindFinalAnswer:
		return jsonschema.For[tools.FinalAnswerArgs](nil)
	default:
		return nil, fmt.Errorf("unknown tool kind %d", int(kind))
	}
}
