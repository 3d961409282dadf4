package llmtool

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripplanner/internal/util/jsonutil"
)

const actionMarker = "ACTION:"

// Invocation is a tool call requested by the model.
type Invocation struct {
	ToolName  string
	Arguments json.RawMessage
}

// ProtocolError is a malformed turn. Its message is sent back to the model
// verbatim as the next observation.
type ProtocolError struct {
	Observation string
}

func (e *ProtocolError) Error() string { return e.Observation }

func protocolErrorf(format string, args ...any) *ProtocolError {
	return &ProtocolError{Observation: fmt.Sprintf(format, args...)}
}

// ExtractAction returns the text between the first ACTION: marker and the
// next one (or the end of the response).
func ExtractAction(resp string) (string, bool) {
	i := strings.Index(resp, actionMarker)
	if i < 0 {
		return "", false
	}
	rest := resp[i+len(actionMarker):]
	if j := strings.Index(rest, actionMarker); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest), true
}

// ParseInvocation parses an action string into a tool call. Repairer may be
// nil, in which case the action must already be valid JSON.
func ParseInvocation(action string, repairer jsonutil.Repairer) (Invocation, error) {
	text := action
	if repairer != nil {
		if fixed, err := repairer.Repair(action); err == nil {
			text = fixed
		}
	}
	var fields map[string]json.RawMessage
	if err := jsonutil.UnmarshalFlex([]byte(text), &fields); err != nil || fields == nil {
		return Invocation{}, protocolErrorf("Invalid JSON in action string: %s", action)
	}

	nameRaw, ok := fields["tool_name"]
	if !ok || isNull(nameRaw) {
		return Invocation{}, protocolErrorf("OBSERVATION: No tool name specified.")
	}
	var name string
	if err := json.Unmarshal(nameRaw, &name); err != nil {
		return Invocation{}, protocolErrorf("OBSERVATION: Tool name must be a string, received %s.", jsonKind(nameRaw))
	}

	args, ok := fields["arguments"]
	if !ok || isNull(args) {
		return Invocation{}, protocolErrorf("OBSERVATION: No arguments specified.")
	}
	if kind := jsonKind(args); kind != "object" {
		return Invocation{}, protocolErrorf("OBSERVATION: Arguments must be a dictionary, received %s.", kind)
	}
	return Invocation{ToolName: name, Arguments: args}, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func jsonKind(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "nothing"
	}
	switch s[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
