package llmtool

import (
	"bytes"
	"fmt"
	"strings"

	"tripplanner/internal/tools"
)

// PromptSpec defines the sections of the reviewer's system prompt.
type PromptSpec struct {
	Role         string
	Tasks        []string
	Tools        []tools.Spec
	OutputFormat string
	Rules        []string
	Schema       string
}

// BuildSystemPrompt renders spec as [SECTION] blocks. Empty sections are skipped.
func BuildSystemPrompt(spec PromptSpec) (string, error) {
	if strings.TrimSpace(spec.Role) == "" {
		return "", fmt.Errorf("llmtool: role is empty")
	}
	if len(spec.Tools) == 0 {
		return "", fmt.Errorf("llmtool: tool catalog is empty")
	}
	var buf bytes.Buffer
	writeSection(&buf, "ROLE", spec.Role)
	writeSection(&buf, "TASKS", formatNumbered(spec.Tasks))
	writeSection(&buf, "TOOLS", tools.Describe(spec.Tools))
	writeSection(&buf, "OUTPUT_FORMAT", spec.OutputFormat)
	writeSection(&buf, "RULES", formatList(spec.Rules))
	writeSection(&buf, "TRAVEL_PLAN_SCHEMA", spec.Schema)
	return strings.TrimSpace(buf.String()) + "\n", nil
}

func formatList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s\n", item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatNumbered(items []string) string {
	var buf strings.Builder
	n := 0
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		n++
		fmt.Fprintf(&buf, "%d. %s\n", n, item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}
