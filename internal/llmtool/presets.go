package llmtool

import (
	"fmt"

	"tripplanner/internal/eval"
	"tripplanner/internal/tools"
	"tripplanner/internal/types"
)

const reviewOutputFormat = `For each step, respond in exactly this format:

THOUGHT:
[your reasoning about what needs to be done and which tool to use]

ACTION:
{"tool_name": "[tool_name]", "arguments": {"arg1": "value1", "arg2": "value2"}}

Emit exactly one ACTION per response. The ACTION must be a single JSON object.`

// ReviewPromptSpec is the itinerary-review persona with the full tool
// catalog and the TravelPlan schema.
func ReviewPromptSpec() (PromptSpec, error) {
	schema, err := types.TravelPlanSchemaJSON()
	if err != nil {
		return PromptSpec{}, err
	}
	return PromptSpec{
		Role: "You are a Travel Itinerary Review Specialist. Review the itinerary you are given, " +
			"take the traveler feedback into account and use the available tools to fix every problem.",
		Tasks: []string{
			"Evaluate the current itinerary: call run_evals_tool to identify problems.",
			fmt.Sprintf("Incorporate the traveler feedback: %q", eval.TravelerFeedback),
			"Check weather compatibility: do not schedule outdoor-only activities in bad weather.",
			"Validate the budget: use calculator_tool for exact cost arithmetic.",
			"Look for alternatives: use get_activities_by_date_tool to find other activities.",
			"Re-evaluate: call run_evals_tool again before submitting the final answer.",
		},
		Tools:        tools.Specs(),
		OutputFormat: reviewOutputFormat,
		Rules: []string{
			"ALWAYS call run_evals_tool before calling final_answer_tool.",
			"Only recommend activities returned by get_activities_by_date_tool; copy them field for field.",
			"total_cost must equal the sum of the prices of all recommended activities.",
			"Finish by calling final_answer_tool with {\"final_output\": <TravelPlan>} once every evaluation passes.",
		},
		Schema: string(schema),
	}, nil
}
