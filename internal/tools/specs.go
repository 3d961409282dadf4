package tools

import (
	"fmt"
	"strings"
)

// Spec documents one tool for the prompt.
type Spec struct {
	Kind        Kind
	Name        string
	Description string
	Arguments   []Argument
	Returns     string
}

type Argument struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Specs describes every tool in catalog order.
func Specs() []Spec {
	return []Spec{
		{
			Kind:        KindCalculator,
			Name:        KindCalculator.String(),
			Description: "Evaluates a mathematical expression and returns the result as a float. Supports + - * / ^ and parentheses.",
			Arguments: []Argument{
				{Name: "input_expression", Type: "string", Description: "a valid arithmetic expression, e.g. \"1 + 1\"", Required: true},
			},
			Returns: "float: the value of the expression",
		},
		{
			Kind:        KindActivitiesByDate,
			Name:        KindActivitiesByDate.String(),
			Description: "Retrieves the activities available on a specific date in a specific city.",
			Arguments: []Argument{
				{Name: "date", Type: "string", Description: "date in YYYY-MM-DD format", Required: true},
				{Name: "city", Type: "string", Description: "city to search (only \"AgentsVille\" is supported)", Required: true},
			},
			Returns: "list of activities available on that date",
		},
		{
			Kind:        KindRunEvals,
			Name:        KindRunEvals.String(),
			Description: "Runs every evaluation against the provided travel plan.",
			Arguments: []Argument{
				{Name: "travel_plan", Type: "TravelPlan", Description: "the travel plan to evaluate", Required: true},
				{Name: "vacation_info", Type: "VacationRequest", Description: "the original request; defaults to the one under review"},
			},
			Returns: "{\"success\": bool, \"failures\": [string]}",
		},
		{
			Kind:        KindFinalAnswer,
			Name:        KindFinalAnswer.String(),
			Description: "Returns the final travel plan and ends the review.",
			Arguments: []Argument{
				{Name: "final_output", Type: "TravelPlan", Description: "the final travel plan", Required: true},
			},
			Returns: "TravelPlan: the final travel plan",
		},
	}
}

// Render formats one spec as a markdown bullet.
func (s Spec) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "* `%s`: %s\n", s.Name, s.Description)
	if len(s.Arguments) > 0 {
		b.WriteString("    Args:\n")
		for _, a := range s.Arguments {
			opt := ""
			if !a.Required {
				opt = ", optional"
			}
			fmt.Fprintf(&b, "        %s (%s%s): %s\n", a.Name, a.Type, opt, a.Description)
		}
	}
	if s.Returns != "" {
		fmt.Fprintf(&b, "    Returns: %s\n", s.Returns)
	}
	return b.String()
}

// Describe renders every spec, in catalog order.
func Describe(specs []Spec) string {
	var b strings.Builder
	for _, s := range specs {
		b.WriteString(s.Render())
	}
	return b.String()
}
