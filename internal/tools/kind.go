// Package tools is the closed set of operations the revision loop may
// invoke. Each tool has a Kind, a typed argument record and a wire name.
package tools

type Kind int

const (
	KindCalculator Kind = iota + 1
	KindActivitiesByDate
	KindRunEvals
	KindFinalAnswer
)

var kindNames = map[Kind]string{
	KindCalculator:       "calculator_tool",
	KindActivitiesByDate: "get_activities_by_date_tool",
	KindRunEvals:         "run_evals_tool",
	KindFinalAnswer:      "final_answer_tool",
}

// Kinds lists every tool in catalog order.
func Kinds() []Kind {
	return []Kind{KindCalculator, KindActivitiesByDate, KindRunEvals, KindFinalAnswer}
}

// String returns the wire name.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown_tool"
}

// ParseKind matches a wire name exactly.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}
