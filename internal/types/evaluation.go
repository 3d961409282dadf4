package types

// EvaluationResult is produced fresh by every suite run.
type EvaluationResult struct {
	Success       bool     `json:"success"`
	Failures      []string `json:"failures"`
	EvalFunctions []string `json:"eval_functions"`
}

// EvaluationSummary is the shape returned to the revision loop by the evaluation tool.
type EvaluationSummary struct {
	Success  bool     `json:"success"`
	Failures []string `json:"failures"`
}

func (r EvaluationResult) Summary() EvaluationSummary {
	failures := r.Failures
	if failures == nil {
		failures = []string{}
	}
	return EvaluationSummary{Success: r.Success, Failures: failures}
}
