// Package eval scores a travel plan against a vacation request with a fixed
// battery of checks. Business-rule violations are collected; anything else
// aborts the run.
package eval

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tripplanner/internal/llm"
	"tripplanner/internal/types"
)

var (
	// ErrJudgeContract means a judge model answered outside its output format.
	ErrJudgeContract = errors.New("eval: judge response broke the output contract")
	// ErrMissingDependency means a check needs an Env field that is nil.
	ErrMissingDependency = errors.New("eval: missing dependency")
)

// Failure is a business-rule violation. Checks return it; Suite.Run collects it.
type Failure struct {
	Check string
	Msg   string
}

func (f *Failure) Error() string { return f.Msg }

func failf(check, format string, args ...any) *Failure {
	return &Failure{Check: check, Msg: fmt.Sprintf(format, args...)}
}

// Check is one evaluation. It returns nil on pass, *Failure on a
// business-rule violation and any other error when it cannot decide.
type Check interface {
	Name() string
	Run(ctx context.Context, env *Env, req types.VacationRequest, plan types.TravelPlan) error
}

// ActivityLookup resolves reference activities by id.
type ActivityLookup interface {
	ActivityByID(id string) (types.Activity, bool)
}

const (
	DefaultWeatherModel  = "gpt-4.1-nano"
	DefaultFeedbackModel = "gpt-4.1"
)

// Env carries the dependencies checks may need. Deterministic checks need
// none of it.
type Env struct {
	Activities    ActivityLookup
	Judge         llm.ChatClient
	WeatherModel  string
	FeedbackModel string
	Logger        *log.Logger
}

type EnvOptions struct {
	WeatherModel  string
	FeedbackModel string
	// JudgeCacheSize bounds the verdict cache; <= 0 disables it.
	JudgeCacheSize int
	Logger         *log.Logger
}

// NewEnv wires the reference lookup and a judge client. The judge is wrapped
// with a verdict cache so re-evaluating an unchanged plan is stable.
func NewEnv(activities ActivityLookup, judge llm.ChatClient, opts EnvOptions) *Env {
	env := &Env{
		Activities:    activities,
		WeatherModel:  opts.WeatherModel,
		FeedbackModel: opts.FeedbackModel,
		Logger:        opts.Logger,
	}
	if judge != nil {
		env.Judge = llm.Wrap(judge, llm.Cache(opts.JudgeCacheSize))
	}
	return env
}

func (e *Env) logger() *log.Logger {
	if e == nil || e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

func (e *Env) weatherModel() string {
	if e.WeatherModel == "" {
		return DefaultWeatherModel
	}
	return e.WeatherModel
}

func (e *Env) feedbackModel() string {
	if e.FeedbackModel == "" {
		return DefaultFeedbackModel
	}
	return e.FeedbackModel
}

// DefaultChecks returns the full battery in evaluation order.
func DefaultChecks() []Check {
	return []Check{
		DatesMatch{},
		CostIsAccurate{},
		EventsMatchReference{},
		InterestsSatisfied{},
		CostWithinBudget{},
		WeatherCompatible{},
		FeedbackIncorporated{},
	}
}

// Suite runs checks in order without short-circuiting on failures.
type Suite struct {
	checks []Check
}

// NewSuite uses DefaultChecks when none are given.
func NewSuite(checks ...Check) *Suite {
	if len(checks) == 0 {
		checks = DefaultChecks()
	}
	return &Suite{checks: checks}
}

func (s *Suite) Names() []string {
	out := make([]string, len(s.checks))
	for i, c := range s.checks {
		out[i] = c.Name()
	}
	return out
}

// Run evaluates plan. Failures land in the result; a fatal error from any
// check is returned as is, wrapped with the check name.
func (s *Suite) Run(ctx context.Context, env *Env, req types.VacationRequest, plan types.TravelPlan) (types.EvaluationResult, error) {
	if env == nil {
		env = &Env{}
	}
	res := types.EvaluationResult{Failures: []string{}, EvalFunctions: s.Names()}
	for _, c := range s.checks {
		if err := ctx.Err(); err != nil {
			return types.EvaluationResult{}, err
		}
		err := c.Run(ctx, env, req, plan)
		var f *Failure
		switch {
		case err == nil:
		case errors.As(err, &f):
			env.logger().Printf("eval: %s failed: %s", c.Name(), f.Msg)
			res.Failures = append(res.Failures, f.Msg)
		default:
			return types.EvaluationResult{}, fmt.Errorf("eval: %s: %w", c.Name(), err)
		}
	}
	res.Success = len(res.Failures) == 0
	return res, nil
}
