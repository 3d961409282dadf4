package tools

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tripplanner/internal/calc"
	"tripplanner/internal/eval"
	"tripplanner/internal/types"
)

// Catalog is the activity feed the lookup tool reads.
type Catalog interface {
	Activities(date types.Date, city string) []types.Activity
}

// Set executes tool calls for one planning session.
type Set struct {
	Catalog Catalog
	Suite   *eval.Suite
	Env     *eval.Env
	// Request is the session's vacation request, used when run_evals_tool
	// is called without vacation_info.
	Request *types.VacationRequest
	Logger  *log.Logger
}

var ErrNoRequest = errors.New("tools: no vacation request bound to the session")

// Execute runs one decoded call. The result is JSON-encodable:
//   - calculator: float64
//   - activities lookup: []types.Activity
//   - evaluations: types.EvaluationSummary
//   - final answer: types.TravelPlan
func (s *Set) Execute(ctx context.Context, call Args) (any, error) {
	switch a := call.(type) {
	case CalculatorArgs:
		return calc.Eval(a.InputExpression)
	case ActivitiesArgs:
		if err := a.Date.Validate(); err != nil {
			return nil, err
		}
		if s.Catalog == nil {
			return nil, errors.New("tools: no activity catalog configured")
		}
		acts := s.Catalog.Activities(a.Date, a.City)
		if acts == nil {
			acts = []types.Activity{}
		}
		return acts, nil
	case RunEvalsArgs:
		return s.runEvals(ctx, a)
	case FinalAnswerArgs:
		return a.FinalOutput, nil
	default:
		return nil, fmt.Errorf("tools: unsupported call %T", call)
	}
}

func (s *Set) runEvals(ctx context.Context, a RunEvalsArgs) (types.EvaluationSummary, error) {
	var req types.VacationRequest
	switch {
	case a.VacationInfo != nil:
		if err := a.VacationInfo.Validate(); err != nil {
			return types.EvaluationSummary{}, err
		}
		req = *a.VacationInfo
	case s.Request != nil:
		req = *s.Request
	default:
		return types.EvaluationSummary{}, ErrNoRequest
	}
	suite := s.Suite
	if suite == nil {
		suite = eval.NewSuite()
	}
	res, err := suite.Run(ctx, s.Env, req, a.TravelPlan)
	if err != nil {
		return types.EvaluationSummary{}, err
	}
	s.logger().Printf("tools: %s success=%t failures=%d", KindRunEvals, res.Success, len(res.Failures))
	return res.Summary(), nil
}

func (s *Set) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}
