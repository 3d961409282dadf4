package eval

import (
	"context"
	"fmt"
	"strings"

	"tripplanner/internal/llm"
	"tripplanner/internal/types"
)

const weatherJudgePrompt = `You are an expert at judging whether an activity is compatible with the weather.

## Task
Decide whether an activity should be avoided because of the weather conditions.
Consider whether the activity takes place exclusively outdoors and whether the
weather could ruin the experience. When there is not enough information,
assume the activity IS_COMPATIBLE with the weather. Take any backup options
mentioned in the activity description into account.

## Output format

    REASONING:
    [step-by-step analysis of compatibility]

    FINAL ANSWER:
    [IS_COMPATIBLE, IS_INCOMPATIBLE]

## Examples
Activity: Picnic in the park
Description: Outdoor lunch with games and activities
Weather Condition: rain
REASONING: This activity is exclusively outdoors and no backup option is mentioned. Rain would ruin the experience completely.
FINAL ANSWER: IS_INCOMPATIBLE

Activity: Museum visit
Description: Art and history exhibits in an indoor setting
Weather Condition: rain
REASONING: This activity takes place indoors and is not affected by the weather outside.
FINAL ANSWER: IS_COMPATIBLE`

const (
	verdictCompatible   = "IS_COMPATIBLE"
	verdictIncompatible = "IS_INCOMPATIBLE"
	finalAnswerMarker   = "FINAL ANSWER:"
)

// WeatherCompatible asks the judge about every (activity, day weather) pair.
type WeatherCompatible struct{}

func (WeatherCompatible) Name() string { return "eval_activities_and_weather_are_compatible" }

func (c WeatherCompatible) Run(ctx context.Context, env *Env, _ types.VacationRequest, plan types.TravelPlan) error {
	if env.Judge == nil {
		return fmt.Errorf("%w: judge client", ErrMissingDependency)
	}
	ctx = llm.WithPhase(ctx, llm.PhaseJudgeWeather)
	var incompatible []string
	for _, day := range plan.ItineraryDays {
		cond := day.Weather.Condition
		for _, rec := range day.ActivityRecommendations {
			a := rec.Activity
			resp, err := env.Judge.Complete(ctx, llm.Request{
				Model: env.weatherModel(),
				Messages: []llm.Message{
					llm.System(weatherJudgePrompt),
					llm.User(fmt.Sprintf("Activity: %s\nDescription: %s\nWeather Condition: %s", a.Name, a.Description, cond)),
				},
			})
			if err != nil {
				return err
			}
			ok, err := parseWeatherVerdict(resp)
			if err != nil {
				return err
			}
			if ok {
				env.logger().Printf("eval: %s (%s) is compatible with %q", a.Name, day.Date, cond)
				continue
			}
			env.logger().Printf("eval: %s (%s) is incompatible with %q", a.Name, day.Date, cond)
			incompatible = append(incompatible, a.Name)
		}
	}
	if len(incompatible) > 0 {
		return failf(c.Name(), "Activities that may be ruined by bad weather: %s", bracket(incompatible))
	}
	return nil
}

// parseWeatherVerdict reads the first verdict token after the last FINAL
// ANSWER marker, or in the whole response when the marker is missing.
func parseWeatherVerdict(resp string) (bool, error) {
	tail := resp
	if i := strings.LastIndex(resp, finalAnswerMarker); i >= 0 {
		tail = resp[i+len(finalAnswerMarker):]
	}
	ci := strings.Index(tail, verdictCompatible)
	ii := strings.Index(tail, verdictIncompatible)
	switch {
	case ci < 0 && ii < 0:
		return false, fmt.Errorf("%w: weather verdict %q, want %s or %s", ErrJudgeContract, resp, verdictCompatible, verdictIncompatible)
	case ii < 0:
		return true, nil
	case ci < 0:
		return false, nil
	default:
		return ci < ii, nil
	}
}

// TravelerFeedback is the fixed feedback the revised plan must reflect.
const TravelerFeedback = "I want to have at least two activities per day."

const feedbackJudgePrompt = `You are an expert at judging whether a travel plan incorporates traveler feedback.

## Output Format

Respond using two sections (ANALYSIS AND FINAL OUTPUT) in the following format:

    ANALYSIS:
    * [step-by-step analysis]

    FINAL OUTPUT:
    [FULLY_INCORPORATED, PARTIALLY_INCORPORATED, NOT_INCORPORATED, or UNKNOWN]
    REASON: [reasoning for the final output]
`

const (
	finalOutputMarker = "FINAL OUTPUT:"
	verdictFully      = "FULLY_INCORPORATED"
)

// FeedbackIncorporated asks the judge whether TravelerFeedback is fully
// reflected in the plan.
type FeedbackIncorporated struct{}

func (FeedbackIncorporated) Name() string { return "eval_traveler_feedback_is_incorporated" }

func (c FeedbackIncorporated) Run(ctx context.Context, env *Env, _ types.VacationRequest, plan types.TravelPlan) error {
	if env.Judge == nil {
		return fmt.Errorf("%w: judge client", ErrMissingDependency)
	}
	planJSON, err := types.EncodeJSON(plan)
	if err != nil {
		return err
	}
	resp, err := env.Judge.Complete(llm.WithPhase(ctx, llm.PhaseJudgeFeedback), llm.Request{
		Model: env.feedbackModel(),
		Messages: []llm.Message{
			llm.System(feedbackJudgePrompt),
			llm.User(fmt.Sprintf("Traveler Feedback: %s\nRevised Travel Plan: %s\n", TravelerFeedback, planJSON)),
		},
	})
	if err != nil {
		return err
	}
	i := strings.LastIndex(resp, finalOutputMarker)
	if i < 0 {
		return fmt.Errorf("%w: feedback verdict %q, want %s", ErrJudgeContract, resp, finalOutputMarker)
	}
	if !strings.Contains(resp, verdictFully) {
		verdict := strings.TrimSpace(resp[i+len(finalOutputMarker):])
		return failf(c.Name(), "Traveler feedback was not successfully incorporated into the revised travel plan. Response: %s", verdict)
	}
	return nil
}
