package search

import (
	"context"
	"fmt"

	"github.com/iliyamo/eventscout/internal/interpreter"
	"github.com/iliyamo/eventscout/internal/model"
)

// Result is the resolver's complete answer: at most maxResults events, the
// parameters the interpreter settled on, and a human sentence describing
// what happened.  The explanation is the only string the presentation
// layer needs from the core.
type Result struct {
	Events       []model.EventRecord `json:"events"`
	SearchParams model.SearchParams  `json:"search_params"`
	Strategy     model.StrategyTag   `json:"strategy"`
	Explanation  string              `json:"explanation"`
}

// Resolver composes interpreter, cascade and filter into the one operation
// the rest of the service calls.
type Resolver struct {
	Interpreter interpreter.Interpreter
	Cascade     *Cascade
}

// Resolve answers a free-text query.  It never fails: every error path
// inside the interpreter and cascade converges to an empty event list
// with an explanatory sentence.
func (r *Resolver) Resolve(ctx context.Context, query, locationHint string) Result {
	params := r.Interpreter.Interpret(ctx, query, locationHint)
	outcome := r.Cascade.Run(ctx, params)
	return Result{
		Events:       outcome.Events,
		SearchParams: params,
		Strategy:     outcome.StrategyUsed,
		Explanation:  explain(params, outcome),
	}
}

func explain(params model.SearchParams, outcome model.CascadeOutcome) string {
	n := len(outcome.Events)
	if n > 0 {
		if outcome.RadiusCenterCity != "" {
			return fmt.Sprintf("Found %d events within %d miles of %s. Here are some upcoming shows:", n, radiusMiles, outcome.RadiusCenterCity)
		}
		return fmt.Sprintf("Found %d events matching your search. Here are some upcoming shows:", n)
	}
	if params.Artist != "" {
		area := params.City
		if area == "" {
			area = "the specified area"
		}
		return fmt.Sprintf("I couldn't find any upcoming %s shows in %s right now. They may not have anything scheduled soon, or their shows might be in other cities.", params.Artist, area)
	}
	return "I couldn't find any events matching your search criteria right now."
}
