// Package interpreter turns free-text event queries into structured search
// parameters.  Two implementations exist: a deterministic heuristic parser
// and an AI-backed one that falls back to the heuristic on any failure.
// Both are infallible by contract: ambiguity widens a field to
// "unconstrained" instead of producing an error.
package interpreter

import (
	"context"

	"github.com/iliyamo/eventscout/internal/model"
)

// Interpreter maps a query and an optional location hint to search
// parameters.  The hint, when present, always wins over anything the
// query itself says about location.
type Interpreter interface {
	Interpret(ctx context.Context, query, locationHint string) model.SearchParams
}
