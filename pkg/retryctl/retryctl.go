// Package retryctl implements the outer retry loop that drives the
// template generator and fill engine together: request a template,
// extract its slots, invoke the fill engine, and on failure request a
// new template or reseed, up to a configured budget.
package retryctl

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wordgrid/crossgen/pkg/fill"
	"github.com/wordgrid/crossgen/pkg/grid"
	"github.com/wordgrid/crossgen/pkg/lexicon"
)

// ErrTemplateExhausted is returned when no template attempt produced a
// valid skeleton within the configured budget.
var ErrTemplateExhausted = errors.New("retryctl: template generator exhausted its attempt budget")

// ErrFillExhausted is returned when the budget is spent, at least one
// attempt produced a valid skeleton, and the fill engine completed none
// of them.
var ErrFillExhausted = errors.New("retryctl: fill engine exhausted its attempt budget")

// DefaultBudget is the retry budget used when no symmetry is enforced.
const DefaultBudget = 20

// SymmetryBudget is the retry budget used when symmetry is enforced,
// per spec.md §4.6's "30-40 under symmetry" guidance.
const SymmetryBudget = 35

// Config drives one Run of the retry controller.
type Config struct {
	GridConfig grid.GeneratorConfig
	FillConfig fill.Config
	Lexicon    *lexicon.Lexicon

	// Budget caps the number of (template, fill) attempts. Zero selects
	// DefaultBudget, or SymmetryBudget when Symmetry is true.
	Budget int
	// Symmetry only affects the default Budget selection; the template
	// generator itself always enforces symmetry (spec.md §4.1).
	Symmetry bool

	Log *logrus.Logger

	// OnAttempt, when set, is called synchronously after each attempt
	// completes (success or failure), for callers that want to stream
	// attempt-by-attempt progress (internal/httpapi's websocket stream).
	OnAttempt func(Attempt)
}

// Attempt records the outcome of one (template, fill) pair, used both
// for logging and for the diagnostic summary on terminal failure.
type Attempt struct {
	Index       int
	TemplateErr error
	FillErr     error
}

// Result is returned by Run: the filled grid on success, plus the full
// attempt history regardless of outcome.
type Result struct {
	Grid     *grid.Grid
	Attempts []Attempt
}

// Run repeatedly generates a template, extracts its slots, and invokes
// the fill engine, reseeding each attempt from Config.GridConfig.Seed
// plus the attempt index. It returns on the first successful fill, or
// ErrTemplateExhausted / ErrFillExhausted once the budget is spent.
func Run(cfg Config) (*Result, error) {
	budget := cfg.Budget
	if budget <= 0 {
		if cfg.Symmetry {
			budget = SymmetryBudget
		} else {
			budget = DefaultBudget
		}
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	result := &Result{Attempts: make([]Attempt, 0, budget)}
	templateFailures := 0

	for i := 0; i < budget; i++ {
		attempt := Attempt{Index: i}

		gridCfg := cfg.GridConfig
		gridCfg.Seed = cfg.GridConfig.Seed + int64(i)

		g, err := grid.Generate(gridCfg)
		if err != nil {
			templateFailures++
			attempt.TemplateErr = err
			result.Attempts = append(result.Attempts, attempt)
			log.WithFields(logrus.Fields{"attempt": i, "error": err}).Warn("retryctl: template generation failed")
			if cfg.OnAttempt != nil {
				cfg.OnAttempt(attempt)
			}
			continue
		}

		fillCfg := cfg.FillConfig
		fillCfg.Seed = gridCfg.Seed

		if err := fill.Fill(g, cfg.Lexicon, fillCfg); err != nil {
			attempt.FillErr = err
			result.Attempts = append(result.Attempts, attempt)
			log.WithFields(logrus.Fields{"attempt": i, "error": err}).Warn("retryctl: fill failed")
			if cfg.OnAttempt != nil {
				cfg.OnAttempt(attempt)
			}
			continue
		}

		result.Attempts = append(result.Attempts, attempt)
		result.Grid = g
		log.WithFields(logrus.Fields{"attempts": i + 1}).Info("retryctl: fill succeeded")
		if cfg.OnAttempt != nil {
			cfg.OnAttempt(attempt)
		}
		return result, nil
	}

	if templateFailures == len(result.Attempts) {
		return result, fmt.Errorf("%w: %d attempts", ErrTemplateExhausted, budget)
	}
	return result, fmt.Errorf("%w: %d attempts", ErrFillExhausted, budget)
}
