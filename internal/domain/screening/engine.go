// Package screening evaluates per-campaign screening rules against
// submitted applications. Rules are CEL expressions over the application
// payload; a matching rule flags or rejects the applicant before a
// candidate record is created.
package screening

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"hirebase/internal/core/apperror"
)

// RuleAction defines what happens when a rule matches.
type RuleAction string

const (
	// ActionFlag marks the candidate for manual review.
	ActionFlag RuleAction = "flag"
	// ActionReject declines the application outright.
	ActionReject RuleAction = "reject"
)

// Rule is one screening rule. Stored as JSONB on the campaign.
type Rule struct {
	Name       string     `json:"name"`
	Expression string     `json:"expression"`
	Action     RuleAction `json:"action"`
}

// Validate checks the rule is well-formed and its expression compiles.
func (r Rule) Validate(engine *Engine) error {
	if r.Name == "" {
		return apperror.NewValidation("screening rule name is required")
	}
	switch r.Action {
	case ActionFlag, ActionReject:
	default:
		return apperror.NewValidation("screening rule action must be flag or reject").
			WithDetail("rule", r.Name).
			WithDetail("action", string(r.Action))
	}
	if _, err := engine.compile(r.Expression); err != nil {
		return apperror.NewValidation("screening rule expression does not compile").
			WithDetail("rule", r.Name).
			WithDetail("error", err.Error())
	}
	return nil
}

// Outcome is the aggregate result of evaluating all rules for an application.
type Outcome struct {
	Rejected bool
	Flagged  bool
	// Matched holds the names of rules that fired.
	Matched []string
}

// Engine compiles and evaluates screening rules. Compiled programs are
// cached by expression; the engine is safe for concurrent use.
type Engine struct {
	env *cel.Env

	mu       sync.RWMutex
	programs map[string]cel.Program
}

// NewEngine creates a screening engine.
// Expressions see a single variable `application`, a map of the submitted
// fields (email, first_name, last_name, phone, national_id plus any extra
// form answers).
func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("application", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create cel env: %w", err)
	}
	return &Engine{
		env:      env,
		programs: make(map[string]cel.Program),
	}, nil
}

func (e *Engine) compile(expression string) (cel.Program, error) {
	e.mu.RLock()
	prg, ok := e.programs[expression]
	e.mu.RUnlock()
	if ok {
		return prg, nil
	}

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program: %w", err)
	}

	e.mu.Lock()
	e.programs[expression] = prg
	e.mu.Unlock()
	return prg, nil
}

// Match evaluates a single rule against an application.
// A non-boolean result is a rule authoring error.
func (e *Engine) Match(rule Rule, application map[string]any) (bool, error) {
	prg, err := e.compile(rule.Expression)
	if err != nil {
		return false, fmt.Errorf("rule %q: %w", rule.Name, err)
	}

	out, _, err := prg.Eval(map[string]any{"application": application})
	if err != nil {
		return false, fmt.Errorf("rule %q: eval: %w", rule.Name, err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule %q: expression must evaluate to bool, got %T", rule.Name, out.Value())
	}
	return matched, nil
}

// Evaluate runs all rules and aggregates the outcome. Reject wins over flag.
// A rule that fails to evaluate is skipped; bad rules must not block intake.
func (e *Engine) Evaluate(rules []Rule, application map[string]any) (Outcome, error) {
	var outcome Outcome
	var lastErr error

	for _, rule := range rules {
		matched, err := e.Match(rule, application)
		if err != nil {
			lastErr = err
			continue
		}
		if !matched {
			continue
		}
		outcome.Matched = append(outcome.Matched, rule.Name)
		switch rule.Action {
		case ActionReject:
			outcome.Rejected = true
		case ActionFlag:
			outcome.Flagged = true
		}
	}

	return outcome, lastErr
}
