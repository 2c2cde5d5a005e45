package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine()
	require.NoError(t, err)
	return engine
}

func TestMatch(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name        string
		expression  string
		application map[string]any
		want        bool
	}{
		{
			name:        "underage",
			expression:  `int(application.age) < 18`,
			application: map[string]any{"age": "16"},
			want:        true,
		},
		{
			name:        "of age",
			expression:  `int(application.age) < 18`,
			application: map[string]any{"age": "31"},
			want:        false,
		},
		{
			name:        "missing optional field",
			expression:  `!has(application.driver_license)`,
			application: map[string]any{"email": "a@b.c"},
			want:        true,
		},
		{
			name:        "string match",
			expression:  `application.email.endsWith("@competitor.com")`,
			application: map[string]any{"email": "spy@competitor.com"},
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Match(Rule{Name: tt.name, Expression: tt.expression, Action: ActionFlag}, tt.application)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_Errors(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Match(Rule{Name: "broken", Expression: `application.`}, nil)
	assert.Error(t, err, "syntax error must surface")

	_, err = engine.Match(Rule{Name: "non-bool", Expression: `application.email`},
		map[string]any{"email": "a@b.c"})
	assert.Error(t, err, "non-boolean result is a rule authoring error")
}

func TestEvaluate_RejectWinsOverFlag(t *testing.T) {
	engine := newTestEngine(t)

	rules := []Rule{
		{Name: "flag weekends", Expression: `application.availability == "weekends"`, Action: ActionFlag},
		{Name: "reject underage", Expression: `int(application.age) < 18`, Action: ActionReject},
	}

	outcome, err := engine.Evaluate(rules, map[string]any{"availability": "weekends", "age": "17"})
	require.NoError(t, err)

	assert.True(t, outcome.Rejected)
	assert.True(t, outcome.Flagged)
	assert.ElementsMatch(t, []string{"flag weekends", "reject underage"}, outcome.Matched)
}

func TestEvaluate_BadRuleSkipped(t *testing.T) {
	engine := newTestEngine(t)

	rules := []Rule{
		{Name: "broken", Expression: `this is not cel`, Action: ActionReject},
		{Name: "working", Expression: `application.email == "a@b.c"`, Action: ActionFlag},
	}

	outcome, err := engine.Evaluate(rules, map[string]any{"email": "a@b.c"})

	// The broken rule reports an error but must not block the good one.
	assert.Error(t, err)
	assert.False(t, outcome.Rejected)
	assert.True(t, outcome.Flagged)
	assert.Equal(t, []string{"working"}, outcome.Matched)
}

func TestEvaluate_NoRules(t *testing.T) {
	engine := newTestEngine(t)

	outcome, err := engine.Evaluate(nil, map[string]any{"email": "a@b.c"})
	require.NoError(t, err)
	assert.False(t, outcome.Rejected)
	assert.False(t, outcome.Flagged)
	assert.Empty(t, outcome.Matched)
}

func TestRule_Validate(t *testing.T) {
	engine := newTestEngine(t)

	valid := Rule{Name: "ok", Expression: `application.age == "18"`, Action: ActionFlag}
	assert.NoError(t, valid.Validate(engine))

	unnamed := Rule{Expression: `true`, Action: ActionFlag}
	assert.Error(t, unnamed.Validate(engine))

	badAction := Rule{Name: "x", Expression: `true`, Action: RuleAction("drop")}
	assert.Error(t, badAction.Validate(engine))

	badExpr := Rule{Name: "x", Expression: `](`, Action: ActionReject}
	assert.Error(t, badExpr.Validate(engine))
}

func TestEngine_CachesPrograms(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.compile(`application.age == "18"`)
	require.NoError(t, err)

	engine.mu.RLock()
	cached := len(engine.programs)
	engine.mu.RUnlock()
	assert.Equal(t, 1, cached)

	_, err = engine.compile(`application.age == "18"`)
	require.NoError(t, err)

	engine.mu.RLock()
	cached = len(engine.programs)
	engine.mu.RUnlock()
	assert.Equal(t, 1, cached)
}
