package candidate

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/id"
)

func TestNew_NormalizesEmail(t *testing.T) {
	c := New(id.New(), "  Ana.Lopez@Example.COM ")

	assert.Equal(t, "ana.lopez@example.com", c.Email)
	assert.Equal(t, StageApplied, c.Stage)
	require.NoError(t, c.Validate(context.Background()))
}

func TestMoveTo_PipelineOrder(t *testing.T) {
	c := New(id.New(), "ana@example.com")

	for _, stage := range []Stage{StageScreening, StageInterview, StageOffer, StageHired} {
		require.NoError(t, c.MoveTo(stage), "move to %s", stage)
		assert.Equal(t, stage, c.Stage)
	}
}

func TestMoveTo_NoSkipping(t *testing.T) {
	c := New(id.New(), "ana@example.com")

	err := c.MoveTo(StageInterview)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)
	assert.Equal(t, StageApplied, c.Stage)
}

func TestMoveTo_RejectedFromAnyNonTerminal(t *testing.T) {
	for _, from := range []Stage{StageApplied, StageScreening, StageInterview, StageOffer} {
		c := New(id.New(), "ana@example.com")
		c.Stage = from
		require.NoError(t, c.MoveTo(StageRejected), "reject from %s", from)
	}
}

func TestMoveTo_TerminalStages(t *testing.T) {
	for _, terminal := range []Stage{StageHired, StageRejected} {
		c := New(id.New(), "ana@example.com")
		c.Stage = terminal
		for _, target := range []Stage{StageApplied, StageScreening, StageInterview, StageOffer, StageHired, StageRejected} {
			assert.False(t, c.CanMoveTo(target), "%s -> %s must be blocked", terminal, target)
		}
	}
}

func TestMoveTo_HiredRequiresDocuments(t *testing.T) {
	c := New(id.New(), "ana@example.com")
	c.Stage = StageOffer
	c.Documents = Documents{
		{Name: "id card", Required: true, Received: true},
		{Name: "work permit", Required: true, Received: false},
		{Name: "diploma", Required: false, Received: false},
	}

	err := c.MoveTo(StageHired)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
	assert.Equal(t, StageOffer, c.Stage)

	require.NoError(t, c.MarkDocumentReceived("work permit", time.Now()))
	require.NoError(t, c.MoveTo(StageHired))
}

func TestMarkDocumentReceived(t *testing.T) {
	c := New(id.New(), "ana@example.com")
	c.Documents = Documents{{Name: "id card", Required: true}}

	at := time.Now()
	require.NoError(t, c.MarkDocumentReceived("id card", at))
	assert.True(t, c.Documents[0].Received)
	require.NotNil(t, c.Documents[0].ReceivedAt)
	assert.Equal(t, at, *c.Documents[0].ReceivedAt)

	err := c.MarkDocumentReceived("missing doc", at)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDocuments_Complete(t *testing.T) {
	assert.True(t, Documents{}.Complete(), "empty checklist is complete")
	assert.True(t, Documents{{Name: "x", Required: false}}.Complete())
	assert.False(t, Documents{{Name: "x", Required: true}}.Complete())
	assert.True(t, Documents{{Name: "x", Required: true, Received: true}}.Complete())
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	noCampaign := New(id.Nil(), "ana@example.com")
	assert.Error(t, noCampaign.Validate(ctx))

	noEmail := New(id.New(), "")
	assert.Error(t, noEmail.Validate(ctx))

	badEmail := New(id.New(), "not-an-email")
	assert.Error(t, badEmail.Validate(ctx))

	badStage := New(id.New(), "ana@example.com")
	badStage.Stage = Stage("limbo")
	assert.Error(t, badStage.Validate(ctx))
}

func TestContractTerms_Validate(t *testing.T) {
	valid := ContractTerms{Position: "Operator", Salary: decimal.NewFromInt(24000), Currency: "EUR"}
	assert.NoError(t, valid.Validate())

	noPosition := ContractTerms{Salary: decimal.NewFromInt(1)}
	assert.Error(t, noPosition.Validate())

	negative := ContractTerms{Position: "Operator", Salary: decimal.NewFromInt(-1)}
	assert.Error(t, negative.Validate())

	c := New(id.New(), "ana@example.com")
	c.Contract = &negative
	assert.Error(t, c.Validate(context.Background()))
}

func TestFullName(t *testing.T) {
	c := New(id.New(), "ana@example.com")
	assert.Equal(t, "", c.FullName())

	c.FirstName = "Ana"
	assert.Equal(t, "Ana", c.FullName())

	c.LastName = "López"
	assert.Equal(t, "Ana López", c.FullName())
}
