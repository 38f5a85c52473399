package service

import (
	"context"
	"testing"

	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/rmaciel/fundiario/internal/testutil"
	"github.com/rmaciel/fundiario/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_CompletionSetsCompletedAt(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, h.db, "Fazenda Aurora", "Georreferenciamento")

	step, err := h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
		StepID: project.Steps[0].ID,
		Status: domain.StepCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StepCompleted, step.Status)
	require.NotNil(t, step.CompletedAt)

	fetched, err := h.steps.GetByID(ctx, step.ID)
	require.NoError(t, err)
	assert.NotNil(t, fetched.CompletedAt)
}

func TestTransition_ReopeningClearsCompletedAt(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, h.db, "Fazenda Aurora", "Georreferenciamento")
	stepID := project.Steps[0].ID

	_, err := h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
		StepID: stepID, Status: domain.StepCompleted,
	})
	require.NoError(t, err)

	step, err := h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
		StepID: stepID, Status: domain.StepInProgress,
	})
	require.NoError(t, err)
	assert.Nil(t, step.CompletedAt)

	fetched, err := h.steps.GetByID(ctx, stepID)
	require.NoError(t, err)
	assert.Nil(t, fetched.CompletedAt)
}

func TestTransition_RejectsInvalidStatus(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, h.db, "Fazenda Aurora", "Georreferenciamento")

	_, err := h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
		StepID: project.Steps[0].ID,
		Status: domain.StepStatus("ARCHIVED"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid step status")
}

func TestTransition_FrontierAdvancesAndPersists(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, h.db, "Fazenda Aurora", "Georreferenciamento")

	for i := 0; i < 3; i++ {
		_, err := h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
			StepID: project.Steps[i].ID,
			Status: domain.StepCompleted,
		})
		require.NoError(t, err)
	}

	fetched, err := h.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, fetched.FrontierIndex)
}

func TestTransition_FrontierRetreatsOnReopen(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, h.db, "Fazenda Aurora", "Georreferenciamento")

	for i := 0; i < 2; i++ {
		_, err := h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
			StepID: project.Steps[i].ID, Status: domain.StepCompleted,
		})
		require.NoError(t, err)
	}

	_, err := h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
		StepID: project.Steps[0].ID, Status: domain.StepInProgress,
	})
	require.NoError(t, err)

	fetched, err := h.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.FrontierIndex)
}

func TestTransition_AllCompletedFrontierRestsOnLastStep(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.seedAccount(t, "Conta Principal")
	project := testutil.SeedProject(t, h.db, "Fazenda Aurora", "Inscrição no CAR")

	for _, s := range project.Steps {
		_, err := h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
			StepID: s.ID, Status: domain.StepCompleted,
		})
		require.NoError(t, err)
	}

	fetched, err := h.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, len(workflow.Environmental)-1, fetched.FrontierIndex)
}

func TestTransition_AuditTrailOnlyOnCompletion(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, h.db, "Fazenda Aurora", "Georreferenciamento")
	stepID := project.Steps[1].ID

	_, err := h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
		StepID: stepID, Status: domain.StepWaitingApproval,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, h.auditCount(t, "step approval"))

	_, err = h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
		StepID: stepID, Status: domain.StepCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, h.auditCount(t, "step approval"))
}

func TestTransition_Notifications(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, h.db, "Fazenda Aurora", "Georreferenciamento")
	stepID := project.Steps[1].ID

	_, err := h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
		StepID: stepID, Status: domain.StepWaitingApproval,
	})
	require.NoError(t, err)

	_, err = h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
		StepID: stepID, Status: domain.StepCompleted,
	})
	require.NoError(t, err)

	messages := h.notifier.Messages()
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0], "Aprovação solicitada")
	assert.Contains(t, messages[1], "Etapa concluída")

	// Moving back to in-progress is silent.
	_, err = h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
		StepID: stepID, Status: domain.StepInProgress,
	})
	require.NoError(t, err)
	assert.Len(t, h.notifier.Messages(), 2)
}

func TestTransition_AppliesNotesAndDocumentNumber(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, h.db, "Fazenda Aurora", "Georreferenciamento")
	notes := "protocolo aberto no SIGEF"
	number := "0002/2026"

	step, err := h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
		StepID:         project.Steps[3].ID,
		Status:         domain.StepInProgress,
		Notes:          &notes,
		DocumentNumber: &number,
	})
	require.NoError(t, err)
	assert.Equal(t, notes, step.Notes)
	require.NotNil(t, step.DocumentNumber)
	assert.Equal(t, number, *step.DocumentNumber)
}

func TestTransition_ReceiptCompletionDerivesIncome(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	accountID := h.seedAccount(t, "Conta Principal")
	project := testutil.SeedProject(t, h.db, "Fazenda Aurora", "Georreferenciamento")

	receipt := project.StepByLabel(workflow.LabelReceipt)
	require.NotNil(t, receipt)

	_, err := h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
		StepID: receipt.ID, Status: domain.StepCompleted,
	})
	require.NoError(t, err)

	txs, err := h.txs.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)

	income := txs[0]
	assert.Equal(t, domain.TransactionIncome, income.Type)
	assert.Equal(t, domain.TransactionPaid, income.Status)
	assert.Equal(t, CategoryServices, income.Category)
	assert.Equal(t, accountID, income.AccountID)
	assert.Equal(t, domain.PaymentPix, income.PaymentMethod)
	require.NotNil(t, income.PaymentDate)
	// The legacy seed prices the first item from the service base price.
	assert.True(t, income.Amount.Equal(testutil.NewTestServiceType("x").BasePrice))
}

func TestTransition_NonReceiptCompletionDerivesNothing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.seedAccount(t, "Conta Principal")
	project := testutil.SeedProject(t, h.db, "Fazenda Aurora", "Georreferenciamento")

	_, err := h.Transitions.Transition(ctx, testutil.TestActor, TransitionRequest{
		StepID: project.Steps[0].ID, Status: domain.StepCompleted,
	})
	require.NoError(t, err)

	txs, err := h.txs.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestTransition_OperatorMayTransition(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, h.db, "Fazenda Aurora", "Georreferenciamento")

	_, err := h.Transitions.Transition(ctx, testutil.OperatorActor, TransitionRequest{
		StepID: project.Steps[0].ID, Status: domain.StepWaitingApproval,
	})
	assert.NoError(t, err)
}
