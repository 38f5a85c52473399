package workflow

import (
	"testing"
	"time"

	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepsWithStatuses(statuses ...domain.StepStatus) []*domain.Step {
	steps := make([]*domain.Step, 0, len(statuses))
	for i, st := range statuses {
		steps = append(steps, &domain.Step{Ordinal: i, Status: st})
	}
	return steps
}

func TestFrontier_AllNotStarted(t *testing.T) {
	steps := stepsWithStatuses(
		domain.StepNotStarted, domain.StepNotStarted, domain.StepNotStarted)
	assert.Equal(t, 0, Frontier(steps, 3))
}

func TestFrontier_FirstIncompleteAfterCompletedPrefix(t *testing.T) {
	steps := stepsWithStatuses(
		domain.StepCompleted, domain.StepCompleted,
		domain.StepNotStarted, domain.StepNotStarted)
	assert.Equal(t, 2, Frontier(steps, 4))
}

func TestFrontier_WaitingApprovalCountsAsIncomplete(t *testing.T) {
	steps := stepsWithStatuses(
		domain.StepCompleted, domain.StepWaitingApproval, domain.StepNotStarted)
	assert.Equal(t, 1, Frontier(steps, 3))
}

func TestFrontier_GapDoesNotAdvancePastIncomplete(t *testing.T) {
	// A completed step beyond the frontier must not move it forward.
	steps := stepsWithStatuses(
		domain.StepCompleted, domain.StepNotStarted,
		domain.StepCompleted, domain.StepNotStarted)
	assert.Equal(t, 1, Frontier(steps, 4))
}

func TestFrontier_AllCompletedFallsBackToTemplateLength(t *testing.T) {
	steps := stepsWithStatuses(
		domain.StepCompleted, domain.StepCompleted, domain.StepCompleted)
	assert.Equal(t, 2, Frontier(steps, 3))

	// The fallback follows the template, not the stored step count.
	assert.Equal(t, 9, Frontier(steps, 10))
}

func TestFrontier_UnorderedInputIsSortedByOrdinal(t *testing.T) {
	steps := []*domain.Step{
		{Ordinal: 2, Status: domain.StepNotStarted},
		{Ordinal: 0, Status: domain.StepCompleted},
		{Ordinal: 1, Status: domain.StepCompleted},
	}
	assert.Equal(t, 2, Frontier(steps, 3))
	// The input slice itself stays untouched.
	assert.Equal(t, 2, steps[0].Ordinal)
}

func TestTemplateFor_SelectsByServiceName(t *testing.T) {
	assert.Equal(t, Standard, TemplateFor("Georreferenciamento de Imóvel Rural"))
	assert.Equal(t, Environmental, TemplateFor("Inscrição no CAR"))
	// Marker match is case-insensitive.
	assert.Equal(t, Environmental, TemplateFor("cadastro car"))
	assert.Equal(t, Standard, TemplateFor(""))
}

func TestTemplates_BothVariantsCarryBudgetAndReceipt(t *testing.T) {
	for _, template := range [][]StepTemplate{Standard, Environmental} {
		var hasBudget, hasReceipt bool
		for _, s := range template {
			if s.Label == LabelBudget {
				hasBudget = true
				assert.Equal(t, 0, s.Ordinal)
				assert.True(t, s.HasDocument)
			}
			if s.Label == LabelReceipt {
				hasReceipt = true
				assert.True(t, s.HasDocument)
			}
		}
		assert.True(t, hasBudget)
		assert.True(t, hasReceipt)
	}
}

func TestBuildSteps_InstantiatesTemplate(t *testing.T) {
	now := time.Now().UTC()
	steps := BuildSteps("proj-1", Standard, now)
	require.Len(t, steps, len(Standard))

	for i, s := range steps {
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, "proj-1", s.ProjectID)
		assert.Equal(t, i, s.Ordinal)
		assert.Equal(t, Standard[i].Label, s.Label)
		assert.Equal(t, Standard[i].HasDocument, s.HasDocument)
		if i == 0 {
			assert.Equal(t, domain.StepInProgress, s.Status)
		} else {
			assert.Equal(t, domain.StepNotStarted, s.Status)
		}
		assert.Nil(t, s.CompletedAt)
	}
}
