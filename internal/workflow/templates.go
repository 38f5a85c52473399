// Package workflow holds the static step-template catalogs and the
// frontier computation over a project's ordered steps.
package workflow

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rmaciel/fundiario/internal/domain"
)

// StepTemplate describes one position of a workflow variant.
type StepTemplate struct {
	Ordinal     int
	Label       string
	HasDocument bool
}

// Labels shared by both variants and referenced by the engines: the budget
// step stores the saved item sheet, approving the receipt step derives the
// service income entry.
const (
	LabelBudget  = "Proposta de Orçamento"
	LabelReceipt = "Recibo"
)

// carMarker selects the environmental-registry variant when found in the
// service name, case-insensitively.
const carMarker = "CAR"

// Standard is the georeferencing certification workflow.
var Standard = []StepTemplate{
	{Ordinal: 0, Label: LabelBudget, HasDocument: true},
	{Ordinal: 1, Label: "Contrato de Prestação de Serviços", HasDocument: true},
	{Ordinal: 2, Label: "Ordem de Serviço", HasDocument: true},
	{Ordinal: 3, Label: "ART", HasDocument: true},
	{Ordinal: 4, Label: "Levantamento de Campo", HasDocument: false},
	{Ordinal: 5, Label: "Planta e Memorial Descritivo", HasDocument: true},
	{Ordinal: 6, Label: "Certificação SIGEF", HasDocument: false},
	{Ordinal: 7, Label: "Registro em Cartório", HasDocument: false},
	{Ordinal: 8, Label: LabelReceipt, HasDocument: true},
	{Ordinal: 9, Label: "Entrega Final", HasDocument: false},
}

// Environmental is the alternate variant for environmental-registry (CAR)
// services.
var Environmental = []StepTemplate{
	{Ordinal: 0, Label: LabelBudget, HasDocument: true},
	{Ordinal: 1, Label: "Contrato de Prestação de Serviços", HasDocument: true},
	{Ordinal: 2, Label: "Levantamento de Dados e Documentos", HasDocument: false},
	{Ordinal: 3, Label: "Georreferenciamento do Imóvel", HasDocument: false},
	{Ordinal: 4, Label: "Cadastro no SICAR", HasDocument: false},
	{Ordinal: 5, Label: LabelReceipt, HasDocument: true},
	{Ordinal: 6, Label: "Entrega Final", HasDocument: false},
}

// TemplateFor selects the workflow variant for a service by name: the
// environmental-registry template when the name contains the CAR marker
// token, the standard template otherwise.
func TemplateFor(serviceName string) []StepTemplate {
	if strings.Contains(strings.ToUpper(serviceName), carMarker) {
		return Environmental
	}
	return Standard
}

// BuildSteps instantiates a project's full step set from a template,
// one step per template entry. Ordinal 0 starts IN_PROGRESS, the rest
// NOT_STARTED.
func BuildSteps(projectID string, template []StepTemplate, now time.Time) []*domain.Step {
	steps := make([]*domain.Step, 0, len(template))
	for _, t := range template {
		status := domain.StepNotStarted
		if t.Ordinal == 0 {
			status = domain.StepInProgress
		}
		steps = append(steps, &domain.Step{
			ID:          uuid.New().String(),
			ProjectID:   projectID,
			Ordinal:     t.Ordinal,
			Label:       t.Label,
			HasDocument: t.HasDocument,
			Status:      status,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return steps
}
