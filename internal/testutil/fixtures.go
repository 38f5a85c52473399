package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/rmaciel/fundiario/internal/repository"
	"github.com/rmaciel/fundiario/internal/workflow"
	"github.com/shopspring/decimal"
)

// TestOwner is the owner ID all fixtures are scoped to.
const TestOwner = "owner-1"

// TestActor is an admin actor for service calls that gate on role.
var TestActor = domain.Actor{ID: TestOwner, Role: domain.RoleAdmin}

// OperatorActor is a non-admin actor for authorization tests.
var OperatorActor = domain.Actor{ID: TestOwner, Role: domain.RoleOperator}

func NewTestClient(name string) *domain.Client {
	now := time.Now().UTC()
	return &domain.Client{
		ID:        uuid.New().String(),
		OwnerID:   TestOwner,
		Name:      name,
		Document:  "000.000.000-00",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ServiceTypeOption mutates a fixture service type.
type ServiceTypeOption func(*domain.ServiceType)

func WithBasePrice(price decimal.Decimal) ServiceTypeOption {
	return func(s *domain.ServiceType) {
		s.BasePrice = price
	}
}

func NewTestServiceType(name string, opts ...ServiceTypeOption) *domain.ServiceType {
	now := time.Now().UTC()
	s := &domain.ServiceType{
		ID:        uuid.New().String(),
		OwnerID:   TestOwner,
		Name:      name,
		BasePrice: decimal.NewFromInt(5000),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestAccount(name string) *domain.Account {
	now := time.Now().UTC()
	return &domain.Account{
		ID:        uuid.New().String(),
		OwnerID:   TestOwner,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestAppointment(title string, day time.Time) *domain.Appointment {
	now := time.Now().UTC()
	return &domain.Appointment{
		ID:        uuid.New().String(),
		OwnerID:   TestOwner,
		Title:     title,
		Date:      day,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SeedProject creates a client, a service type, and a project with its full
// step set directly through the repositories, bypassing the service layer.
// Returns the project with steps attached.
func SeedProject(t *testing.T, database db.DBTX, title, serviceName string) *domain.Project {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	client := NewTestClient("Cliente " + title)
	if err := repository.NewSQLiteClientRepo(database).Create(ctx, client); err != nil {
		t.Fatalf("seeding client: %v", err)
	}
	svcType := NewTestServiceType(serviceName)
	if err := repository.NewSQLiteServiceTypeRepo(database).Create(ctx, svcType); err != nil {
		t.Fatalf("seeding service type: %v", err)
	}

	seqRepo := repository.NewSQLiteDocumentSequenceRepo(database)
	number, err := seqRepo.NextProjectNumber(ctx, TestOwner)
	if err != nil {
		t.Fatalf("allocating project number: %v", err)
	}

	project := &domain.Project{
		ID:        uuid.New().String(),
		OwnerID:   TestOwner,
		Number:    number,
		Title:     title,
		ClientID:  client.ID,
		ServiceID: svcType.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repository.NewSQLiteProjectRepo(database).Create(ctx, project); err != nil {
		t.Fatalf("seeding project: %v", err)
	}

	stepRepo := repository.NewSQLiteStepRepo(database)
	steps := workflow.BuildSteps(project.ID, workflow.TemplateFor(serviceName), now)
	for _, s := range steps {
		if err := stepRepo.Create(ctx, s); err != nil {
			t.Fatalf("seeding step %d: %v", s.Ordinal, err)
		}
	}
	project.Steps = steps
	return project
}
