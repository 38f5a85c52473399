package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/rmaciel/fundiario/internal/audit"
	"github.com/rmaciel/fundiario/internal/budget"
	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/notify"
	"github.com/rmaciel/fundiario/internal/repository"
	"github.com/rmaciel/fundiario/internal/testutil"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures notifications for assertion.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string, _ notify.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// harness wires the full service graph over one test database.
type harness struct {
	db       *sql.DB
	projects repository.ProjectRepo
	steps    repository.StepRepo
	txs      repository.TransactionRepo
	accounts repository.AccountRepo
	notifier *recordingNotifier

	Projects    ProjectService
	Transitions TransitionService
	Finance     FinanceService
	Documents   DocumentService
	Budgets     BudgetService
	Snapshots   SnapshotService
	Reminders   ReminderService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)

	projectRepo := repository.NewSQLiteProjectRepo(database)
	stepRepo := repository.NewSQLiteStepRepo(database)
	txRepo := repository.NewSQLiteTransactionRepo(database)
	clientRepo := repository.NewSQLiteClientRepo(database)
	serviceRepo := repository.NewSQLiteServiceTypeRepo(database)
	accountRepo := repository.NewSQLiteAccountRepo(database)
	appointmentRepo := repository.NewSQLiteAppointmentRepo(database)
	sequenceRepo := repository.NewSQLiteDocumentSequenceRepo(database)
	reminderRepo := repository.NewSQLiteReminderMarkRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	auditor := audit.BestEffort{Sink: repository.NewSQLiteAuditSink(database)}
	notifier := &recordingNotifier{}

	budgets := NewBudgetService(projectRepo, stepRepo, serviceRepo, &budget.Catalog{})
	finance := NewFinanceService(txRepo, accountRepo, uow, nil)

	return &harness{
		db:       database,
		projects: projectRepo,
		steps:    stepRepo,
		txs:      txRepo,
		accounts: accountRepo,
		notifier: notifier,

		Projects:    NewProjectService(projectRepo, clientRepo, serviceRepo, uow),
		Transitions: NewTransitionService(stepRepo, projectRepo, serviceRepo, budgets, finance, auditor, notifier, nil),
		Finance:     finance,
		Documents:   NewDocumentService(stepRepo, projectRepo, sequenceRepo),
		Budgets:     budgets,
		Snapshots:   NewSnapshotService(projectRepo, clientRepo, txRepo, accountRepo, serviceRepo, appointmentRepo, 0, nil),
		Reminders:   NewReminderService(appointmentRepo, reminderRepo),
	}
}

// seedAccount registers an account so receipt derivation has a target.
func (h *harness) seedAccount(t *testing.T, name string) string {
	t.Helper()
	account := testutil.NewTestAccount(name)
	require.NoError(t, h.accounts.Create(context.Background(), account))
	return account.ID
}

// auditCount returns the number of audit entries for an action.
func (h *harness) auditCount(t *testing.T, action string) int {
	t.Helper()
	var n int
	err := h.db.QueryRow(`SELECT COUNT(*) FROM audit_log WHERE action = ?`, action).Scan(&n)
	require.NoError(t, err)
	return n
}
