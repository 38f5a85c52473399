package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rmaciel/fundiario/internal/audit"
	"github.com/rmaciel/fundiario/internal/budget"
	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/rmaciel/fundiario/internal/notify"
	"github.com/rmaciel/fundiario/internal/repository"
	"github.com/rmaciel/fundiario/internal/service"
	"github.com/rmaciel/fundiario/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) (*App, *testAppRepos) {
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
	budgets := service.NewBudgetService(projectRepo, stepRepo, serviceRepo, &budget.Catalog{})
	finance := service.NewFinanceService(txRepo, accountRepo, uow, nil)

	app := &App{
		Projects:    service.NewProjectService(projectRepo, clientRepo, serviceRepo, uow),
		Transitions: service.NewTransitionService(stepRepo, projectRepo, serviceRepo, budgets, finance, auditor, notify.Noop{}, nil),
		Finance:     finance,
		Documents:   service.NewDocumentService(stepRepo, projectRepo, sequenceRepo),
		Budgets:     budgets,
		Snapshots:   service.NewSnapshotService(projectRepo, clientRepo, txRepo, accountRepo, serviceRepo, appointmentRepo, 0, nil),
		Reminders:   service.NewReminderService(appointmentRepo, reminderRepo),
		Actor:       testutil.TestActor,
	}
	return app, &testAppRepos{
		Clients:      clientRepo,
		Services:     serviceRepo,
		Accounts:     accountRepo,
		Appointments: appointmentRepo,
	}
}

type testAppRepos struct {
	Clients      repository.ClientRepo
	Services     repository.ServiceTypeRepo
	Accounts     repository.AccountRepo
	Appointments repository.AppointmentRepo
}

// seedProject creates a client, a service type, and a project through the
// service layer so the full step set exists.
func seedProject(t *testing.T, app *App, repos *testAppRepos, serviceName string) *domain.Project {
	t.Helper()
	ctx := context.Background()

	client := testutil.NewTestClient("Cliente CLI")
	require.NoError(t, repos.Clients.Create(ctx, client))
	svcType := testutil.NewTestServiceType(serviceName)
	require.NoError(t, repos.Services.Create(ctx, svcType))

	p := &domain.Project{
		Title:     "Fazenda Boa Vista",
		ClientID:  client.ID,
		ServiceID: svcType.ID,
	}
	require.NoError(t, app.Projects.Create(ctx, app.Actor, p))
	return p
}

// executeCmd runs a cobra command and captures cobra's own output. Most
// commands print their tables via fmt.Print, so assertions here lean on
// the returned error rather than the buffer.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- root ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app, _ := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "fundiario")
}

// --- project commands ---

func TestProjectAddCmd_RequiresFlags(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "project", "add")
	assert.Error(t, err)
}

func TestProjectAddCmd_Success(t *testing.T) {
	app, repos := testApp(t)
	ctx := context.Background()

	client := testutil.NewTestClient("Cliente CLI")
	require.NoError(t, repos.Clients.Create(ctx, client))
	svcType := testutil.NewTestServiceType("Georreferenciamento")
	require.NoError(t, repos.Services.Create(ctx, svcType))

	_, err := executeCmd(t, app, "project", "add",
		"--title", "Sítio São João",
		"--client", client.ID,
		"--service", svcType.ID)
	require.NoError(t, err)

	projects, err := app.Projects.List(ctx, app.Actor.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Sítio São João", projects[0].Title)
}

func TestProjectAddCmd_CreateAlias(t *testing.T) {
	app, repos := testApp(t)
	ctx := context.Background()

	client := testutil.NewTestClient("Cliente CLI")
	require.NoError(t, repos.Clients.Create(ctx, client))
	svcType := testutil.NewTestServiceType("Georreferenciamento")
	require.NoError(t, repos.Services.Create(ctx, svcType))

	_, err := executeCmd(t, app, "project", "create",
		"--title", "Sítio São João",
		"--client", client.ID,
		"--service", svcType.ID)
	require.NoError(t, err)
}

func TestProjectListCmd_Empty(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "project", "list")
	require.NoError(t, err)
}

func TestProjectShowCmd_ByNumber(t *testing.T) {
	app, repos := testApp(t)
	seedProject(t, app, repos, "Georreferenciamento")

	_, err := executeCmd(t, app, "project", "show", "1")
	require.NoError(t, err)
}

func TestProjectShowCmd_NotFound(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "project", "show", "99")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "project not found")
}

func TestProjectRemoveCmd_DeleteAlias(t *testing.T) {
	app, repos := testApp(t)
	p := seedProject(t, app, repos, "Georreferenciamento")

	_, err := executeCmd(t, app, "project", "delete", "1")
	require.NoError(t, err)

	_, err = app.Projects.GetWithSteps(context.Background(), p.ID)
	assert.Error(t, err)
}

// --- step commands ---

func TestStepSetCmd_Done(t *testing.T) {
	app, repos := testApp(t)
	seedProject(t, app, repos, "Georreferenciamento")

	_, err := executeCmd(t, app, "step", "set", "1", "0", "done")
	require.NoError(t, err)
}

func TestStepSetCmd_UnknownStatus(t *testing.T) {
	app, repos := testApp(t)
	seedProject(t, app, repos, "Georreferenciamento")

	_, err := executeCmd(t, app, "step", "set", "1", "0", "archived")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status")
}

func TestStepSetCmd_InvalidOrdinal(t *testing.T) {
	app, repos := testApp(t)
	seedProject(t, app, repos, "Georreferenciamento")

	_, err := executeCmd(t, app, "step", "set", "1", "abc", "done")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid step ordinal")
}

// --- doc commands ---

func TestDocNumberCmd_Allocates(t *testing.T) {
	app, repos := testApp(t)
	seedProject(t, app, repos, "Georreferenciamento")

	_, err := executeCmd(t, app, "doc", "number", "1", "0")
	require.NoError(t, err)
}

func TestDocNumberCmd_StepWithoutDocument(t *testing.T) {
	app, repos := testApp(t)
	seedProject(t, app, repos, "Georreferenciamento")

	// Ordinal 4 is the field survey, which carries no document.
	_, err := executeCmd(t, app, "doc", "number", "1", "4")
	assert.Error(t, err)
}

func TestDocSetCmd_MalformedNumber(t *testing.T) {
	app, repos := testApp(t)
	seedProject(t, app, repos, "Georreferenciamento")

	_, err := executeCmd(t, app, "doc", "set", "1", "0", "rascunho")
	assert.Error(t, err)
}

// --- budget command ---

func TestBudgetShowCmd(t *testing.T) {
	app, repos := testApp(t)
	seedProject(t, app, repos, "Georreferenciamento")

	_, err := executeCmd(t, app, "budget", "show", "1")
	require.NoError(t, err)
}

// --- finance commands ---

func TestFinanceTransferCmd_Success(t *testing.T) {
	app, repos := testApp(t)
	ctx := context.Background()

	from := testutil.NewTestAccount("Conta Corrente")
	require.NoError(t, repos.Accounts.Create(ctx, from))
	to := testutil.NewTestAccount("Poupança")
	require.NoError(t, repos.Accounts.Create(ctx, to))

	_, err := executeCmd(t, app, "finance", "transfer",
		"--from", from.ID, "--to", to.ID, "--amount", "1500.00")
	require.NoError(t, err)

	txs, err := app.Finance.List(ctx, app.Actor.ID)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestFinanceTransferCmd_InvalidAmount(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "finance", "transfer",
		"--from", "a", "--to", "b", "--amount", "muito")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")
}

func TestFinanceReceiptCmd_DerivesIncome(t *testing.T) {
	app, repos := testApp(t)
	ctx := context.Background()
	seedProject(t, app, repos, "Georreferenciamento")

	account := testutil.NewTestAccount("Conta Corrente")
	require.NoError(t, repos.Accounts.Create(ctx, account))

	_, err := executeCmd(t, app, "finance", "receipt", "1")
	require.NoError(t, err)

	txs, err := app.Finance.List(ctx, app.Actor.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TransactionIncome, txs[0].Type)
	assert.Equal(t, domain.TransactionPaid, txs[0].Status)
}

func TestFinanceListCmd_Empty(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "finance", "list")
	require.NoError(t, err)
}

// --- agenda command ---

func TestAgendaCmd_ClaimsOnce(t *testing.T) {
	app, repos := testApp(t)
	ctx := context.Background()

	appt := testutil.NewTestAppointment("Vistoria", time.Now().UTC())
	require.NoError(t, repos.Appointments.Create(ctx, appt))

	_, err := executeCmd(t, app, "agenda")
	require.NoError(t, err)

	// The second call hits the already-shown path; still no error.
	_, err = executeCmd(t, app, "agenda")
	require.NoError(t, err)
}

// --- status command ---

func TestStatusCmd_EmptyDB(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "status")
	require.NoError(t, err)
}

func TestStatusCmd_WithData(t *testing.T) {
	app, repos := testApp(t)
	seedProject(t, app, repos, "Georreferenciamento")

	_, err := executeCmd(t, app, "status")
	require.NoError(t, err)
}
