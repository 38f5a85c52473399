package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/rmaciel/fundiario/internal/audit"
	"github.com/rmaciel/fundiario/internal/budget"
	"github.com/rmaciel/fundiario/internal/cli"
	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/rmaciel/fundiario/internal/notify"
	"github.com/rmaciel/fundiario/internal/repository"
	"github.com/rmaciel/fundiario/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.fundiario/fundiario.db
	dbPath := os.Getenv("FUNDIARIO_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".fundiario", "fundiario.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Budget item catalog: optional, a missing file means an empty catalog.
	catalogPath := os.Getenv("FUNDIARIO_CATALOG")
	if catalogPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		catalogPath = filepath.Join(home, ".fundiario", "catalog.yaml")
	}
	catalog, err := budget.LoadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("loading budget catalog: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	stepRepo := repository.NewSQLiteStepRepo(database)
	transactionRepo := repository.NewSQLiteTransactionRepo(database)
	clientRepo := repository.NewSQLiteClientRepo(database)
	serviceRepo := repository.NewSQLiteServiceTypeRepo(database)
	accountRepo := repository.NewSQLiteAccountRepo(database)
	appointmentRepo := repository.NewSQLiteAppointmentRepo(database)
	sequenceRepo := repository.NewSQLiteDocumentSequenceRepo(database)
	reminderRepo := repository.NewSQLiteReminderMarkRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	auditor := audit.BestEffort{
		Sink:   repository.NewSQLiteAuditSink(database),
		Logger: logger,
	}

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("FUNDIARIO_LOG_USECASES") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	// Interactive runs get colored notifications; piped runs keep them on
	// the structured logger.
	var notifier notify.Notifier = notify.SlogNotifier{Logger: logger}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		notifier = cli.NewCLINotifier()
	}

	// Wire services
	budgetSvc := service.NewBudgetService(projectRepo, stepRepo, serviceRepo, catalog)
	financeSvc := service.NewFinanceService(transactionRepo, accountRepo, uow, observer)

	app := &cli.App{
		Projects:    service.NewProjectService(projectRepo, clientRepo, serviceRepo, uow),
		Transitions: service.NewTransitionService(stepRepo, projectRepo, serviceRepo, budgetSvc, financeSvc, auditor, notifier, observer),
		Finance:     financeSvc,
		Documents:   service.NewDocumentService(stepRepo, projectRepo, sequenceRepo),
		Budgets:     budgetSvc,
		Snapshots:   service.NewSnapshotService(projectRepo, clientRepo, transactionRepo, accountRepo, serviceRepo, appointmentRepo, 0, observer),
		Reminders:   service.NewReminderService(appointmentRepo, reminderRepo),
		Actor:       actorFromEnv(),
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// actorFromEnv resolves the acting user. Single-user installs run as the
// default admin; FUNDIARIO_USER and FUNDIARIO_ROLE override both fields.
func actorFromEnv() domain.Actor {
	actor := domain.Actor{ID: "default", Role: domain.RoleAdmin}
	if id := os.Getenv("FUNDIARIO_USER"); id != "" {
		actor.ID = id
	}
	if role := os.Getenv("FUNDIARIO_ROLE"); role != "" {
		actor.Role = domain.Role(role)
	}
	return actor
}
