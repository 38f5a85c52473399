package cli

import (
	"fmt"

	"github.com/rmaciel/fundiario/internal/cli/formatter"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/rmaciel/fundiario/internal/notify"
	"github.com/rmaciel/fundiario/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands,
// plus the acting user resolved from the environment.
type App struct {
	Projects    service.ProjectService
	Transitions service.TransitionService
	Finance     service.FinanceService
	Documents   service.DocumentService
	Budgets     service.BudgetService
	Snapshots   service.SnapshotService
	Reminders   service.ReminderService

	Actor domain.Actor
}

// NewRootCmd creates the top-level "fundiario" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "fundiario",
		Short: "Rural-land certification project tracker",
	}

	root.AddCommand(
		newProjectCmd(app),
		newStepCmd(app),
		newDocCmd(app),
		newBudgetCmd(app),
		newFinanceCmd(app),
		newAgendaCmd(app),
		newStatusCmd(app),
	)

	return root
}

// cliNotifier prints caller-facing notifications with severity coloring.
type cliNotifier struct{}

// NewCLINotifier returns the notifier used for interactive runs.
func NewCLINotifier() notify.Notifier {
	return cliNotifier{}
}

func (cliNotifier) Notify(message string, severity notify.Severity) {
	fmt.Println(formatter.SeverityStyle(severity).Render(message))
}
