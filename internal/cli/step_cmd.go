package cli

import (
	"fmt"
	"strconv"

	"github.com/rmaciel/fundiario/internal/cli/formatter"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/rmaciel/fundiario/internal/service"
	"github.com/spf13/cobra"
)

var statusAliases = map[string]domain.StepStatus{
	"todo":             domain.StepNotStarted,
	"start":            domain.StepInProgress,
	"review":           domain.StepWaitingApproval,
	"done":             domain.StepCompleted,
	"NOT_STARTED":      domain.StepNotStarted,
	"IN_PROGRESS":      domain.StepInProgress,
	"WAITING_APPROVAL": domain.StepWaitingApproval,
	"COMPLETED":        domain.StepCompleted,
}

func newStepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Transition project steps",
	}
	cmd.AddCommand(newStepSetCmd(app))
	return cmd
}

func newStepSetCmd(app *App) *cobra.Command {
	var notes, number string

	cmd := &cobra.Command{
		Use:   "set <project> <ordinal> <status>",
		Short: "Change one step's status and recompute the frontier",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(app, cmd, args[0])
			if err != nil {
				return err
			}
			full, err := app.Projects.GetWithSteps(cmd.Context(), p.ID)
			if err != nil {
				return err
			}

			ordinal, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid step ordinal %q", args[1])
			}
			step, err := full.StepByOrdinal(ordinal)
			if err != nil {
				return err
			}

			status, ok := statusAliases[args[2]]
			if !ok {
				return fmt.Errorf("unknown status %q (use todo|start|review|done)", args[2])
			}

			req := service.TransitionRequest{StepID: step.ID, Status: status}
			if cmd.Flags().Changed("notes") {
				req.Notes = &notes
			}
			if cmd.Flags().Changed("number") {
				req.DocumentNumber = &number
			}

			updated, err := app.Transitions.Transition(cmd.Context(), app.Actor, req)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", updated.Label, formatter.StepStatusIndicator(updated.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "step notes")
	cmd.Flags().StringVar(&number, "number", "", "document number (NNNN/YYYY)")

	return cmd
}
