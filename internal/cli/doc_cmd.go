package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDocCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Document numbers",
	}
	cmd.AddCommand(newDocNumberCmd(app), newDocSetCmd(app))
	return cmd
}

func newDocNumberCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "number <project> <ordinal>",
		Short: "Show a step's document number, allocating one on first use",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := resolveStep(app, cmd, args[0], args[1])
			if err != nil {
				return err
			}
			number, err := app.Documents.NumberFor(cmd.Context(), step.ID)
			if err != nil {
				return err
			}
			fmt.Println(number)
			return nil
		},
	}
}

func newDocSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <project> <ordinal> <number>",
		Short: "Set a step's document number explicitly",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := resolveStep(app, cmd, args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.Documents.SetNumber(cmd.Context(), app.Actor, step.ID, args[2]); err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", step.Label, args[2])
			return nil
		},
	}
}

func resolveStep(app *App, cmd *cobra.Command, projectArg, ordinalArg string) (stepRef, error) {
	p, err := resolveProject(app, cmd, projectArg)
	if err != nil {
		return stepRef{}, err
	}
	full, err := app.Projects.GetWithSteps(cmd.Context(), p.ID)
	if err != nil {
		return stepRef{}, err
	}
	ordinal, err := strconv.Atoi(ordinalArg)
	if err != nil {
		return stepRef{}, fmt.Errorf("invalid step ordinal %q", ordinalArg)
	}
	step, err := full.StepByOrdinal(ordinal)
	if err != nil {
		return stepRef{}, err
	}
	return stepRef{ID: step.ID, Label: step.Label}, nil
}

type stepRef struct {
	ID    string
	Label string
}
