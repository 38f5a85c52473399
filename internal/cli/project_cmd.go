package cli

import (
	"fmt"
	"strings"

	"github.com/rmaciel/fundiario/internal/cli/formatter"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/spf13/cobra"
)

// resolveProject matches user input against project number, exact ID, or
// ID prefix, in that order.
func resolveProject(app *App, cmd *cobra.Command, input string) (*domain.Project, error) {
	if input == "" {
		return nil, fmt.Errorf("project is required")
	}

	projects, err := app.Projects.List(cmd.Context(), app.Actor.ID)
	if err != nil {
		return nil, err
	}

	for _, p := range projects {
		if p.DisplayNumber() == input || fmt.Sprint(p.Number) == input {
			return p, nil
		}
	}
	for _, p := range projects {
		if p.ID == input {
			return p, nil
		}
	}

	var matches []*domain.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage certification projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var title, clientID, serviceID string

	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"create"},
		Short:   "Create a project with its full step set",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				Title:     title,
				ClientID:  clientID,
				ServiceID: serviceID,
			}
			if err := app.Projects.Create(cmd.Context(), app.Actor, p); err != nil {
				return err
			}
			fmt.Printf("Created project %s: %s (%d steps)\n", p.DisplayNumber(), p.Title, len(p.Steps))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "project title")
	cmd.Flags().StringVar(&clientID, "client", "", "client ID")
	cmd.Flags().StringVar(&serviceID, "service", "", "service type ID")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("service")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects with their active step",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.ListWithSteps(cmd.Context(), app.Actor.ID)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				active := ""
				if s, err := p.StepByOrdinal(p.FrontierIndex); err == nil {
					active = s.Label
				}
				rows = append(rows, []string{
					p.DisplayNumber(),
					p.Title,
					active,
					fmt.Sprintf("%d/%d", countCompleted(p), len(p.Steps)),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"Nº", "Título", "Etapa atual", "Concluídas"}, rows))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project and its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(app, cmd, args[0])
			if err != nil {
				return err
			}
			full, err := app.Projects.GetWithSteps(cmd.Context(), p.ID)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header(fmt.Sprintf("Projeto %s - %s", full.DisplayNumber(), full.Title)))
			rows := make([][]string, 0, len(full.Steps))
			for _, s := range full.Steps {
				number := formatter.Dim("-")
				if s.DocumentNumber != nil {
					number = *s.DocumentNumber
				}
				marker := " "
				if s.Ordinal == full.FrontierIndex {
					marker = formatter.Bold("→")
				}
				rows = append(rows, []string{
					marker,
					fmt.Sprintf("%d", s.Ordinal),
					s.Label,
					formatter.StepStatusIndicator(s.Status),
					number,
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"", "#", "Etapa", "Status", "Documento"}, rows))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <project>",
		Aliases: []string{"delete"},
		Short:   "Delete a project and everything that depends on it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(app, cmd, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(cmd.Context(), app.Actor, p.ID); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", p.DisplayNumber())
			return nil
		},
	}
}

func countCompleted(p *domain.Project) int {
	n := 0
	for _, s := range p.Steps {
		if s.Completed() {
			n++
		}
	}
	return n
}
