package cli

import (
	"fmt"
	"time"

	"github.com/rmaciel/fundiario/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAgendaCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "agenda",
		Short: "Show today's appointments (first call of the day only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			appointments, err := app.Reminders.DueToday(cmd.Context(), app.Actor.ID, time.Now().UTC())
			if err != nil {
				return err
			}
			if appointments == nil {
				fmt.Println(formatter.Dim("Lembretes de hoje já foram exibidos."))
				return nil
			}
			if len(appointments) == 0 {
				fmt.Println(formatter.Dim("Nenhum compromisso para hoje."))
				return nil
			}

			fmt.Println(formatter.Header("Compromissos de hoje"))
			rows := make([][]string, 0, len(appointments))
			for _, a := range appointments {
				project := formatter.Dim("-")
				if a.ProjectID != nil {
					project = *a.ProjectID
				}
				rows = append(rows, []string{
					a.Title,
					project,
				})
			}
			fmt.Print(formatter.RenderTable([]string{"Título", "Projeto"}, rows))
			return nil
		},
	}
}
