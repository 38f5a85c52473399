package cli

import (
	"fmt"

	"github.com/rmaciel/fundiario/internal/cli/formatter"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Overview of projects, finances, and agenda",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Snapshots.Load(cmd.Context(), app.Actor.ID)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("Visão geral"))

			active := 0
			for _, p := range snap.Projects {
				if countCompleted(p) < len(p.Steps) {
					active++
				}
			}
			fmt.Printf("Projetos: %d (%d em andamento)\n", len(snap.Projects), active)
			fmt.Printf("Clientes: %d\n", len(snap.Clients))

			if snap.Partial {
				fmt.Println(formatter.Dim("Dados financeiros e agenda indisponíveis no momento."))
				return nil
			}

			pending := 0
			for _, t := range snap.Transactions {
				if t.Status == domain.TransactionPending || t.Status == domain.TransactionOverdue {
					pending++
				}
			}
			fmt.Printf("Lançamentos: %d (%d em aberto)\n", len(snap.Transactions), pending)
			fmt.Printf("Contas: %d  Compromissos: %d\n", len(snap.Accounts), len(snap.Appointments))
			return nil
		},
	}
}
