package cli

import (
	"fmt"

	"github.com/rmaciel/fundiario/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBudgetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Budget sheets",
	}
	cmd.AddCommand(newBudgetShowCmd(app))
	return cmd
}

func newBudgetShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show the budget sheet for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(app, cmd, args[0])
			if err != nil {
				return err
			}
			sheet, err := app.Budgets.SheetFor(cmd.Context(), p.ID)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header(fmt.Sprintf("Orçamento - %s", p.Title)))
			rows := make([][]string, 0, len(sheet.Items))
			for _, item := range sheet.Items {
				rows = append(rows, []string{
					item.Description,
					item.Quantity.String(),
					item.UnitPrice.StringFixed(2),
					item.Subtotal().StringFixed(2),
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"Descrição", "Qtd", "Valor unitário", "Subtotal"}, rows))
			if !sheet.Adjustment.IsZero() {
				fmt.Printf("%s %s\n", formatter.Dim("Ajuste:"), sheet.Adjustment.StringFixed(2))
			}
			fmt.Printf("%s %s\n", formatter.Bold("Total:"), formatter.Bold(sheet.Total().StringFixed(2)))
			return nil
		},
	}
}
