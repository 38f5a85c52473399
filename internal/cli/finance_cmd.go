package cli

import (
	"fmt"
	"time"

	"github.com/rmaciel/fundiario/internal/cli/formatter"
	"github.com/rmaciel/fundiario/internal/domain"
	"github.com/rmaciel/fundiario/internal/service"
	"github.com/rmaciel/fundiario/internal/workflow"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newFinanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Ledger entries and transfers",
	}
	cmd.AddCommand(newFinanceListCmd(app), newTransferCmd(app), newReceiptCmd(app))
	return cmd
}

func newReceiptCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "receipt <project>",
		Short: "Approve the receipt step and post the service income",
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
			receipt := full.StepByLabel(workflow.LabelReceipt)
			if receipt == nil {
				return fmt.Errorf("project %s has no receipt step", full.DisplayNumber())
			}

			step, err := app.Transitions.Transition(cmd.Context(), app.Actor, service.TransitionRequest{
				StepID: receipt.ID,
				Status: domain.StepCompleted,
			})
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", step.Label, formatter.StepStatusIndicator(step.Status))
			return nil
		},
	}
}

func newFinanceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ledger entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := app.Finance.List(cmd.Context(), app.Actor.ID)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(txs))
			for _, t := range txs {
				amount := t.Amount.StringFixed(2)
				if t.Type == domain.TransactionExpense {
					amount = formatter.StyleRed.Render("-" + amount)
				} else {
					amount = formatter.StyleGreen.Render("+" + amount)
				}
				rows = append(rows, []string{
					t.DueDate.Format("2006-01-02"),
					string(t.Type),
					t.Category,
					amount,
					string(t.Status),
					t.Description,
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"Vencimento", "Tipo", "Categoria", "Valor", "Status", "Descrição"}, rows))
			return nil
		},
	}
}

func newTransferCmd(app *App) *cobra.Command {
	var from, to, amountStr, description, dueStr string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move money between accounts (expense/income pair)",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountStr, err)
			}
			due := time.Now().UTC()
			if dueStr != "" {
				if due, err = time.Parse("2006-01-02", dueStr); err != nil {
					return fmt.Errorf("invalid due date %q: %w", dueStr, err)
				}
			}

			pair, err := app.Finance.RealizeTransfer(cmd.Context(), app.Actor, domain.TransferRequest{
				FromAccountID: from,
				ToAccountID:   to,
				Amount:        amount,
				Description:   description,
				DueDate:       due,
				Status:        domain.TransactionPaid,
			})
			if err != nil {
				return err
			}
			for _, t := range pair {
				fmt.Printf("%s %s %s\n", t.Category, t.Amount.StringFixed(2), formatter.Dim(t.Description))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source account ID")
	cmd.Flags().StringVar(&to, "to", "", "destination account ID")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount to transfer")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&dueStr, "due", "", "due date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
