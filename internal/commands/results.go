package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kakeibo/internal/screens"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show every record, most recent first, and the balance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := app.ui.Results.View()
			return printResults(cmd.OutOrStdout(), view)
		},
	}
}

func newDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.ui.Results.Delete(cmd.Context(), args[0])
			if err != nil {
				return report(cmd.ErrOrStderr(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "balance %s\n", view.Balance)
			return nil
		},
	}
}

func newResetCommand(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all records (category buttons are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := app.ui.Results.ResetAll(cmd.Context(), yes)
			if err != nil {
				return report(cmd.ErrOrStderr(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all records deleted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all records")

	return cmd
}

func printResults(w io.Writer, view screens.ResultsView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tCATEGORY\tAMOUNT\tMEMO")
	for _, r := range view.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Time, r.Category, r.Amount, r.Memo)
	}
	fmt.Fprintf(tw, "\t\tincome\t%s\t\n", view.Income)
	fmt.Fprintf(tw, "\t\texpense\t%s\t\n", view.Expense)
	fmt.Fprintf(tw, "\t\tbalance\t%s\t\n", view.Balance)
	return tw.Flush()
}
