package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMemoCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "memo ID [TEXT...]",
		Short: "Show or replace the memo of a record",
		Long:  "Show the memo of a record, or replace it when TEXT is given. An empty TEXT (\"\") clears it.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := app.ui.Memo
			draft, err := ed.Open(args[0])
			if err != nil {
				return report(cmd.ErrOrStderr(), err)
			}
			if len(args) == 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n(%d characters left)\n", draft.Memo, draft.Remaining)
				return nil
			}
			rec, err := ed.Save(cmd.Context(), draft.RecordID, strings.Join(args[1:], " "))
			if rec.ID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", rec.ID, rec.Memo)
			}
			return report(cmd.ErrOrStderr(), err)
		},
	}
}
