package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"kakeibo/internal/core"
)

func newAddCommand(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add AMOUNT",
		Short: "Record an amount under a category button",
		Long: "Record an amount under a category button. The category is a label " +
			"or a 1-based position from 'items list'; its kind decides the sign.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pending, err := app.ui.Entry.Submit(args[0])
			if err != nil {
				return report(cmd.ErrOrStderr(), err)
			}

			tag := app.ui.Tagging
			item, err := findItem(tag.Options(), category)
			if err != nil {
				return report(cmd.ErrOrStderr(), err)
			}
			rec, err := tag.Commit(ctx, pending, item)
			if rec.ID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", rec.ID, rec.Category, app.ui.Format.Amount(rec.Amount))
			}
			return report(cmd.ErrOrStderr(), err)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category label or position (required)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

// findItem resolves a label (case-insensitive) or, failing that, a 1-based
// position. Labels win so a button named "2024" stays reachable.
func findItem(items []core.CategoryItem, ref string) (core.CategoryItem, error) {
	ref = strings.TrimSpace(ref)
	for _, it := range items {
		if strings.EqualFold(it.Label, ref) {
			return it, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			return core.CategoryItem{}, fmt.Errorf("%w: category position %d", core.ErrNotFound, n)
		}
		return items[n-1], nil
	}
	return core.CategoryItem{}, fmt.Errorf("%w: category %q", core.ErrNotFound, ref)
}
