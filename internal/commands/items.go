package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kakeibo/internal/core"
	"kakeibo/internal/screens"
)

func newItemsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage category buttons",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List category buttons in display order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				for i, it := range app.ui.Tagging.Options() {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", i+1, it.Kind, it.Label)
				}
				return nil
			},
		},
		newItemsAddCommand(app),
		positionCommand(app, "remove", "Remove the button at POSITION", (*screens.Tagging).RemoveItem),
		positionCommand(app, "up", "Move the button at POSITION up", (*screens.Tagging).MoveUp),
		positionCommand(app, "down", "Move the button at POSITION down", (*screens.Tagging).MoveDown),
	)

	return cmd
}

func newItemsAddCommand(app *App) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "add LABEL",
		Short: "Add a category button",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := core.ParseKind(kind)
			if err != nil {
				return report(cmd.ErrOrStderr(), err)
			}
			err = app.ui.Tagging.AddItem(cmd.Context(), k, args[0])
			return report(cmd.ErrOrStderr(), err)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(core.Expense), "income or expense")

	return cmd
}

func positionCommand(app *App, use, short string, fn func(*screens.Tagging, context.Context, int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " POSITION",
		Short: short + " (1-based)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("position %q: %w", args[0], err)
			}
			err = fn(app.ui.Tagging, cmd.Context(), pos-1)
			return report(cmd.ErrOrStderr(), err)
		},
	}
}
