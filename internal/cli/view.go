package cli

import (
	"context"

	"github.com/spf13/cobra"

	"workboard/internal/model"
)

func newViewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Current view mode (list|board|calendar|gantt|timeline)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				return writeOut(cmd, app, map[string]any{"view": rt.store.View()})
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <view>",
		Short: "Switch the view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				v, err := model.ParseViewType(args[0])
				if err != nil {
					return err
				}
				if err := rt.store.SetView(v); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"view": rt.store.View()})
			})
		},
	})

	return cmd
}

func newTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the whole hierarchy (try --format text)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				return writeOut(cmd, app, treeView{nodes: rt.store.Tree(), sel: rt.store.Selection()})
			})
		},
	}
}

func newSelectionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selection",
		Short: "Print the current workspace, space, list and task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				return writeOut(cmd, app, rt.store.Selection())
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear every selection pointer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				rt.store.ClearSelection()
				return writeOut(cmd, app, rt.store.Selection())
			})
		},
	})
	return cmd
}
