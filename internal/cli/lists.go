package cli

import (
	"context"

	"github.com/spf13/cobra"

	"workboard/internal/store"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lists",
		Aliases: []string{"list"},
		Short:   "List commands",
	}

	cmd.AddCommand(newListsCreateCmd(app))
	cmd.AddCommand(newListsListCmd(app))
	cmd.AddCommand(newListsShowCmd(app))
	cmd.AddCommand(newListsUpdateCmd(app))
	cmd.AddCommand(newListsDeleteCmd(app))
	cmd.AddCommand(newListsUseCmd(app))

	return cmd
}

func newListsCreateCmd(app *App) *cobra.Command {
	var spaceID string
	var in store.ListInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a list in a space (default: current)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				l, err := rt.store.CreateList(spaceID, in)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, l, "workboard lists use "+l.ID)
			})
		},
	}

	cmd.Flags().StringVar(&spaceID, "space", "", "Space id (default: current)")
	cmd.Flags().StringVar(&in.Name, "name", "", "List name")
	cmd.Flags().StringVar(&in.Color, "color", "", "Optional color")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newListsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [space-id]",
		Short: "List the lists of a space (default: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := spaceArg(rt, args)
				if err != nil {
					return err
				}
				lists, err := rt.store.Lists(id)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, listRows{items: lists, current: rt.store.Selection().ListID})
			})
		},
	}
}

func newListsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [list-id]",
		Short: "Show a list (default: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := listArg(rt, args)
				if err != nil {
					return err
				}
				l, err := rt.store.List(id)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, l)
			})
		},
	}
}

func newListsUpdateCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "update [list-id]",
		Short: "Update a list (default: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := listArg(rt, args)
				if err != nil {
					return err
				}
				l, err := rt.store.List(id)
				if err != nil {
					return err
				}
				var p store.ListPatch
				if cmd.Flags().Changed("name") {
					p.Name = strPtr(name)
				}
				if cmd.Flags().Changed("color") {
					p.Color = strPtr(color)
				}
				l, err = rt.store.UpdateList(l.SpaceID, l.ID, p)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, l)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New color")
	return cmd
}

func newListsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <list-id>",
		Short: "Delete a list with its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				l, err := rt.store.List(args[0])
				if err != nil {
					return err
				}
				if err := rt.store.DeleteList(l.SpaceID, l.ID); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"deleted": l.ID})
			})
		},
	}
}

func newListsUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <list-id>",
		Short: "Make a list of the current space current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				if err := rt.store.SelectList(args[0]); err != nil {
					return err
				}
				return writeOut(cmd, app, rt.store.Selection())
			})
		},
	}
}
