package cli

import (
	"context"

	"github.com/spf13/cobra"

	"workboard/internal/model"
	"workboard/internal/store"
)

func newSpacesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spaces",
		Aliases: []string{"space", "teams", "team"},
		Short:   "Space commands",
	}

	cmd.AddCommand(newSpacesCreateCmd(app))
	cmd.AddCommand(newSpacesListCmd(app))
	cmd.AddCommand(newSpacesShowCmd(app))
	cmd.AddCommand(newSpacesUpdateCmd(app))
	cmd.AddCommand(newSpacesDeleteCmd(app))
	cmd.AddCommand(newSpacesUseCmd(app))

	return cmd
}

func newSpacesCreateCmd(app *App) *cobra.Command {
	var workspaceID, name, color string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a space in a workspace (default: current)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				c, err := model.ParseSpaceColor(color)
				if err != nil {
					return err
				}
				sp, err := rt.store.CreateSpace(workspaceID, store.SpaceInput{Name: name, Color: c})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, sp, "workboard spaces use "+sp.ID)
			})
		},
	}

	cmd.Flags().StringVar(&workspaceID, "workspace", "", "Workspace id (default: current)")
	cmd.Flags().StringVar(&name, "name", "", "Space name")
	cmd.Flags().StringVar(&color, "color", "", "purple|blue|green|yellow|red|pink (default: purple)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSpacesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [workspace-id]",
		Short: "List the spaces of a workspace (default: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := workspaceArg(rt, args)
				if err != nil {
					return err
				}
				spaces, err := rt.store.Spaces(id)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, spaceRows{items: spaces, current: rt.store.Selection().SpaceID})
			})
		},
	}
}

func newSpacesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [space-id]",
		Short: "Show a space (default: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := spaceArg(rt, args)
				if err != nil {
					return err
				}
				sp, err := rt.store.Space(id)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, sp)
			})
		},
	}
}

func newSpacesUpdateCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "update [space-id]",
		Short: "Update a space (default: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := spaceArg(rt, args)
				if err != nil {
					return err
				}
				sp, err := rt.store.Space(id)
				if err != nil {
					return err
				}
				var p store.SpacePatch
				if cmd.Flags().Changed("name") {
					p.Name = strPtr(name)
				}
				if cmd.Flags().Changed("color") {
					c := model.SpaceColor(color)
					p.Color = &c
				}
				sp, err = rt.store.UpdateSpace(sp.WorkspaceID, sp.ID, p)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, sp)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New color")
	return cmd
}

func newSpacesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <space-id>",
		Short: "Delete a space with its lists and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				sp, err := rt.store.Space(args[0])
				if err != nil {
					return err
				}
				if err := rt.store.DeleteSpace(sp.WorkspaceID, sp.ID); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"deleted": sp.ID})
			})
		},
	}
}

func newSpacesUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <space-id>",
		Short: "Make a space of the current workspace current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				if err := rt.store.SelectSpace(args[0]); err != nil {
					return err
				}
				return writeOut(cmd, app, rt.store.Selection())
			})
		},
	}
}
