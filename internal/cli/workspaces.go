package cli

import (
	"context"

	"github.com/spf13/cobra"

	"workboard/internal/store"
)

func newWorkspacesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"workspace", "ws", "organizations", "organization"},
		Short:   "Workspace commands",
	}

	cmd.AddCommand(newWorkspacesCreateCmd(app))
	cmd.AddCommand(newWorkspacesListCmd(app))
	cmd.AddCommand(newWorkspacesShowCmd(app))
	cmd.AddCommand(newWorkspacesUpdateCmd(app))
	cmd.AddCommand(newWorkspacesDeleteCmd(app))
	cmd.AddCommand(newWorkspacesUseCmd(app))
	cmd.AddCommand(newWorkspacesMemberCmd(app))

	return cmd
}

func newWorkspacesCreateCmd(app *App) *cobra.Command {
	var in store.WorkspaceInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workspace and make it current",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				if u, ok := rt.auth.Current(); ok && len(in.Members) == 0 {
					in.Members = []string{u.ID}
				}
				ws, err := rt.store.CreateWorkspace(in)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, ws,
					"workboard spaces create --name <name>",
					"workboard tree --format text",
				)
			})
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Workspace name")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	cmd.Flags().StringSliceVar(&in.Members, "member", nil, "Member user id (repeatable; default: you)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newWorkspacesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				return writeOut(cmd, app, workspaceRows{
					items:   rt.store.Workspaces(),
					current: rt.store.Selection().WorkspaceID,
				})
			})
		},
	}
}

func newWorkspacesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [workspace-id]",
		Short: "Show a workspace (default: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := workspaceArg(rt, args)
				if err != nil {
					return err
				}
				ws, err := rt.store.Workspace(id)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, ws)
			})
		},
	}
}

func newWorkspacesUpdateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update [workspace-id]",
		Short: "Update a workspace (default: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := workspaceArg(rt, args)
				if err != nil {
					return err
				}
				var p store.WorkspacePatch
				if cmd.Flags().Changed("name") {
					p.Name = strPtr(name)
				}
				if cmd.Flags().Changed("description") {
					p.Description = strPtr(description)
				}
				ws, err := rt.store.UpdateWorkspace(id, p)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, ws)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

func newWorkspacesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <workspace-id>",
		Short: "Delete a workspace with everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				if err := rt.store.DeleteWorkspace(args[0]); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"deleted": args[0]})
			})
		},
	}
}

func newWorkspacesUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <workspace-id>",
		Short: "Make a workspace current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				if err := rt.store.SelectWorkspace(args[0]); err != nil {
					return err
				}
				return writeOut(cmd, app, rt.store.Selection())
			})
		},
	}
}

func newWorkspacesMemberCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Workspace membership",
	}

	var wsID string
	add := &cobra.Command{
		Use:   "add <user-id>",
		Short: "Add a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := pick([]string{wsID}, rt.store.Selection().WorkspaceID)
				if err != nil {
					return err
				}
				if _, err := rt.auth.User(args[0]); err != nil {
					return err
				}
				ws, err := rt.store.AddMember(id, args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, ws)
			})
		},
	}
	remove := &cobra.Command{
		Use:   "remove <user-id>",
		Short: "Remove a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := pick([]string{wsID}, rt.store.Selection().WorkspaceID)
				if err != nil {
					return err
				}
				ws, err := rt.store.RemoveMember(id, args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, ws)
			})
		},
	}
	cmd.PersistentFlags().StringVar(&wsID, "workspace", "", "Workspace id (default: current)")

	cmd.AddCommand(add, remove)
	return cmd
}
