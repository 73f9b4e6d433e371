package cli

import (
	"context"

	"github.com/spf13/cobra"

	"workboard/internal/model"
	"workboard/internal/store"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Task commands",
	}

	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksSubtaskCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksUseCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	cmd.AddCommand(newTasksCommentCmd(app))
	cmd.AddCommand(newTasksChecklistCmd(app))
	cmd.AddCommand(newTasksCheckCmd(app))
	cmd.AddCommand(newTasksFieldCmd(app))
	cmd.AddCommand(newTasksTimeCmd(app))
	cmd.AddCommand(newTasksDependCmd(app))
	cmd.AddCommand(newTasksAttachCmd(app))

	return cmd
}

// taskFlags are shared by create and subtask.
type taskFlags struct {
	title, description string
	status, priority   string
	assignees, tags    []string
	start, due         string
	estimate           int
}

func (f *taskFlags) register(cmd *cobra.Command, requireTitle bool) {
	cmd.Flags().StringVar(&f.title, "title", "", "Task title")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.status, "status", "", "todo|in-progress|review|completed|blocked (default: todo)")
	cmd.Flags().StringVar(&f.priority, "priority", "", "urgent|high|medium|normal|low (default: normal)")
	cmd.Flags().StringSliceVar(&f.assignees, "assignee", nil, "Assignee user id (repeatable)")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)")
	cmd.Flags().IntVar(&f.estimate, "estimate", 0, "Time estimate in minutes")
	if requireTitle {
		_ = cmd.MarkFlagRequired("title")
	}
}

func (f *taskFlags) input(cmd *cobra.Command) (store.TaskInput, error) {
	in := store.TaskInput{
		Title:       f.title,
		Description: f.description,
		Status:      model.TaskStatus(f.status),
		Priority:    model.Priority(f.priority),
		Assignees:   f.assignees,
		Tags:        f.tags,
	}
	var err error
	if f.start != "" {
		if in.StartDate, err = parseDate(f.start); err != nil {
			return in, err
		}
	}
	if f.due != "" {
		if in.DueDate, err = parseDate(f.due); err != nil {
			return in, err
		}
	}
	if cmd.Flags().Changed("estimate") {
		v := f.estimate
		in.TimeEstimate = &v
	}
	return in, nil
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var listID string
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task at the end of a list (default: current)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				in, err := f.input(cmd)
				if err != nil {
					return err
				}
				t, err := rt.store.CreateTask(listID, in)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t, "workboard tasks show "+t.ID)
			})
		},
	}

	cmd.Flags().StringVar(&listID, "list", "", "List id (default: current)")
	f.register(cmd, true)
	return cmd
}

func newTasksSubtaskCmd(app *App) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "subtask [parent-task-id]",
		Short: "Create a subtask (default parent: current task)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				parentID, err := taskArg(rt, args)
				if err != nil {
					return err
				}
				in, err := f.input(cmd)
				if err != nil {
					return err
				}
				t, err := rt.store.CreateSubtask(parentID, in)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t)
			})
		},
	}

	f.register(cmd, true)
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var spaceID string
	var subtasksOf string

	cmd := &cobra.Command{
		Use:   "list [list-id]",
		Short: "List the top-level tasks of a list (default: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				var (
					tasks []model.Task
					err   error
				)
				switch {
				case subtasksOf != "":
					tasks, err = rt.store.Subtasks(subtasksOf)
				case spaceID != "":
					tasks, err = rt.store.TasksInSpace(spaceID)
				default:
					var id string
					if id, err = listArg(rt, args); err == nil {
						tasks, err = rt.store.Tasks(id)
					}
				}
				if err != nil {
					return err
				}
				return writeOut(cmd, app, taskRows{items: tasks, current: rt.store.Selection().TaskID})
			})
		},
	}

	cmd.Flags().StringVar(&spaceID, "space", "", "List every task in this space instead, subtasks included")
	cmd.Flags().StringVar(&subtasksOf, "subtasks-of", "", "List the subtasks of this task instead")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [task-id]",
		Short: "Show a task (default: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := taskArg(rt, args)
				if err != nil {
					return err
				}
				t, err := rt.store.Task(id)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, taskDetail(t))
			})
		},
	}
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var f taskFlags
	var clearStart, clearDue bool

	cmd := &cobra.Command{
		Use:   "update [task-id]",
		Short: "Update a task (default: current); only the given flags change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := taskArg(rt, args)
				if err != nil {
					return err
				}
				p, err := f.patch(cmd)
				if err != nil {
					return err
				}
				p.ClearStartDate = clearStart
				p.ClearDueDate = clearDue
				t, err := rt.store.UpdateTask("", id, p)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t)
			})
		},
	}

	f.register(cmd, false)
	cmd.Flags().BoolVar(&clearStart, "clear-start", false, "Remove the start date")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	return cmd
}

func (f *taskFlags) patch(cmd *cobra.Command) (store.TaskPatch, error) {
	var p store.TaskPatch
	changed := cmd.Flags().Changed
	if changed("title") {
		p.Title = strPtr(f.title)
	}
	if changed("description") {
		p.Description = strPtr(f.description)
	}
	if changed("status") {
		st := model.TaskStatus(f.status)
		p.Status = &st
	}
	if changed("priority") {
		pr := model.Priority(f.priority)
		p.Priority = &pr
	}
	if changed("assignee") {
		xs := f.assignees
		p.Assignees = &xs
	}
	if changed("tag") {
		xs := f.tags
		p.Tags = &xs
	}
	var err error
	if changed("start") {
		if p.StartDate, err = parseDate(f.start); err != nil {
			return p, err
		}
	}
	if changed("due") {
		if p.DueDate, err = parseDate(f.due); err != nil {
			return p, err
		}
	}
	if changed("estimate") {
		v := f.estimate
		p.TimeEstimate = &v
	}
	return p, nil
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task with its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				if err := rt.store.DeleteTask("", args[0]); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"deleted": args[0]})
			})
		},
	}
}

func newTasksUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <task-id>",
		Short: "Make a task of the current list current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				if err := rt.store.SelectTask(args[0]); err != nil {
					return err
				}
				return writeOut(cmd, app, rt.store.Selection())
			})
		},
	}
}

func newTasksMoveCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task and its subtasks to the end of another list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				src := from
				if src == "" {
					t, err := rt.store.Task(args[0])
					if err != nil {
						return err
					}
					src = t.ListID
				}
				t, err := rt.store.MoveTask(args[0], src, to)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source list id (default: the task's list)")
	cmd.Flags().StringVar(&to, "to", "", "Destination list id")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
