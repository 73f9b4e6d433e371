package cli

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"workboard/internal/model"
	"workboard/internal/store"
)

func newTasksCommentCmd(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "comment [task-id]",
		Short: "Add a comment as the logged-in user (default task: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := taskArg(rt, args)
				if err != nil {
					return err
				}
				in := store.CommentInput{Content: content}
				if u, ok := rt.auth.Current(); ok {
					in.CreatedBy = u.ID
				}
				t, err := rt.store.AddComment(id, in)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t)
			})
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Comment text")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newTasksChecklistCmd(app *App) *cobra.Command {
	var in store.ChecklistInput

	cmd := &cobra.Command{
		Use:   "checklist [task-id]",
		Short: "Add a checklist (default task: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := taskArg(rt, args)
				if err != nil {
					return err
				}
				t, err := rt.store.AddChecklist(id, in)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t)
			})
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Checklist title")
	cmd.Flags().StringArrayVar(&in.Items, "item", nil, "Item text (repeatable)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksCheckCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "check <task-id> <checklist-id> <item-id>",
		Short: "Mark a checklist item done (or not done with --undo)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				t, err := rt.store.SetChecklistItem(args[0], args[1], args[2], !undo)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t)
			})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the item not done")
	return cmd
}

func newTasksFieldCmd(app *App) *cobra.Command {
	var name, typ, value string

	cmd := &cobra.Command{
		Use:   "field [task-id]",
		Short: "Set a custom field (default task: current)",
		Long: strings.TrimSpace(`
Set a custom field, replacing any field with the same name.

Plain values are taken as strings for text, date, select and user fields;
pass JSON (e.g. '["u1","u2"]' or '{"id":"x","label":"X"}') for structured values.
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := taskArg(rt, args)
				if err != nil {
					return err
				}
				ft := model.FieldType(strings.ToLower(strings.TrimSpace(typ)))
				t, err := rt.store.AddCustomField(id, store.CustomFieldInput{
					Name:  name,
					Type:  ft,
					Value: fieldValue(ft, value),
				})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Field name")
	cmd.Flags().StringVar(&typ, "type", "text", "text|number|date|select|user")
	cmd.Flags().StringVar(&value, "value", "", "Field value")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

// fieldValue turns a flag value into JSON. Numbers pass through; other types quote bare words.
func fieldValue(typ model.FieldType, v string) json.RawMessage {
	v = strings.TrimSpace(v)
	if typ == model.FieldNumber {
		return json.RawMessage(v)
	}
	if v != "" && strings.ContainsRune(`"[{`, rune(v[0])) && json.Valid([]byte(v)) {
		return json.RawMessage(v)
	}
	b, _ := json.Marshal(v)
	return b
}

func newTasksTimeCmd(app *App) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "time [task-id]",
		Short: "Record total time spent in minutes (default task: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := taskArg(rt, args)
				if err != nil {
					return err
				}
				t, err := rt.store.UpdateTimeTracking(id, minutes)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t)
			})
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Total minutes spent")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func newTasksDependCmd(app *App) *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   "depend [task-id]",
		Short: "Record that a task depends on another (default task: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := taskArg(rt, args)
				if err != nil {
					return err
				}
				t, err := rt.store.AddDependency(id, on)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t)
			})
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Task id this task depends on")
	_ = cmd.MarkFlagRequired("on")
	return cmd
}

func newTasksAttachCmd(app *App) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "attach [task-id]",
		Short: "Attach a link (default task: current)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				id, err := taskArg(rt, args)
				if err != nil {
					return err
				}
				t, err := rt.store.AddAttachment(id, url)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t)
			})
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "http(s) URL")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
