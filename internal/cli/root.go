package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"workboard/internal/config"
	"workboard/internal/format"
	"workboard/internal/logx"
)

type App struct {
	Dir        string
	Storage    string
	PrettyJSON bool
	Format     string
	NoColor    bool
	LogLevel   string

	cfg config.Config
	rt  *runtime
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "workboard",
		Short:        "Workspaces, spaces, lists and tasks from the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Sign up once; the session is remembered
  workboard auth signup --email ada@example.com --password 'correct-horse'

  # Build a hierarchy (new entities land under the current selection)
  workboard workspaces create --name Acme
  workboard spaces create --name Engineering --color blue
  workboard lists create --name Backlog
  workboard tasks create --title "Ship it" --priority high --due 2025-02-01

  # Look around
  workboard tree --format text

  # Direct task lookup (shortcut for: workboard tasks show <task-id>)
  workboard tsk-abcd1234
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		app.cfg = config.Load()
		if app.Dir != "" {
			app.cfg.DataDir = app.Dir
		}
		if app.Storage != "" {
			app.cfg.Storage = strings.ToLower(strings.TrimSpace(app.Storage))
		}
		logx.Setup(cmd.ErrOrStderr(), app.cfg.LogFormat, app.LogLevel)
		if app.NoColor || os.Getenv("NO_COLOR") != "" {
			format.DisableColor()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("WORKBOARD_DIR", ""), "Data directory (default: ~/.workboard, or WORKBOARD_CONFIG_DIR)")
	cmd.PersistentFlags().StringVar(&app.Storage, "storage", envOr("WORKBOARD_STORAGE", ""), "Storage backend (sqlite|file|redis|memory)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("WORKBOARD_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "Disable styling in text output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("WORKBOARD_LOG_LEVEL", "warn"), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newAuthCmd(app))
	cmd.AddCommand(newWorkspacesCmd(app))
	cmd.AddCommand(newSpacesCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newViewCmd(app))
	cmd.AddCommand(newTreeCmd(app))
	cmd.AddCommand(newSelectionCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut prints v inside the {"data": ...} envelope, or v itself in text mode.
func writeOut(cmd *cobra.Command, app *App, v any, hints ...string) error {
	if app.Format == "text" {
		return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
	}
	env := map[string]any{"data": v}
	if len(hints) > 0 {
		env["_hints"] = hints
	}
	return format.Write(cmd.OutOrStdout(), env, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
