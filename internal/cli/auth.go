package cli

import (
	"context"

	"github.com/spf13/cobra"

	"workboard/internal/auth"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Accounts and the CLI session",
	}

	cmd.AddCommand(newAuthSignupCmd(app))
	cmd.AddCommand(newAuthLoginCmd(app))
	cmd.AddCommand(newAuthLogoutCmd(app))
	cmd.AddCommand(newAuthWhoamiCmd(app))
	cmd.AddCommand(newAuthProfileCmd(app))

	return cmd
}

func newAuthSignupCmd(app *App) *cobra.Command {
	var in auth.SignupInput

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				sess, err := rt.auth.Signup(ctx, in)
				if err != nil {
					return err
				}
				if err := rt.saveSession(ctx, sess.Token); err != nil {
					return err
				}
				return writeOut(cmd, app, sess, "workboard workspaces create --name <name>")
			})
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Password, "password", envOr("WORKBOARD_PASSWORD", ""), "Password (8-72 characters)")
	cmd.Flags().StringVar(&in.Name, "name", "", "Name (default: the email's local part)")
	cmd.Flags().StringVar(&in.DisplayName, "display-name", "", "Display name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newAuthLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				sess, err := rt.auth.Login(ctx, email, password)
				if err != nil {
					return err
				}
				if err := rt.saveSession(ctx, sess.Token); err != nil {
					return err
				}
				return writeOut(cmd, app, sess)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", envOr("WORKBOARD_PASSWORD", ""), "Password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the CLI session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				rt.auth.Logout(ctx)
				if err := rt.saveSession(ctx, ""); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"loggedOut": true})
			})
		},
	}
}

func newAuthWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				u, ok := rt.auth.Current()
				if !ok {
					return auth.ErrNotLoggedIn
				}
				return writeOut(cmd, app, u)
			})
		},
	}
}

func newAuthProfileCmd(app *App) *cobra.Command {
	var name, displayName, avatar, phone, timezone, language string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the logged-in user's profile; only the given flags change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context, rt *runtime) error {
				var p auth.ProfilePatch
				changed := cmd.Flags().Changed
				if changed("name") {
					p.Name = &name
				}
				if changed("display-name") {
					p.DisplayName = &displayName
				}
				if changed("avatar") {
					p.Avatar = &avatar
				}
				if changed("phone") {
					p.PhoneNumber = &phone
				}
				if changed("timezone") {
					p.Timezone = &timezone
				}
				if changed("language") {
					p.Language = &language
				}
				u, err := rt.auth.UpdateProfile(ctx, p)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, u)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name")
	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar URL")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA time zone, e.g. Europe/Paris")
	cmd.Flags().StringVar(&language, "language", "", "Language code")
	return cmd
}
