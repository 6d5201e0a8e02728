package main

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"

	"github.com/five82/emphub/internal/api"
	"github.com/five82/emphub/internal/app"
	"github.com/five82/emphub/internal/model"
)

// Set by the linker.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type rootOptions struct {
	configPath string
	prefsPath  string
}

func (o *rootOptions) app() app.Options {
	return app.Options{ConfigPath: o.configPath, PrefsPath: o.prefsPath}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "emphub",
		Short:         "Employee self-service dashboard in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts.app())
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "override config path (default ~/.config/emphub/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.prefsPath, "prefs", "", "override preferences path (default ~/.config/emphub/prefs.toml)")

	addLogin(cmd, opts)
	addLogout(cmd, opts)
	addWhoami(cmd, opts)
	addList(cmd, opts)
	addVersion(cmd)
	return cmd
}

// withEnv runs fn against a freshly set up environment.
func withEnv(opts *rootOptions, fn func(env *app.Env) error) error {
	env, err := app.Setup(opts.app())
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env)
}

func addLogin(topLevel *cobra.Command, opts *rootOptions) {
	var creds model.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the user for the dashboard.",
		Example: `
emphub login --email ana@example.com --password secret
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, func(env *app.Env) error {
				user, err := env.Login(cmd.Context(), creds)
				if err != nil {
					if msg := api.UserMessage(err); msg != "" {
						return fmt.Errorf("%s", msg)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", user.Name, user.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command, opts *rootOptions) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Forget the stored user.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, func(env *app.Env) error {
				if err := env.Logout(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	})
}

func addWhoami(topLevel *cobra.Command, opts *rootOptions) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Print the stored user.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(opts, func(env *app.Env) error {
				user, err := env.User()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (id %d)\n", user.Name, user.Email, user.ID)
				return nil
			})
		},
	})
}

func addVersion(topLevel *cobra.Command) {
	shortened := false
	output := "json"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Get emphub version.",
		Example: `
emphub version
`,
		Run: func(cmd *cobra.Command, _ []string) {
			resp := goversion.FuncWithOutput(shortened, version, commit, date, output)
			fmt.Fprint(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")

	topLevel.AddCommand(cmd)
}
