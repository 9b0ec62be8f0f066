package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/cyberfolio/internal/domain"
)

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Sign in, sign out, or show the signed-in user",
	}

	var email, name, role string
	login := &cobra.Command{
		Use:   "login",
		Short: "Start a local admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.store.Login(cmd.Context(), email, name, domain.Role(role))
			if err != nil {
				return err
			}
			if a.opts.json {
				return printJSON(a.out, u)
			}
			fmt.Fprintf(a.out, "signed in as %s (%s)\n", u.Email, u.Role)
			return nil
		},
	}
	login.Flags().StringVar(&email, "email", "", "admin email")
	login.Flags().StringVar(&name, "name", "", "display name")
	login.Flags().StringVar(&role, "role", string(domain.RoleAdmin), "admin or editor")
	_ = login.MarkFlagRequired("email")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "End the session; cached content is kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.store.Logout(cmd.Context())
			fmt.Fprintln(a.out, "signed out")
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			st := a.store.State()
			if a.opts.json {
				return printJSON(a.out, st.User)
			}
			if st.User == nil {
				fmt.Fprintln(a.out, "not signed in")
				return nil
			}
			fmt.Fprintf(a.out, "%s <%s> role=%s last login %s\n",
				st.User.Name, st.User.Email, st.User.Role, formatTime(st.User.LastLogin))
			return nil
		},
	}

	cmd.AddCommand(login, logout, show)
	return cmd
}
