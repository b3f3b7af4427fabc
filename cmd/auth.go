package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medar/arviewer/internal/auth"
)

var loginCreds auth.Credentials

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with a demo account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := auth.NewStore()
		if !store.Login(loginCreds) {
			return errors.New("invalid email or password")
		}
		if err := store.Save(sessionPath()); err != nil {
			return err
		}
		user, _ := store.CurrentUser()
		fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := auth.NewStore()
		store.Logout()
		if err := store.Save(sessionPath()); err != nil && !errors.Is(err, auth.ErrNotSignedIn) {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := auth.NewStore()
		if err := store.Load(sessionPath()); err != nil {
			return err
		}
		user, ok := store.CurrentUser()
		if !ok {
			fmt.Println("Not signed in")
			return nil
		}
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		fmt.Printf("  Role: %s\n", user.Role)
		fmt.Printf("  Last login: %s\n", user.LastLogin.Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().StringVar(&loginCreds.Email, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginCreds.Password, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
