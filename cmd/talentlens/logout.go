package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(_ *cobra.Command, _ []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if _, active := app.store.CurrentToken(); !active {
		_, _ = fmt.Fprintln(os.Stdout, "No active session.")
		return nil
	}

	if err := app.store.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	_, _ = fmt.Fprintln(os.Stdout, "Logged out.")
	return nil
}
