package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new TalentLens account",
	Long:  "Create a new TalentLens account with an email and password. Registration does not log you in; run 'talentlens login' afterwards.",
	RunE:  runRegister,
}

var (
	registerEmail    string
	registerPassword string
)

func init() {
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email (required)")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Account password (required)")

	if err := registerCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}
	if err := registerCmd.MarkFlagRequired("password"); err != nil {
		panic(fmt.Sprintf("failed to mark password flag as required: %v", err))
	}

	rootCmd.AddCommand(registerCmd)
}

func runRegister(_ *cobra.Command, _ []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if err := app.client.Register(context.Background(), registerEmail, registerPassword); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Account created for %s\n", registerEmail)
	_, _ = fmt.Fprintf(os.Stdout, "Run 'talentlens login' to start a session.\n")
	return nil
}
