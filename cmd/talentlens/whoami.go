package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/talentlens-cli/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long:  "Show whether a session token is stored and, when the token is a decodable JWT, who it belongs to and when it expires.",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(_ *cobra.Command, _ []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	token, active := app.store.CurrentToken()
	if !active {
		_, _ = fmt.Fprintln(os.Stdout, "Not logged in.")
		return nil
	}

	claims, err := session.DecodeClaims(token)
	if err != nil {
		// The token is opaque to the client; an undecodable one is still a
		// valid session until the server says otherwise.
		_, _ = fmt.Fprintln(os.Stdout, "Logged in (token details unavailable).")
		return nil
	}

	if claims.Subject != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Logged in as %s\n", claims.Subject)
	} else {
		_, _ = fmt.Fprintln(os.Stdout, "Logged in.")
	}
	if !claims.ExpiresAt.IsZero() {
		if claims.Expired(time.Now()) {
			_, _ = fmt.Fprintf(os.Stdout, "Token expired at %s; log in again.\n", claims.ExpiresAt.Local().Format(time.RFC1123))
		} else {
			_, _ = fmt.Fprintf(os.Stdout, "Token expires at %s\n", claims.ExpiresAt.Local().Format(time.RFC1123))
		}
	}
	return nil
}
