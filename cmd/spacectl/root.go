// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"privatespace/internal/client"
)

const (
	envServer = "PRIVATESPACE_URL"
	envToken  = "PRIVATESPACE_TOKEN"
)

var errNotConfirmed = errors.New("refusing to delete without --yes")

type rootFlags struct {
	server string
	token  string
	json   bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "spacectl",
		Short:         "Manage a PrivateSpace account from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.server, "server", envOr(envServer, "http://localhost:8080"), "Server base URL (env "+envServer+")")
	cmd.PersistentFlags().StringVar(&flags.token, "token", os.Getenv(envToken), "Bearer token (env "+envToken+")")
	cmd.PersistentFlags().BoolVar(&flags.json, "json", false, "Print raw JSON")

	cmd.AddCommand(newLoginCmd(flags))
	cmd.AddCommand(newLogoutCmd(flags))
	cmd.AddCommand(newJournalCmd(flags))
	cmd.AddCommand(newBlogCmd(flags))
	cmd.AddCommand(newAlbumCmd(flags))
	cmd.AddCommand(newSectionsCmd(flags))
	cmd.AddCommand(newThemeCmd(flags))
	cmd.AddCommand(newStatsCmd(flags))
	cmd.AddCommand(newResolveCmd(flags))

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newClient returns an API client for the command. A rejected token is
// reported once on stderr.
func (f *rootFlags) newClient(cmd *cobra.Command) *client.Client {
	return client.New(f.server,
		client.WithToken(f.token),
		client.OnLogout(func() {
			fmt.Fprintln(cmd.ErrOrStderr(), "session ended; run 'spacectl login' again")
		}),
	)
}

// requireToken fails early for commands that need a session.
func (f *rootFlags) requireToken() error {
	if f.token == "" {
		return fmt.Errorf("no token: pass --token or set %s", envToken)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
