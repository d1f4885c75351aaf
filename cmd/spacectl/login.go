// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"privatespace/internal/client"
)

type loginOptions struct {
	username      string
	otp           string
	passwordStdin bool
}

func newLoginCmd(root *rootFlags) *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a token",
		Long: "Log in and print a token. Export it as " + envToken +
			" for later commands.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "Account username")
	cmd.Flags().StringVar(&opts.otp, "otp", "", "Two-factor code, when enabled")
	cmd.Flags().BoolVar(&opts.passwordStdin, "password-stdin", false, "Read the password from stdin")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func runLogin(cmd *cobra.Command, root *rootFlags, opts *loginOptions) error {
	password, err := readPassword(cmd, opts.passwordStdin)
	if err != nil {
		return err
	}

	c := root.newClient(cmd)
	if err := c.Login(cmd.Context(), opts.username, password, opts.otp); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if root.json {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"access_token": c.Token(),
			"theme":        c.ThemeVars(),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "export %s=%s\n", envToken, c.Token())
	return nil
}

func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !fromStdin && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("empty password")
	}
	return line, nil
}

func newLogoutCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the current token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			c := client.New(root.server, client.WithToken(root.token))
			if err := c.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
