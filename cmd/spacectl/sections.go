// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"privatespace/internal/models"
)

func printSections(w io.Writer, sections []models.ProfileSection) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tID\tTYPE\tTITLE")
	for i, s := range sections {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, s.ID, s.SectionType, s.Title)
	}
	return tw.Flush()
}

func newSectionsCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "sections", Short: "Show and arrange profile sections"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your profile sections in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			sections, err := root.newClient(cmd).Sections(cmd.Context())
			if err != nil {
				return fmt.Errorf("list sections: %w", err)
			}
			if root.json {
				return writeJSON(cmd.OutOrStdout(), sections)
			}
			return printSections(cmd.OutOrStdout(), sections)
		},
	}

	move := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move the section at position <from> to position <to>",
		Long: "Move the section at position <from> to position <to> (1-based, as\n" +
			"shown by 'sections list') and save the whole order. When saving\n" +
			"fails the server order is reloaded and printed.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			from, err := position(args[0])
			if err != nil {
				return err
			}
			to, err := position(args[1])
			if err != nil {
				return err
			}

			list, err := root.newClient(cmd).SectionList(cmd.Context())
			if err != nil {
				return fmt.Errorf("load sections: %w", err)
			}
			moveErr := list.Move(cmd.Context(), from, to)
			if root.json {
				if err := writeJSON(cmd.OutOrStdout(), list.Items()); err != nil {
					return err
				}
			} else if err := printSections(cmd.OutOrStdout(), list.Items()); err != nil {
				return err
			}
			if moveErr != nil {
				return fmt.Errorf("move section: %w", moveErr)
			}
			return nil
		},
	}

	cmd.AddCommand(list, move)
	return cmd
}

func position(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q", s)
	}
	return n - 1, nil
}
