// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"privatespace/internal/client"
	"privatespace/internal/design"
	"privatespace/internal/models"
)

type pageFlags struct {
	skip  int
	limit int
}

func (p *pageFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.skip, "skip", 0, "Items to skip")
	cmd.Flags().IntVar(&p.limit, "limit", 20, "Maximum items to return")
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

// parseDesign decodes a --design value. An empty value means no options.
func parseDesign(raw string) (*design.Options, error) {
	if raw == "" {
		return nil, nil
	}
	var opts design.Options
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return nil, fmt.Errorf("invalid --design: %w", err)
	}
	return &opts, nil
}

// newDeleteCmd builds a "delete <id>" subcommand that refuses to run
// without --yes.
func newDeleteCmd(root *rootFlags, noun string, del func(*client.Client, *cobra.Command, uuid.UUID) error) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return errNotConfirmed
			}
			if err := root.requireToken(); err != nil {
				return err
			}
			if err := del(root.newClient(cmd), cmd, id); err != nil {
				return fmt.Errorf("delete %s: %w", noun, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s.\n", noun, id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}

// --- journal ---

func newJournalCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "journal", Short: "Manage journal entries"}

	var page pageFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List your journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			entries, err := root.newClient(cmd).ListJournal(cmd.Context(), page.skip, page.limit)
			if err != nil {
				return fmt.Errorf("list journal: %w", err)
			}
			if root.json {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tPUBLIC\tMEDIA\tCREATED")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%s\n", e.ID, e.Title, e.IsPublic, len(e.Gallery), e.CreatedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
	page.bind(list)

	var in client.JournalInput
	var designRaw string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			opts, err := parseDesign(designRaw)
			if err != nil {
				return err
			}
			in.Design = opts
			entry, err := root.newClient(cmd).CreateJournal(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("create journal: %w", err)
			}
			if root.json {
				return writeJSON(cmd.OutOrStdout(), entry)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created journal entry %s.\n", entry.ID)
			return nil
		},
	}
	create.Flags().StringVar(&in.Title, "title", "", "Entry title")
	create.Flags().StringVar(&in.Content, "content", "", "Entry body (markdown)")
	create.Flags().BoolVar(&in.IsPublic, "public", false, "Make the entry public")
	create.Flags().StringVar(&designRaw, "design", "", "Design options as JSON")
	_ = create.MarkFlagRequired("title")

	cmd.AddCommand(list, create, newDeleteCmd(root, "journal entry", func(c *client.Client, cmd *cobra.Command, id uuid.UUID) error {
		return c.DeleteJournal(cmd.Context(), id)
	}))
	return cmd
}

// --- blog ---

func printPosts(cmd *cobra.Command, root *rootFlags, posts []models.BlogPost) error {
	if root.json {
		return writeJSON(cmd.OutOrStdout(), posts)
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRANK\tTITLE\tAUTHOR\tCREATED")
	for _, p := range posts {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", p.ID, p.Ranking, p.Title, p.Author, p.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func newBlogCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "blog", Short: "Manage blog posts"}

	var feedPage pageFlags
	feed := &cobra.Command{
		Use:   "feed",
		Short: "Show the public feed, highest ranking first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := root.newClient(cmd).BlogFeed(cmd.Context(), feedPage.skip, feedPage.limit)
			if err != nil {
				return fmt.Errorf("blog feed: %w", err)
			}
			return printPosts(cmd, root, posts)
		},
	}
	feedPage.bind(feed)

	var minePage pageFlags
	mine := &cobra.Command{
		Use:   "list",
		Short: "List your posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			posts, err := root.newClient(cmd).MyBlog(cmd.Context(), minePage.skip, minePage.limit)
			if err != nil {
				return fmt.Errorf("list blog: %w", err)
			}
			return printPosts(cmd, root, posts)
		},
	}
	minePage.bind(mine)

	var in client.BlogInput
	var tags, designRaw string
	create := &cobra.Command{
		Use:   "create",
		Short: "Publish a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			opts, err := parseDesign(designRaw)
			if err != nil {
				return err
			}
			in.Design = opts
			if tags != "" {
				in.Tags = &tags
			}
			post, err := root.newClient(cmd).CreateBlog(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("create post: %w", err)
			}
			if root.json {
				return writeJSON(cmd.OutOrStdout(), post)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %s (/blog/%s).\n", post.ID, post.Slug)
			return nil
		},
	}
	create.Flags().StringVar(&in.Title, "title", "", "Post title")
	create.Flags().StringVar(&in.Content, "content", "", "Post body (markdown)")
	create.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	create.Flags().StringVar(&designRaw, "design", "", "Design options as JSON")
	_ = create.MarkFlagRequired("title")

	rank := &cobra.Command{
		Use:   "rank <id> <delta>",
		Short: "Adjust a post's ranking",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var delta int
			if _, err := fmt.Sscan(args[1], &delta); err != nil {
				return fmt.Errorf("invalid delta %q", args[1])
			}
			n, err := root.newClient(cmd).RankBlog(cmd.Context(), id, delta)
			if err != nil {
				return fmt.Errorf("rank post: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New ranking: %d\n", n)
			return nil
		},
	}

	cmd.AddCommand(feed, mine, create, rank, newDeleteCmd(root, "post", func(c *client.Client, cmd *cobra.Command, id uuid.UUID) error {
		return c.DeleteBlog(cmd.Context(), id)
	}))
	return cmd
}

// --- album ---

func newAlbumCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "album", Short: "Manage album files"}

	var page pageFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List your album",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			items, err := root.newClient(cmd).ListAlbum(cmd.Context(), page.skip, page.limit)
			if err != nil {
				return fmt.Errorf("list album: %w", err)
			}
			if root.json {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTYPE\tSIZE\tPUBLIC\tURL")
			for i := range items {
				a := &items[i]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", a.ID, a.MediaType, a.HumanSize(), a.IsPublic, a.URL)
			}
			return tw.Flush()
		},
	}
	page.bind(list)

	var public bool
	upload := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file to the album",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			item, err := root.newClient(cmd).UploadAlbum(cmd.Context(), filepath.Base(args[0]), f, public)
			if err != nil {
				return fmt.Errorf("upload: %w", err)
			}
			if root.json {
				return writeJSON(cmd.OutOrStdout(), item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%s).\n", item.ID, item.HumanSize())
			return nil
		},
	}
	upload.Flags().BoolVar(&public, "public", false, "Show the file in the public gallery")

	cmd.AddCommand(list, upload, newDeleteCmd(root, "album item", func(c *client.Client, cmd *cobra.Command, id uuid.UUID) error {
		return c.DeleteAlbum(cmd.Context(), id)
	}))
	return cmd
}
