// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"privatespace/internal/design"
)

func printVars(w io.Writer, vars map[string]string) error {
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, k := range names {
		fmt.Fprintf(tw, "%s\t%s\n", k, vars[k])
	}
	return tw.Flush()
}

type themeOptions struct {
	background, gradientStart, gradientEnd string
	gradientAngle                          int
	color, font, sidebar, shadow, layout   string
	fontSize                               int
	radius                                 float64
}

// theme builds a Theme from the flags that were set. Flags left alone stay
// nil so the system default applies.
func (o *themeOptions) theme(flags *pflag.FlagSet) *design.Theme {
	t := &design.Theme{}
	str := func(name, v string) *string {
		if flags.Changed(name) {
			return design.Ptr(v)
		}
		return nil
	}
	t.BackgroundColor = str("background", o.background)
	t.GradientStart = str("gradient-start", o.gradientStart)
	t.GradientEnd = str("gradient-end", o.gradientEnd)
	if flags.Changed("gradient-angle") {
		t.GradientAngle = design.Ptr(o.gradientAngle)
	}
	if t.GradientStart != nil || t.GradientEnd != nil || t.GradientAngle != nil {
		t.BackgroundType = design.Ptr(design.BackgroundGradient)
	} else if t.BackgroundColor != nil {
		t.BackgroundType = design.Ptr(design.BackgroundSolid)
	}
	t.Color = str("color", o.color)
	t.FontFamily = str("font", o.font)
	if flags.Changed("font-size") {
		t.FontSize = design.Ptr(o.fontSize)
	}
	t.SidebarColor = str("sidebar", o.sidebar)
	t.CardShadow = str("shadow", o.shadow)
	if flags.Changed("radius") {
		t.Radius = design.Ptr(o.radius)
	}
	if flags.Changed("layout") {
		t.LayoutHeight = design.Ptr(design.LayoutHeight(o.layout))
	}
	return t
}

func newThemeCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "theme", Short: "Show or apply your theme"}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the cascade variables of your stored theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			c := root.newClient(cmd)
			if _, err := c.Me(cmd.Context()); err != nil {
				return fmt.Errorf("load theme: %w", err)
			}
			if root.json {
				return writeJSON(cmd.OutOrStdout(), c.ThemeVars())
			}
			return printVars(cmd.OutOrStdout(), c.ThemeVars())
		},
	}

	opts := &themeOptions{}
	apply := &cobra.Command{
		Use:   "apply",
		Short: "Replace your theme",
		Long: "Replace your theme with the given settings. Settings not given\n" +
			"fall back to the system defaults, not to the previous theme.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			c := root.newClient(cmd)
			if err := c.ApplyTheme(cmd.Context(), opts.theme(cmd.Flags())); err != nil {
				return fmt.Errorf("apply theme: %w", err)
			}
			if root.json {
				return writeJSON(cmd.OutOrStdout(), c.ThemeVars())
			}
			return printVars(cmd.OutOrStdout(), c.ThemeVars())
		},
	}
	f := apply.Flags()
	f.StringVar(&opts.background, "background", "", "Main background color")
	f.StringVar(&opts.gradientStart, "gradient-start", "", "Gradient start color")
	f.StringVar(&opts.gradientEnd, "gradient-end", "", "Gradient end color")
	f.IntVar(&opts.gradientAngle, "gradient-angle", 135, "Gradient angle in degrees")
	f.StringVar(&opts.color, "color", "", "Primary text color")
	f.StringVar(&opts.font, "font", "", "Heading font family")
	f.IntVar(&opts.fontSize, "font-size", 16, "Root font size in px")
	f.StringVar(&opts.sidebar, "sidebar", "", "Sidebar color")
	f.StringVar(&opts.shadow, "shadow", "", "Card shadow")
	f.Float64Var(&opts.radius, "radius", 1, "Corner radius in rem")
	f.StringVar(&opts.layout, "layout", "", "Card height: compact, auto or relaxed")

	cmd.AddCommand(show, apply)
	return cmd
}

func newStatsCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counters and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			s, err := root.newClient(cmd).Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}
			if root.json {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Journal entries: %d\nBlog posts:      %d\nAlbum items:     %d\nStorage used:    %.2f MB\n",
				s.JournalCount, s.BlogCount, s.AlbumCount, s.StorageUsedMB)
			if len(s.RecentActivity) > 0 {
				fmt.Fprintln(out, "\nRecent activity:")
				for _, a := range s.RecentActivity {
					fmt.Fprintf(out, "  %s  %-7s  %s\n", a.CreatedAt.Format("2006-01-02 15:04"), a.Type, a.Title)
				}
			}
			return nil
		},
	}
}

func newResolveCmd(root *rootFlags) *cobra.Command {
	var surface, designRaw string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve design options into CSS for a surface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.requireToken(); err != nil {
				return err
			}
			sf, err := design.ParseSurface(surface)
			if err != nil {
				return err
			}
			opts, err := parseDesign(designRaw)
			if err != nil {
				return err
			}
			res, err := root.newClient(cmd).Resolve(cmd.Context(), sf, opts)
			if err != nil {
				return fmt.Errorf("resolve: %w", err)
			}
			if root.json {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "style: %s\nclass: %s\n", res.CSS, res.ClassNames)
			return nil
		},
	}
	cmd.Flags().StringVar(&surface, "surface", string(design.SurfaceJournal), "journal, blog, profile or album")
	cmd.Flags().StringVar(&designRaw, "design", "", "Design options as JSON")
	return cmd
}
