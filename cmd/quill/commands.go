package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/five82/quill/internal/app"
	"github.com/five82/quill/internal/archive"
	"github.com/five82/quill/internal/entries"
)

type rootFlags struct {
	configPath string
	prefsPath  string
	seedFile   string
}

func (f *rootFlags) options() app.Options {
	return app.Options{
		ConfigPath: f.configPath,
		PrefsPath:  f.prefsPath,
		SeedFile:   f.seedFile,
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "quill",
		Short: "Terminal notebook for short entries with color and image covers",
		Long: `quill keeps entries with a title, content, favorite flag and cover in
memory and edits them in a terminal UI. Start from an archive with --seed and
press X inside the UI to export the current state.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.options())
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/quill/config.toml)")
	root.PersistentFlags().StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/quill/prefs.toml)")
	root.PersistentFlags().StringVar(&flags.seedFile, "seed", "", "archive to load at startup (overrides seed_file)")

	root.AddCommand(newViewsCmd(flags), newPaletteCmd(), newExportCmd(flags))
	return root
}

func newViewsCmd(flags *rootFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Print the latest updated and favorite entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Open(flags.options())
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			n := limit
			if n <= 0 {
				n = env.Config.ViewLimit
			}
			out := cmd.OutOrStdout()
			now := time.Now()
			printSection(out, "Latest updated", env.Store.LatestUpdated(n), now)
			fmt.Fprintln(out)
			printSection(out, "Favorites", env.Store.Favorites(n), now)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "entries per section (default from config)")
	return cmd
}

func newPaletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List the cover colors assigned to new entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i, c := range entries.Palette() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %s\n", i, c)
			}
			return nil
		},
	}
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the seeded state to an archive file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Open(flags.options())
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			path := env.Config.ExportFile
			if len(args) == 1 {
				path = args[0]
			}
			if err := archive.Save(path, env.Store); err != nil {
				return err
			}
			snap := env.Store.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d entries and %d images to %s\n",
				len(snap.Entries), len(snap.Images), path)
			return nil
		},
	}
}

func printSection(w io.Writer, title string, items []entries.Entry, now time.Time) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(items))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	if len(items) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, e := range items {
		star := " "
		if e.IsFavorite {
			star = "★"
		}
		when := humanize.RelTime(time.UnixMilli(e.UpdatedAt), now, "ago", "from now")
		fmt.Fprintf(w, "%s %-40s %-9s %s\n", star, truncate(e.DisplayTitle(), 40), coverCell(e), when)
	}
}

func coverCell(e entries.Entry) string {
	switch {
	case !e.HasCover():
		return "-"
	case e.CoverType == entries.CoverColor:
		return e.CoverValue
	default:
		return "image"
	}
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
