package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mithrel/chatextract/internal/archive"
	"github.com/mithrel/chatextract/internal/present"
	"github.com/mithrel/chatextract/internal/present/format"
)

func newListCmd() *cobra.Command {
	var output string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:     "list <folder>",
		Aliases: []string{"ls", "dates"},
		Short:   "List the dates that have conversations",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			applyConfigFlagOverrides(cmd, app.Cfg, map[string]string{
				"sample-titles": "list.sample_titles",
				"title-width":   "list.title_width",
			})
			mode, ok := present.ParseMode(output)
			if !ok || mode == present.ModePretty || mode == present.ModeHTML {
				return fmt.Errorf("invalid --output: %q (use plain|json|ndjson)", output)
			}

			exp, err := archive.Load(args[0])
			if err != nil {
				return err
			}
			groups := archive.GroupByDate(exp.Records)
			rows := make([]format.DateRow, 0, len(groups))
			for _, g := range groups {
				titles := make([]string, 0, len(g.Records))
				for _, r := range g.Records {
					titles = append(titles, r.Conversation.DisplayTitle())
				}
				rows = append(rows, format.DateRow{Date: g.Date, Count: len(g.Records), Titles: titles})
			}
			app.Log.Debug().Int("conversations", len(exp.Records)).Int("dates", len(rows)).Msg("grouped export")

			opts := present.Options{
				Mode:         mode,
				JSONIndent:   true,
				Headers:      !noHeaders,
				SampleTitles: app.Cfg.GetInt("list.sample_titles"),
				TitleWidth:   app.Cfg.GetInt("list.title_width"),
			}
			if mode != present.ModePlain {
				return present.RenderDates(cmd.Context(), cmd.OutOrStdout(), rows, opts)
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				if len(rows) == 0 {
					_, err := fmt.Fprintln(w, "No dated conversations found.")
					return err
				}
				_, _ = fmt.Fprintf(w, "Found %d conversation(s) across %d date(s):\n\n", countRows(rows), len(rows))
				if err := present.RenderDates(cmd.Context(), w, rows, opts); err != nil {
					return err
				}
				if exp.HasChatHTML {
					_, _ = fmt.Fprintf(w, "\n%s present (usable with --legacy-html)\n", archive.ChatHTMLFile)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "plain", "output format: plain|json|ndjson")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit the table header")
	cmd.Flags().Int("sample-titles", 0, "sample titles shown per date")
	cmd.Flags().Int("title-width", 0, "maximum runes per sample title")
	registerFolderCompletion(cmd)
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"plain", "json", "ndjson"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func countRows(rows []format.DateRow) int {
	n := 0
	for _, r := range rows {
		n += r.Count
	}
	return n
}
