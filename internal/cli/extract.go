package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/chatextract/internal/archive"
	"github.com/mithrel/chatextract/internal/present/format"
	"github.com/mithrel/chatextract/internal/transcript"
	"github.com/mithrel/chatextract/internal/util"
	"github.com/mithrel/chatextract/pkg/api"
)

type extractFlags struct {
	date       string
	keyword    string
	all        bool
	legacyHTML bool
	noHTML     bool
}

func newExtractCmd() *cobra.Command {
	var f extractFlags
	cmd := &cobra.Command{
		Use:   "extract <folder>",
		Short: "Extract the conversations of one day",
		Example: `  chatextract extract ./export --date 2025-10-08
  chatextract extract ./export --date yesterday --keyword python
  chatextract extract ./export --all --no-html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			applyConfigFlagOverrides(cmd, app.Cfg, map[string]string{
				"strategy": "transcript.strategy",
			})
			if f.noHTML {
				app.Cfg.Set("html.enabled", false)
			}

			crit := archive.Criteria{Keyword: f.keyword}
			switch {
			case f.all && f.date != "":
				return fmt.Errorf("--all and --date are mutually exclusive")
			case !f.all && f.date == "":
				return fmt.Errorf("--date is required (or pass --all)")
			case f.date != "":
				day, err := util.ResolveDay(f.date, time.Now())
				if err != nil {
					return err
				}
				crit.Date = day
			}
			strategy, ok := transcript.ParseStrategy(app.Cfg.GetString("transcript.strategy"))
			if !ok {
				return fmt.Errorf("invalid --strategy: %q (use timeline|branch)", app.Cfg.GetString("transcript.strategy"))
			}

			exp, err := archive.Load(args[0])
			if err != nil {
				return err
			}
			app.Log.Debug().Str("folder", exp.Folder).Int("conversations", len(exp.Records)).Msg("loaded export")

			out := cmd.OutOrStdout()
			matched := archive.Filter(exp.Records, crit)
			if len(matched) == 0 {
				_, _ = fmt.Fprintln(out, noMatchMessage(crit))
				return ErrNoMatches
			}

			outDir := exp.OutputDir(app.Cfg.GetString("output_dir"))
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			data, err := format.EncodeRecords(matched)
			if err != nil {
				return fmt.Errorf("encode conversations: %w", err)
			}
			jsonPath := filepath.Join(outDir, archive.ConversationsFile)
			if err := util.AtomicWriteFile(jsonPath, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", jsonPath, err)
			}
			_, _ = fmt.Fprintf(out, "\nExtracted %d conversation(s) for %s\n", len(matched), describeCriteria(crit))
			_, _ = fmt.Fprintf(out, "Output: %s\n", jsonPath)
			_, _ = fmt.Fprintf(out, "BLAKE3: %s\n", api.Digest(data))

			if app.Cfg.GetBool("html.enabled") {
				htmlPath := filepath.Join(outDir, archive.ChatHTMLFile)
				var herr error
				if f.legacyHTML {
					herr = exp.CopyChatHTML(htmlPath)
				} else {
					doc := format.NewHTMLDocument(format.HTMLOptions{
						Title:    app.Cfg.GetString("html.title"),
						Strategy: strategy,
					})
					herr = doc.WriteFile(htmlPath, archive.Conversations(matched))
				}
				if herr != nil {
					app.Log.Warn().Err(herr).Str("path", htmlPath).Msg("chat.html not written")
				} else {
					_, _ = fmt.Fprintf(out, "Output: %s\n", htmlPath)
				}
			}

			writeSummary(out, matched)
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "day to extract (YYYY-MM-DD, today, yesterday, 3d, 1w)")
	cmd.Flags().StringVarP(&f.keyword, "keyword", "k", "", "only titles containing this text (case-insensitive)")
	cmd.Flags().BoolVar(&f.all, "all", false, "extract every conversation regardless of date")
	cmd.Flags().String("output-dir", "", "base output directory (default from config: extracted)")
	cmd.Flags().BoolVar(&f.legacyHTML, "legacy-html", false, "copy the export's own chat.html instead of generating one")
	cmd.Flags().BoolVar(&f.noHTML, "no-html", false, "skip chat.html")
	cmd.Flags().String("strategy", "", "message selection: timeline|branch")
	cmd.Flags().String("html-title", "", "title of the generated HTML document")
	registerFolderCompletion(cmd)
	registerDateCompletion(cmd)
	registerKeywordCompletion(cmd)
	_ = cmd.RegisterFlagCompletionFunc("strategy", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(transcript.Timeline), string(transcript.Branch)}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func describeCriteria(c archive.Criteria) string {
	what := "all dates"
	if c.Date != "" {
		what = c.Date
	}
	if c.Keyword != "" {
		what += fmt.Sprintf(" matching %q", c.Keyword)
	}
	return what
}

func noMatchMessage(c archive.Criteria) string {
	if c.Date == "" {
		if c.Keyword == "" {
			return "No conversations found."
		}
		return fmt.Sprintf("No conversations found matching keyword: %s", c.Keyword)
	}
	msg := "No conversations found for date: " + c.Date
	if c.Keyword != "" {
		msg += fmt.Sprintf(" with keyword: %s", c.Keyword)
	}
	return msg
}

func writeSummary(w io.Writer, records []api.Record) {
	_, _ = fmt.Fprintln(w, "\nSummary:")
	for i, r := range records {
		c := r.Conversation
		_, _ = fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, c.CreateTime.Stamp("Unknown"), c.DisplayTitle())
	}
}

// IsNoMatches reports whether err is the empty-selection outcome.
func IsNoMatches(err error) bool { return errors.Is(err, ErrNoMatches) }
