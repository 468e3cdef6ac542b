package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/chatextract/internal/archive"
	"github.com/mithrel/chatextract/internal/present"
	"github.com/mithrel/chatextract/internal/transcript"
	"github.com/mithrel/chatextract/internal/ui"
	"github.com/mithrel/chatextract/internal/util"
)

func newBrowseCmd() *cobra.Command {
	var date, keyword string
	cmd := &cobra.Command{
		Use:   "browse <folder>",
		Short: "Pick a conversation interactively and read it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			crit := archive.Criteria{Keyword: keyword}
			if date != "" {
				day, err := util.ResolveDay(date, time.Now())
				if err != nil {
					return err
				}
				crit.Date = day
			}
			strategy, ok := transcript.ParseStrategy(app.Cfg.GetString("transcript.strategy"))
			if !ok {
				return fmt.Errorf("invalid transcript.strategy: %q", app.Cfg.GetString("transcript.strategy"))
			}

			exp, err := archive.Load(args[0])
			if err != nil {
				return err
			}
			convs := archive.Conversations(archive.Filter(exp.Records, crit))
			idx, err := ui.Browse(cmd.Context(), convs)
			if err != nil {
				return err
			}
			if idx < 0 {
				return nil
			}
			opts := present.Options{
				Mode:     present.ModePretty,
				Strategy: strategy,
				Style:    app.Cfg.GetString("show.style"),
				WordWrap: app.Cfg.GetInt("show.word_wrap"),
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderConversation(cmd.Context(), w, convs[idx], opts)
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "only conversations from this day")
	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "only titles containing this text")
	registerFolderCompletion(cmd)
	registerDateCompletion(cmd)
	registerKeywordCompletion(cmd)
	return cmd
}
