package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mithrel/chatextract/internal/archive"
	"github.com/mithrel/chatextract/internal/present"
	"github.com/mithrel/chatextract/internal/present/format"
	"github.com/mithrel/chatextract/internal/transcript"
)

func newShowCmd() *cobra.Command {
	var output string
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <folder> <conversation-id|index>",
		Short: "Print one conversation's transcript",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			applyConfigFlagOverrides(cmd, app.Cfg, map[string]string{
				"strategy": "transcript.strategy",
				"style":    "show.style",
				"wrap":     "show.word_wrap",
			})
			mode, ok := present.ParseMode(output)
			if !ok {
				return fmt.Errorf("invalid --output: %q (use plain|pretty|json|ndjson|html)", output)
			}
			strategy, ok := transcript.ParseStrategy(app.Cfg.GetString("transcript.strategy"))
			if !ok {
				return fmt.Errorf("invalid --strategy: %q (use timeline|branch)", app.Cfg.GetString("transcript.strategy"))
			}

			exp, err := archive.Load(args[0])
			if err != nil {
				return err
			}
			rec, ok := archive.Find(exp.Records, args[1])
			if !ok {
				return fmt.Errorf("%w: conversation %q", archive.ErrNotFound, args[1])
			}

			if raw {
				return format.WriteJSONRecord(cmd.OutOrStdout(), rec)
			}

			opts := present.Options{
				Mode:       mode,
				JSONIndent: true,
				Strategy:   strategy,
				Style:      app.Cfg.GetString("show.style"),
				WordWrap:   app.Cfg.GetInt("show.word_wrap"),
				HTMLTitle:  app.Cfg.GetString("html.title"),
			}
			if mode == present.ModeJSON || mode == present.ModeNDJSON || mode == present.ModeHTML {
				return present.RenderConversation(cmd.Context(), cmd.OutOrStdout(), rec.Conversation, opts)
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderConversation(cmd.Context(), w, rec.Conversation, opts)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "plain", "output format: plain|pretty|json|ndjson|html")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the conversation's source object as JSON")
	cmd.Flags().String("strategy", "", "message selection: timeline|branch")
	cmd.Flags().String("style", "", "glamour style for --output pretty")
	cmd.Flags().Int("wrap", 0, "word wrap for --output pretty")
	registerFolderCompletion(cmd)
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"plain", "pretty", "json", "ndjson", "html"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
