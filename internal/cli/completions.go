package cli

import (
	"github.com/spf13/cobra"

	"github.com/mithrel/chatextract/internal/archive"
	"github.com/mithrel/chatextract/internal/util"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "bash",
		Short: "Generate Bash completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "zsh",
		Short: "Generate Zsh completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "fish",
		Short: "Generate Fish completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	})

	return cmd
}

const maxTitleCompletions = 20

// registerFolderCompletion completes the first positional argument with
// directories.
func registerFolderCompletion(cmd *cobra.Command) {
	cmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return nil, cobra.ShellCompDirectiveFilterDirs
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerDateCompletion offers the days present in the export named by the
// first argument.
func registerDateCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("date", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		exp, err := archive.Load(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return archive.Dates(exp.Records), cobra.ShellCompDirectiveNoFileComp
	})
}

// registerKeywordCompletion fuzzy-matches conversation titles.
func registerKeywordCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("keyword", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		exp, err := archive.Load(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		titles := make([]string, 0, len(exp.Records))
		for _, r := range exp.Records {
			titles = append(titles, r.Conversation.DisplayTitle())
		}
		return util.ScoreCompletions(toComplete, titles, maxTitleCompletions), cobra.ShellCompDirectiveNoFileComp
	})
}
