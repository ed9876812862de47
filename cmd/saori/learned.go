package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/saori/internal/config"
	"github.com/sandevgo/saori/internal/service/learning"
	"github.com/sandevgo/saori/internal/service/ui"
	"github.com/spf13/cobra"
)

var (
	learnedUser  string
	learnedMin   float64
	learnedLimit int
)

var learnedCmd = &cobra.Command{
	Use:          "learned",
	Short:        "List learned replies from the store",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		store, err := initStorage(ctx, config.NewAppConfig(ctx))
		if err != nil {
			return err
		}
		defer store.close()

		stored, err := store.learned.TopEntries(ctx, learnedUser, learnedMin, learnedLimit)
		if err != nil {
			return fmt.Errorf("failed to load learned entries: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.TableHeaderStyle.Render(fmt.Sprintf("%-6s %-24s %s", "SCORE", "EMOTIONS", "PHRASE")))
		for _, s := range stored {
			entry, err := learning.ParseEntry(s)
			if err != nil {
				fmt.Fprintf(out, "%-6.2f %-24s %s\n", s.ConfidenceScore, "?", ui.DescStyle.Render("unreadable entry "+s.ID))
				continue
			}

			emotions := make([]string, 0, len(entry.EmotionKeywords))
			for name := range entry.EmotionKeywords {
				emotions = append(emotions, name)
			}
			sort.Strings(emotions)

			phrase := ""
			if len(entry.KeyPhrases) > 0 {
				phrase = entry.KeyPhrases[0]
			}
			fmt.Fprintf(out, "%-6.2f %-24s %s\n", entry.ConfidenceScore, strings.Join(emotions, ","), phrase)
		}
		return nil
	},
}

func init() {
	learnedCmd.Flags().StringVar(&learnedUser, "user", "", "user id, empty for the shared scope")
	learnedCmd.Flags().Float64Var(&learnedMin, "min", 0.7, "minimum confidence")
	learnedCmd.Flags().IntVar(&learnedLimit, "limit", 20, "maximum entries")
	rootCmd.AddCommand(learnedCmd)
}
