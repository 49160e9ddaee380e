package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/stats"
	"github.com/abhisek/lexiz/internal/store"
	"github.com/abhisek/lexiz/internal/vocab"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("sessions")
		ctx := cmd.Context()

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ids := make([]string, len(env.words))
		for i, w := range env.words {
			ids[i] = w.ID
		}
		sum := stats.Summarize(ids, env.book)

		fmt.Printf("Words:          %d\n", sum.Total)
		fmt.Printf("Studied:        %d\n", sum.Studied)
		fmt.Printf("Mastered:       %d\n", sum.Mastered)
		fmt.Printf("Need practice:  %d\n", sum.NeedPractice)

		errorIDs := env.book.ErrorSet()
		if len(errorIDs) > 0 {
			byID := vocab.Index(env.words)
			events := env.store.EventRepo()

			fmt.Println()
			fmt.Printf("%-6s  %-20s  %-24s  %5s  %-6s  %s\n",
				"ID", "Word", "Meaning", "Wrong", "Level", "Accuracy")
			fmt.Println(strings.Repeat("─", 80))
			for _, id := range errorIDs {
				w, ok := byID[id]
				if !ok {
					continue
				}
				ws, _ := env.book.Get(id)
				acc, n, err := events.WordAccuracy(ctx, id)
				if err != nil {
					return fmt.Errorf("word accuracy: %w", err)
				}
				accStr := "-"
				if n > 0 {
					accStr = fmt.Sprintf("%.0f%% of %d", acc*100, n)
				}
				fmt.Printf("%-6s  %-20s  %-24s  %5d  %-6s  %s\n",
					id, truncate(w.Term(), 20), truncate(w.Prompt, 24),
					ws.TimesWrong, stats.DifficultyOf(ws), accStr)
			}
		}

		sessions, err := env.store.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) > 0 {
			fmt.Println()
			fmt.Println("Recent sessions:")
			for _, s := range sessions {
				var acc float64
				if s.QuestionsServed > 0 {
					acc = float64(s.CorrectAnswers) / float64(s.QuestionsServed) * 100
				}
				mode := s.Mode
				if s.Room != "" {
					mode += " " + s.Room
				}
				fmt.Printf("  %s  %-14s  %3d questions  %3.0f%%  %d:%02d\n",
					s.Timestamp.Local().Format("2006-01-02 15:04"), mode,
					s.QuestionsServed, acc, s.DurationSecs/60, s.DurationSecs%60)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("sessions", 10, "Number of recent sessions to show")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
