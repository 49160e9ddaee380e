package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/vocab"
)

var roomCmd = &cobra.Command{
	Use:   "room <code>",
	Short: "Print the questions of a room",
	Long: `Print the questions a room code produces for the current vocabulary.

Everyone with the same vocabulary file and code gets the same list, in
the same order, with the same answer options.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		words, err := vocab.LoadFile(cfg.VocabPath)
		if err != nil {
			return fmt.Errorf("load vocabulary %s: %w", cfg.VocabPath, err)
		}

		items, err := session.BuildRoom(words, args[0])
		if err != nil {
			return err
		}
		showAnswers, _ := cmd.Flags().GetBool("answers")

		fmt.Printf("Room %s: %d questions\n", args[0], len(items))
		fmt.Println(strings.Repeat("─", 60))
		for i, it := range items {
			fmt.Printf("%2d. %-20s %s\n", i+1, it.Kind.Label(), it.DisplayPrompt)
			for j, opt := range it.Options {
				fmt.Printf("      %d) %s\n", j+1, opt)
			}
			if showAnswers {
				fmt.Printf("      answer: %s\n", it.Canonical())
			}
		}
		return nil
	},
}

func init() {
	roomCmd.Flags().Bool("answers", false, "Also print the expected answers")
}
