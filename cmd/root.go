package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/app"
	"github.com/abhisek/lexiz/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "lexiz",
	Short: "Adaptive vocabulary trainer",
	Long:  "Lexiz: a terminal vocabulary trainer that schedules the words you miss until they stick.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEXIZ_DB env var)")
	rootCmd.PersistentFlags().String("vocab", "", "Vocabulary file, .json or .xlsx (overrides LEXIZ_VOCAB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(roomCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(errorsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp launches the TUI on the home screen.
func runApp(cmd *cobra.Command) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	return app.Run(env.appOptions())
}
