package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all study history",
	Long:  "Delete every word's study record, including the error set. Session history is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("this deletes all study history; rerun with --yes to confirm")
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.StatsRepo().Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset stats: %w", err)
		}
		fmt.Println("Study history cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
