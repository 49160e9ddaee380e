package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/app"
	"github.com/abhisek/lexiz/internal/screens/quiz"
	"github.com/abhisek/lexiz/internal/session"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review the words in the error set",
	RunE: func(cmd *cobra.Command, args []string) error {
		kindFlag, _ := cmd.Flags().GetString("kind")
		kind, ok := session.ParseKind(kindFlag)
		if !ok {
			return fmt.Errorf("unknown kind %q (want spell, recognize or recall)", kindFlag)
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if len(env.book.ErrorSet()) == 0 {
			fmt.Println("No words to review.")
			return nil
		}

		opts := env.appOptions()
		opts.Start = quiz.NewReview(env.quizDeps(), kind)
		return app.Run(opts)
	},
}

func init() {
	reviewCmd.Flags().String("kind", string(session.KindSpell), "Question kind: spell, recognize or recall")
}
