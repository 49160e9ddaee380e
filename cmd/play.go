package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/app"
	"github.com/abhisek/lexiz/internal/screens/quiz"
	"github.com/abhisek/lexiz/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	Long: `Start a practice session straight away.

By default every word is asked once in priority order, words you miss
come back a few questions later. Use --mixed for a short session across
all three question kinds, or --room to play the same questions as
anyone else using that code.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kindFlag, _ := cmd.Flags().GetString("kind")
		mixed, _ := cmd.Flags().GetBool("mixed")
		room, _ := cmd.Flags().GetString("room")

		kind, ok := session.ParseKind(kindFlag)
		if !ok {
			return fmt.Errorf("unknown kind %q (want spell, recognize or recall)", kindFlag)
		}
		if mixed && room != "" {
			return fmt.Errorf("use --mixed or --room, not both")
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		d := env.quizDeps()
		opts := env.appOptions()
		switch {
		case room != "":
			s, err := quiz.NewRoom(d, room)
			if err != nil {
				return err
			}
			opts.Start = s
		case mixed:
			opts.Start = quiz.NewMixed(d)
		default:
			opts.Start = quiz.NewPractice(d, kind)
		}
		return app.Run(opts)
	},
}

func init() {
	playCmd.Flags().String("kind", string(session.KindSpell), "Question kind: spell, recognize or recall")
	playCmd.Flags().Bool("mixed", false, "Mixed session across all question kinds")
	playCmd.Flags().String("room", "", "Numeric room code for a shared mixed session")
}
