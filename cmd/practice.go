package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")
		return a.RunPractice(cmd.Context(), session.Options{Topic: topic, Limit: count}, false)
	},
}

func init() {
	practiceCmd.Flags().String("topic", "", "Limit the session to one topic (e.g. Math)")
	practiceCmd.Flags().Int("count", 0, "Number of questions (default 10)")
}
