package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/session"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review due questions or past mistakes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if mistakes, _ := cmd.Flags().GetBool("mistakes"); mistakes {
			return a.RunMistakes(cmd.Context())
		}
		return a.RunPractice(cmd.Context(), session.Options{DueOnly: true}, false)
	},
}

func init() {
	reviewCmd.Flags().Bool("mistakes", false, "Replay previously missed questions instead of the due set")
}
