package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all local progress and the question bank",
	Long:  "Deletes every local row: questions, attempts and the profile. The bank is reseeded on the next run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if confirm, _ := cmd.Flags().GetBool("confirm"); !confirm {
			return fmt.Errorf("this wipes all local data; re-run with --confirm")
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Store.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Local data cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("confirm", false, "Actually delete everything")
}
