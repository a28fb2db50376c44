package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/session"
)

var placementCmd = &cobra.Command{
	Use:   "placement",
	Short: "Take the placement test to calibrate your starting level",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return a.RunPractice(cmd.Context(), session.Options{}, true)
	},
}
