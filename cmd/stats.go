package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/leveling"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your progress dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		p, err := a.Store.Profile().Get(ctx)
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Println("No progress yet. Run `prepdeck practice` to get started.")
			return nil
		}

		lp := leveling.ProgressToNextLevel(p.TotalXP)
		bar := components.ProgressBar{
			Label:       fmt.Sprintf("Level %d", lp.CurrentLevel),
			Percent:     lp.Percent / 100,
			ShowPercent: true,
			Width:       50,
		}

		due, err := a.Store.Questions().Due(ctx, time.Now(), 1000)
		if err != nil {
			return err
		}

		row := func(label, value string) {
			fmt.Printf("  %-22s %s\n", theme.Label.Render(label), theme.Value.Render(value))
		}

		fmt.Println()
		fmt.Println("  " + theme.Title.Render("Prepdeck stats"))
		fmt.Println()
		fmt.Println("  " + bar.View())
		fmt.Println()
		row("Rank", leveling.LevelName(lp.CurrentLevel))
		row("Total XP", fmt.Sprintf("%d (%d to next level)", p.TotalXP, lp.NextLevelXP-lp.CurrentLevelXP))
		row("Streak", fmt.Sprintf("%d days (best %d)", p.CurrentStreak, p.BestStreak))
		row("Accuracy", fmt.Sprintf("%.0f%%", p.Accuracy*100))
		row("Answered", fmt.Sprintf("%d", p.TotalQuestionsAnswered))
		row("Mastered", fmt.Sprintf("%d", p.QuestionsMastered))
		row("Due for review", fmt.Sprintf("%d", len(due)))
		if p.TargetDate != "" {
			goal := p.TargetDate
			if p.GoalScore > 0 {
				goal = fmt.Sprintf("%s, target %d", p.TargetDate, p.GoalScore)
			}
			row("Exam", goal)
		}
		fmt.Println()
		return nil
	},
}
