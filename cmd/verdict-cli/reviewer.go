package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chidionyema/verdict-sub009/internal/economy"
	"github.com/chidionyema/verdict-sub009/internal/reputation"
)

var reviewerCmd = &cobra.Command{
	Use:   "reviewer [reviewer-id]",
	Short: "Show a reviewer's reputation snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewer,
}

func runReviewer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := economy.New(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer engine.Close()

	snap, err := engine.ReviewerSnapshot(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Reviewer:       %s\n", snap.ReviewerID)
	fmt.Printf("Status:         %s\n", snap.Status)
	fmt.Printf("Quality score:  %d\n", snap.QualityScore)
	fmt.Printf("Tier:           %s (earnings x%.1f)\n", snap.Tier, snap.EarningsMultiplier)
	fmt.Printf("Priority:       %d\n", snap.AssignmentPriority)
	fmt.Printf("Judgments:      %d\n", snap.TotalJudgments)
	fmt.Printf("Consensus rate: %.1f%%\n", snap.ConsensusRate)
	fmt.Printf("Avg rating:     %.2f\n", snap.AverageRating)
	fmt.Printf("Avg response:   %.0f min\n", snap.AvgResponseMinutes)
	fmt.Printf("Streak:         %d day(s) (longest %d)\n", snap.CurrentStreakDays, snap.LongestStreakDays)
	if snap.ReportCount > 0 {
		fmt.Printf("Reports:        %d\n", snap.ReportCount)
	}
	return nil
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [reviewer-id]",
	Short: "Re-run scoring and the moderation rules for a reviewer",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := economy.New(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer engine.Close()

	eval, err := engine.EvaluateReviewer(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Quality score: %d\n", eval.QualityScore)
	fmt.Printf("Tier:          %s\n", eval.Tier)
	fmt.Printf("Status:        %s\n", eval.Status)
	if eval.Action != reputation.ActionNone {
		fmt.Printf("Action:        %s (%s)\n", eval.Action, eval.Reason)
	} else {
		fmt.Println("Action:        none")
	}
	return nil
}
