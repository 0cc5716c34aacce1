package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chidionyema/verdict-sub009/internal/economy"
)

var (
	awardConsensus   string
	awardHelpfulness float64
)

var awardCmd = &cobra.Command{
	Use:   "award [reviewer-id] [review-id]",
	Short: "Credit a reviewer for a completed review",
	Args:  cobra.ExactArgs(2),
	RunE:  runAward,
}

func init() {
	awardCmd.Flags().StringVar(&awardConsensus, "consensus", "", "consensus outcome: match|miss (empty = no data)")
	awardCmd.Flags().Float64Var(&awardHelpfulness, "helpfulness", 0, "helpfulness rating 1-5 (0 = no rating)")
}

func runAward(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := economy.New(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer engine.Close()

	var consensusMatch *bool
	switch awardConsensus {
	case "":
	case "match":
		v := true
		consensusMatch = &v
	case "miss":
		v := false
		consensusMatch = &v
	default:
		return fmt.Errorf("invalid --consensus %q (want match or miss)", awardConsensus)
	}

	var helpfulness *float64
	if cmd.Flags().Changed("helpfulness") {
		helpfulness = &awardHelpfulness
	}

	result, err := engine.AwardCreditsForReview(context.Background(), args[0], args[1], consensusMatch, helpfulness)
	if err != nil {
		return err
	}

	fmt.Printf("Awarded %d point(s) to %s\n", result.PointsAwarded, result.ReviewerID)
	fmt.Printf("Streak:  %d day(s) (longest %d)\n", result.StreakDays, result.LongestStreakDays)
	if result.BonusCredits > 0 {
		fmt.Printf("Bonus:   +%d credit(s) for the %d-day streak\n", result.BonusCredits, result.StreakDays)
	}
	fmt.Printf("Balance: %d\n", result.NewBalance)
	return nil
}
