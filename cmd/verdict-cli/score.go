package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chidionyema/verdict-sub009/internal/reputation"
)

var (
	scoreRating   float64
	scoreReviews  int
	scoreResponse float64
	scoreReports  int
	scoreAgeDays  float64
	scoreStatus   string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute a quality score, tier and priority from raw aggregates",
	Long: `Compute the quality score for a hypothetical reviewer.

Examples:
  verdict score --rating 4.5 --reviews 120 --response 45 --age 90
  verdict score --rating 1.8 --reviews 30 --reports 2`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().Float64Var(&scoreRating, "rating", 0, "average rating (1-5, 0 = unrated)")
	scoreCmd.Flags().IntVar(&scoreReviews, "reviews", 0, "total completed reviews")
	scoreCmd.Flags().Float64Var(&scoreResponse, "response", 0, "average response time in minutes")
	scoreCmd.Flags().IntVar(&scoreReports, "reports", 0, "substantiated report count")
	scoreCmd.Flags().Float64Var(&scoreAgeDays, "age", 0, "account age in days")
	scoreCmd.Flags().StringVar(&scoreStatus, "status", "active", "account status")
}

func runScore(cmd *cobra.Command, args []string) error {
	perf := reputation.Performance{
		AverageRating:          scoreRating,
		TotalReviews:           scoreReviews,
		AvgResponseTimeMinutes: scoreResponse,
		ReportCount:            scoreReports,
		AccountAgeDays:         scoreAgeDays,
	}

	score, err := reputation.QualityScore(perf)
	if err != nil {
		return err
	}

	tier := reputation.TierFor(score, scoreReviews)
	status := reputation.Status(scoreStatus)
	priority := reputation.AssignmentPriority(tier, score, scoreResponse, status)
	decision := reputation.ActionFor(reputation.ActionInput{
		QualityScore:           score,
		TotalReviews:           scoreReviews,
		AverageRating:          scoreRating,
		ReportCount:            scoreReports,
		AvgResponseTimeMinutes: scoreResponse,
	})

	fmt.Printf("Quality score: %d\n", score)
	fmt.Printf("Tier:          %s (earnings x%.1f)\n", tier, reputation.EarningsMultiplier(tier))
	fmt.Printf("Priority:      %d\n", priority)
	if decision.Action != reputation.ActionNone {
		fmt.Printf("Action:        %s (%s)\n", decision.Action, decision.Reason)
	} else {
		fmt.Println("Action:        none")
	}
	return nil
}
