package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chidionyema/verdict-sub009/internal/economy"
)

var (
	spendDescription string
	spendSourceID    string
)

var spendCmd = &cobra.Command{
	Use:   "spend [actor-id] [credits]",
	Short: "Spend credits from an actor's balance",
	Args:  cobra.ExactArgs(2),
	RunE:  runSpend,
}

func init() {
	spendCmd.Flags().StringVar(&spendDescription, "description", "manual spend", "ledger description")
	spendCmd.Flags().StringVar(&spendSourceID, "source", "", "source id (e.g. submission)")
}

func runSpend(cmd *cobra.Command, args []string) error {
	credits, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid credit amount %q", args[1])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := economy.New(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer engine.Close()

	balance, err := engine.SpendCredits(context.Background(), args[0], credits, spendDescription, spendSourceID)
	if err != nil {
		var insufficient *economy.InsufficientCreditsError
		if errors.As(err, &insufficient) {
			return fmt.Errorf("insufficient credits: need %d, have %d", insufficient.Needed, insufficient.Available)
		}
		return err
	}

	fmt.Printf("Spent %d credit(s); new balance %d\n", credits, balance)
	return nil
}

var (
	quotePrivate    bool
	quoteExpertOnly bool
	quotePriority   bool
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a submission's premium features",
	RunE:  runQuote,
}

func init() {
	quoteCmd.Flags().BoolVar(&quotePrivate, "private", false, "private submission")
	quoteCmd.Flags().BoolVar(&quoteExpertOnly, "expert-only", false, "expert reviewers only")
	quoteCmd.Flags().BoolVar(&quotePriority, "priority", false, "priority queue")
}

func runQuote(cmd *cobra.Command, args []string) error {
	cost, features := economy.SubmissionCost(economy.SubmissionOptions{
		Private:       quotePrivate,
		ExpertOnly:    quoteExpertOnly,
		PriorityQueue: quotePriority,
	})

	fmt.Printf("Cost:     %d credit(s)\n", cost)
	fmt.Printf("Features: %s\n", strings.Join(features, ", "))
	return nil
}

var balanceCmd = &cobra.Command{
	Use:   "balance [actor-id]",
	Short: "Show an actor's credit balance and recent ledger entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runBalance,
}

func runBalance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := economy.New(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	balance, err := engine.Balance(ctx, args[0])
	if err != nil {
		return err
	}
	entries, err := engine.Entries(ctx, args[0], 10)
	if err != nil {
		return err
	}

	fmt.Printf("Balance: %d credit(s)\n", balance)
	if len(entries) > 0 {
		fmt.Println("\nRecent entries:")
		for _, e := range entries {
			fmt.Printf("  %s  %+d  %-7s %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Amount, e.Type, e.Description)
		}
	}
	return nil
}
