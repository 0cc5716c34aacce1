package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	// Optional .env for local development
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "verdict",
		Short:   "Verdict - reviewer reputation and credit economy engine",
		Version: Version,
	}

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(reviewerCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(awardCmd)
	rootCmd.AddCommand(spendCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
