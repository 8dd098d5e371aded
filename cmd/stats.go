package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/coachiz/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show coaching usage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.EventRepo()

		stats, err := repo.SessionStats(ctx)
		if err != nil {
			return fmt.Errorf("query session stats: %w", err)
		}

		if stats.Sessions == 0 {
			fmt.Println("No coaching sessions recorded yet.")
			return nil
		}

		mins := stats.TotalSecs / 60
		fmt.Printf("Sessions:        %d\n", stats.Sessions)
		fmt.Printf("Questions asked: %d\n", stats.QuestionsAsked)
		fmt.Printf("Credits used:    %d\n", stats.CreditsUsed)
		fmt.Printf("Time coaching:   %dm\n", mins)

		accepted, shown, err := repo.CountUpgrades(ctx)
		if err != nil {
			return fmt.Errorf("query upgrades: %w", err)
		}
		if shown > 0 {
			fmt.Printf("Upgrade offers:  %d shown, %d accepted\n", shown, accepted)
		}

		return nil
	},
}
