package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var programCmd = &cobra.Command{
	Use:   "program",
	Short: "Inspect available coaching programs",
}

var programListCmd = &cobra.Command{
	Use:   "list",
	Short: "List programs",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("%-20s  %-32s  %s\n", "ID", "Name", "Guided")
		for _, p := range catalog.All() {
			guided := "-"
			if p.GuidedQuestions.Enabled {
				guided = fmt.Sprintf("%d questions, %d free",
					len(p.GuidedQuestions.Questions), p.GuidedQuestions.FreeAttempts)
			}
			fmt.Printf("%-20s  %-32s  %s\n", p.ID, p.Name, guided)
		}
		return nil
	},
}

var programShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a program's guided questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		p, err := catalog.Program(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n%s\n", p.Name, p.ID, p.Description)
		if !p.GuidedQuestions.Enabled {
			fmt.Println("\nNo guided questions; free-form coaching only.")
			return nil
		}

		fmt.Printf("\nGuided questions (%d free):\n", p.GuidedQuestions.FreeAttempts)
		for i, q := range p.GuidedQuestions.Questions {
			marker := " "
			if i >= p.GuidedQuestions.FreeAttempts {
				marker = "*"
			}
			fmt.Printf("  %s %d. %s\n", marker, i+1, q.Question)
		}
		fmt.Println("\n  * requires PLUS")
		return nil
	},
}

func init() {
	programCmd.AddCommand(programListCmd)
	programCmd.AddCommand(programShowCmd)
}
