package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/coachiz/internal/assistant"
	"github.com/abhisek/coachiz/internal/coaching"
	"github.com/abhisek/coachiz/internal/llm"
	"github.com/abhisek/coachiz/internal/store"
	"github.com/spf13/cobra"
)

// askCmd runs a single coaching question end to end without the TUI.
// Useful for scripting and for checking provider configuration.
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the coach one question from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

		programID, _ := cmd.Flags().GetString("program")
		skillFlag, _ := cmd.Flags().GetString("skill")
		skill, err := parseSkill(skillFlag)
		if err != nil {
			return err
		}

		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		if _, err := catalog.Program(programID); err != nil {
			return fmt.Errorf("%w (known: %s)", err, strings.Join(catalog.IDs(), ", "))
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
		if err != nil {
			return err
		}

		selection := coaching.NewSelection(programID)
		selection.ChooseSkill(skill)
		selection.ChooseMode(coaching.ModeFreeForm)

		quota := coaching.NewQuotaTracker(coaching.DefaultCredits)
		conv := coaching.NewConversation()
		gate := coaching.NewUpsellGate(quota, nil)
		dispatcher := coaching.NewDispatcher(
			assistant.NewService(provider, catalog), selection, quota, gate, conv)

		answer, err := dispatcher.Ask(cmd.Context(), question)
		if err != nil {
			var failure *coaching.AnswerFailure
			if errors.As(err, &failure) {
				return fmt.Errorf("coach unavailable: %w", failure.Err)
			}
			return err
		}

		fmt.Println(answer.Response)
		for _, src := range answer.Sources {
			if title, ok := src["title"].(string); ok {
				fmt.Printf("  - %s\n", title)
			}
		}
		return nil
	},
}

func parseSkill(s string) (coaching.SkillLevel, error) {
	for _, level := range coaching.AllSkillLevels() {
		if string(level) == s {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown skill level %q (beginner, intermediate, advanced)", s)
}

func init() {
	askCmd.Flags().StringP("program", "p", "general", "Program to coach within")
	askCmd.Flags().StringP("skill", "s", "beginner", "Skill level: beginner, intermediate, advanced")
}
