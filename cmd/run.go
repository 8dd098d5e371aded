package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/coachiz/internal/app"
	"github.com/abhisek/coachiz/internal/assistant"
	"github.com/abhisek/coachiz/internal/coaching"
	"github.com/abhisek/coachiz/internal/entitlement"
	"github.com/abhisek/coachiz/internal/llm"
	"github.com/abhisek/coachiz/internal/program"
	"github.com/abhisek/coachiz/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	eventRepo := st.EventRepo()

	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	var service coaching.AnswerService
	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Free-form questions will be unavailable; guided answers still work.")
		service = unavailableService{}
	} else {
		service = assistant.NewService(provider, catalog)
	}

	return app.Run(app.Options{
		Catalog:    catalog,
		Service:    service,
		EventRepo:  eventRepo,
		Subscribed: entitlement.Resolve().Subscribed(),
	})
}

// loadCatalog builds the program catalog, merging any locally authored
// programs from --programs-dir on top of the built-in seed.
func loadCatalog(cmd *cobra.Command) (*program.Catalog, error) {
	dir, _ := cmd.Flags().GetString("programs-dir")
	if dir == "" {
		dir = os.Getenv("COACHIZ_PROGRAMS_DIR")
	}
	if dir == "" {
		return program.NewCatalog(), nil
	}

	extra, err := program.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load programs from %s: %w", dir, err)
	}
	return program.NewCatalog(extra...), nil
}

// unavailableService stands in when no LLM is configured. Every ask
// fails, which the dispatcher turns into the generic failure turn
// without spending a credit.
type unavailableService struct{}

func (unavailableService) Ask(context.Context, coaching.AskRequest) (*coaching.AssistantAnswer, error) {
	return nil, fmt.Errorf("no LLM provider configured")
}
