package cmd

import (
	"fmt"
	"os"

	"studycoach/internal/app"
	"studycoach/internal/llm"
	"studycoach/internal/mastery"
	"studycoach/internal/quizgen"
	"studycoach/internal/store"

	"github.com/spf13/cobra"
)

// localUserID identifies the terminal user. The TUI is single-user; per-user
// tracking only matters for the HTTP server.
const localUserID = "local"

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	reporter := mastery.NewReporter(st.MasteryRepo())
	defer reporter.Wait()

	opts := app.Options{
		Quizzes:  st.QuizRepo(),
		Reporter: reporter,
		UserID:   localUserID,
	}

	provider, err := llm.NewProviderFromConfig(ctx, cfg.LLM.Provider, cfg.LLM.Model, st.LLMLogRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quiz generation will be unavailable.")
	} else {
		opts.Generator = quizgen.New(provider, quizgen.DefaultConfig())
	}

	return app.Run(opts)
}
