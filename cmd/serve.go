package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"studycoach/internal/llm"
	"studycoach/internal/mastery"
	"studycoach/internal/quizgen"
	"studycoach/internal/server"
	"studycoach/internal/store"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		opts := server.Options{
			Quizzes:       st.QuizRepo(),
			Mastery:       st.MasteryRepo(),
			Reporter:      reporter,
			SessionSecret: cfg.Server.SessionSecret,
		}

		provider, err := llm.NewProviderFromConfig(ctx, cfg.LLM.Provider, cfg.LLM.Model, st.LLMLogRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Quiz generation endpoint will be unavailable.")
		} else {
			opts.Generator = quizgen.New(provider, quizgen.DefaultConfig())
		}

		srv := server.New(opts)
		defer srv.Shutdown(context.Background())

		log.Printf("listening on %s (db %s)", cfg.Server.Addr, dbPath)
		return http.ListenAndServe(cfg.Server.Addr, srv.Handler())
	},
}
