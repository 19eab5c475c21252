package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"studycoach/internal/llm"
	"studycoach/internal/quizgen"
	"studycoach/internal/store"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <document>",
	Short: "Generate a quiz from a text document and save it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

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

		provider, err := llm.NewProviderFromConfig(ctx, cfg.LLM.Provider, cfg.LLM.Model, st.LLMLogRepo())
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}

		num, _ := cmd.Flags().GetInt("questions")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}

		gen := quizgen.New(provider, quizgen.DefaultConfig())
		q, err := gen.Generate(ctx, quizgen.GenerateInput{
			Title:        title,
			SourceText:   string(data),
			NumQuestions: num,
			Difficulty:   difficulty,
		})
		if err != nil {
			return fmt.Errorf("generate quiz: %w", err)
		}

		if err := st.QuizRepo().Save(ctx, q); err != nil {
			return fmt.Errorf("save quiz: %w", err)
		}

		fmt.Printf("Saved quiz %q with %d questions (id %s)\n", q.Title, len(q.Questions), q.ID)
		return nil
	},
}

func init() {
	generateCmd.Flags().Int("questions", 0, "Number of questions to generate (default 5)")
	generateCmd.Flags().String("difficulty", "", "Difficulty: easy, medium, hard or mixed")
	generateCmd.Flags().String("title", "", "Quiz title (defaults to the document file name)")
}
