package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"studycoach/internal/store"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show concept mastery statistics",
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

		user, _ := cmd.Flags().GetString("user")
		doc, _ := cmd.Flags().GetString("document")

		repo := st.MasteryRepo()
		concepts, err := repo.ConceptStats(ctx, user, doc)
		if err != nil {
			return fmt.Errorf("load concept stats: %w", err)
		}
		chains, err := repo.ChainStats(ctx, user, doc)
		if err != nil {
			return fmt.Errorf("load chain stats: %w", err)
		}

		if len(concepts) == 0 && len(chains) == 0 {
			fmt.Println("No mastery data yet. Take a quiz first.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		if len(concepts) > 0 {
			fmt.Fprintln(w, "CONCEPT\tATTEMPTS\tCORRECT\tACCURACY")
			for _, c := range concepts {
				fmt.Fprintf(w, "%s\t%d\t%d\t%.0f%%\n", c.ConceptName, c.Attempts, c.Correct, c.Accuracy()*100)
			}
		}
		if len(chains) > 0 {
			fmt.Fprintln(w, "\nCONCEPT CHAIN\tATTEMPTS\tCORRECT")
			for _, c := range chains {
				fmt.Fprintf(w, "%s\t%d\t%d\n", strings.Join(c.Chain, " → "), c.Attempts, c.Correct)
			}
		}
		return w.Flush()
	},
}

func init() {
	statsCmd.Flags().String("user", localUserID, "User whose stats to show")
	statsCmd.Flags().String("document", "", "Limit stats to one document")
}
