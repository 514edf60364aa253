package main

import (
	"fmt"
	"strings"

	"career-match/internal/repository"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog size and embedding coverage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		st, err := repository.NewPostgresJobPostingRepository(e.db).Stats(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "postings:        %d\n", st.Total)
		fmt.Fprintf(out, "with embedding:  %d\n", st.WithEmbedding)
		fmt.Fprintf(out, "spaces:          %s\n", strings.Join(st.EmbeddingSpace, ", "))
		if len(st.EmbeddingSpace) > 1 {
			fmt.Fprintf(out, "configured:      %s (only this space is ranked)\n", e.cfg.Matching.EmbeddingSpace)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
