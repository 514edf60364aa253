package main

import (
	"fmt"
	"os"

	"career-match/internal/importer"
	"career-match/internal/infrastructure/embedding"
	"career-match/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Embed postings from a CSV file and upsert them into the catalog",
	Long: `Reads a CSV file with the columns title, description and optionally id,
company, required_skills and required_knowledge. Requirement columns hold JSON
objects mapping names to levels, e.g. {"SQL":"Advanced"}.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().Bool("dry-run", false, "parse the file and report without embedding or storing")
	importCmd.Flags().IntP("workers", "w", 4, "concurrent embedding calls")
	importCmd.Flags().Int("rps", 5, "maximum embedding calls per second, 0 for unlimited")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	postings, err := importer.ParseCSV(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		fmt.Fprintf(cmd.OutOrStdout(), "%d postings parsed\n", len(postings))
		return nil
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	emb, err := embedding.NewGemini(cmd.Context(), e.cfg.Gemini, e.cfg.Matching.EmbeddingSpace, e.log)
	if err != nil {
		return err
	}

	workers, _ := cmd.Flags().GetInt("workers")
	rps, _ := cmd.Flags().GetInt("rps")
	im := importer.New(repository.NewPostgresJobPostingRepository(e.db), emb, importer.Options{Workers: workers, RPS: rps}, e.log)
	sum, err := im.Run(cmd.Context(), postings)
	if err != nil {
		return err
	}
	e.log.Info("import done", zap.String("file", args[0]), zap.Int("imported", sum.Imported), zap.Int("failed", sum.Failed))
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d, failed %d\n", sum.Imported, sum.Failed)
	return nil
}
