package main

import (
	"context"
	"fmt"
	"time"

	"career-match/internal/config"
	"career-match/internal/database"
	dbpostgres "career-match/internal/database/postgres"
	"career-match/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const app = "catalog"

var rootCmd = &cobra.Command{
	Use:          app,
	Short:        "catalog manages the job posting catalog used for matching",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
}

// env is what every subcommand needs: configuration, a logger and an open
// database. close releases the database and flushes the logger.
type env struct {
	cfg config.Config
	log *zap.Logger
	db  database.DB
}

func (e *env) close() {
	if e.db != nil {
		_ = e.db.Close()
	}
	_ = e.log.Sync()
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Debug = true
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		cfg.Log.JSON = true
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}
