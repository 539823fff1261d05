package cmd

import (
	"context"

	"github.com/spigell/skillmatch/internal/records"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Seed the sqlite candidate store from a records file",
	Run: func(cmd *cobra.Command, _ []string) {
		importRecords(cmd)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("from", "", "candidates file (json or yaml)")
	importCmd.Flags().String("to", "", "sqlite database path (default from records.sqlite-path)")
	importCmd.Flags().Bool("prune", false, "delete stored candidates that are absent from the file")
	importCmd.MarkFlagRequired("from")
}

func importRecords(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	target := cmd.Flag("to").Value.String()
	if target == "" {
		target = config.Records.SQLitePath
	}
	if target == "" {
		logger.Fatal("sqlite path is required", zap.String("hint", "pass --to or set records.sqlite-path"))
	}

	candidates, err := records.NewFileSource(logger, cmd.Flag("from").Value.String()).Load(ctx)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}

	store, err := records.OpenSQLite(logger, target)
	if err != nil {
		logger.Fatal("opening sqlite store", zap.Error(err))
	}
	defer store.Close()

	changed, err := store.Upsert(ctx, candidates)
	if err != nil {
		logger.Fatal("importing candidates", zap.Error(err))
	}

	pruned := 0
	if prune, _ := cmd.Flags().GetBool("prune"); prune {
		pruned, err = store.Prune(ctx, candidates)
		if err != nil {
			logger.Fatal("pruning candidates", zap.Error(err))
		}
	}

	logger.Info("imported candidates",
		zap.String("database", target),
		zap.Int("read", candidates.Len()),
		zap.Int("changed", changed),
		zap.Int("pruned", pruned),
	)
}
