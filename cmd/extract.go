package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spigell/skillmatch/internal/ai"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract required skills from a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		extract(cmd)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("file", "f", "", "job description text file, stdin when unset")
}

func extract(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	text, err := readText(cmd.Flag("file").Value.String())
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	var extractor ai.Extractor = ai.NewKeywordExtractor(nil)
	if config.AI.Enabled {
		extractor, _, err = aiCollaborators(ctx, config.AI, logger)
		if err != nil {
			logger.Fatal("building gemini extractor", zap.Error(err))
		}
	}

	found, err := extractor.ExtractSkills(ctx, text)
	if err != nil {
		logger.Fatal("extracting skills", zap.Error(err))
	}

	logger.Info("extracted skills", zap.Int("count", len(found)), zap.Bool("ai", config.AI.Enabled))
	for _, s := range found {
		fmt.Println(s)
	}
}

func readText(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
