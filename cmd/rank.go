package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spigell/skillmatch/internal/filtering"
	"github.com/spigell/skillmatch/internal/ranking"
	"github.com/spigell/skillmatch/internal/records"
	"github.com/spigell/skillmatch/internal/scoring"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowTable           = "Show ranking table"
	PromptAnalytics           = "Show candidate pool analytics"
	PromptResultsToFile       = "Dump ranking to file"
	PromptAppendToExcludeFile = "Append candidates below minimum score to exclude file"
	PromptExit                = "Exit"

	excludeReason = "below minimum score"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Next action?",
	Items: []string{PromptShowTable, PromptAnalytics, PromptResultsToFile, PromptAppendToExcludeFile, PromptExit},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidates against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().BoolP("yes", "y", false, "print the ranking table and exit without asking")
	rankCmd.Flags().StringP("job", "J", "", "job record file (json or yaml)")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")
	rankCmd.Flags().Float64("minimum-score", 0, "candidates scoring below are considered weak")
	rankCmd.Flags().Int("limit", 0, "show at most this many candidates, 0 is unlimited")

	viper.BindPFlag("job.file", rankCmd.Flags().Lookup("job"))
	viper.BindPFlag("filters.exclude-file", rankCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("ranking.minimum-score", rankCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("ranking.limit", rankCmd.Flags().Lookup("limit"))
}

// rank is the main command for the cli.
func rank(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := setup()

	logger.Info("starting the skillmatch", zap.String("version", version))

	if config.Job.File == "" {
		logger.Fatal("job file is required", zap.String("hint", "set job.file in the configuration file or pass --job"))
	}

	job, err := records.LoadJob(config.Job.File)
	if err != nil {
		logger.Fatal("loading the job", zap.Error(err))
	}

	source, closeSource, err := openSource(config.Records, logger)
	if err != nil {
		logger.Fatal("opening the records source", zap.Error(err))
	}
	defer closeSource()

	candidates, err := source.Load(ctx)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err), zap.String("source", source.Name()))
	}

	logger.Info("loaded candidates", zap.Int("count", candidates.Len()), zap.String("source", source.Name()))

	filtered, err := prepareFilters(config.Filters, logger).Run(ctx, candidates)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}
	candidates = filtered

	if candidates.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	engine, err := prepareEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the ranking engine", zap.Error(err))
	}

	logger.Debug("ranking engine", zap.String("settings", engine.Describe()))

	results, err := engine.Rank(ctx, job, candidates)
	if err != nil {
		logger.Fatal("ranking failed", zap.Error(err))
	}

	logger.Info("ranking done",
		zap.String("run_id", results.RunID),
		zap.Strings("required", results.Required),
		zap.Int("strong", len(results.Strong(config.Ranking.MinimumScore))),
	)

	autoApprove, _ := cmd.Flags().GetBool("yes")
	if autoApprove {
		if err := printTable(ranking.Top(results.Strong(config.Ranking.MinimumScore), config.Ranking.Limit)); err != nil {
			logger.Fatal("printing the ranking", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, config, candidates, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, candidates *records.Candidates, results *ranking.Results) error {
	switch action {
	case PromptShowTable:
		return printTable(ranking.Top(results.Strong(config.Ranking.MinimumScore), config.Ranking.Limit))
	case PromptAnalytics:
		pretty, _ := json.MarshalIndent(candidates.Analytics(records.DefaultTopSkills), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", candidates.Len()))
		return nil
	case PromptResultsToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(logger, config, results)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func appendToExcludeFile(logger *zap.Logger, config *Config, results *ranking.Results) error {
	excludeFile := config.Filters.ExcludeFile
	if excludeFile == "" {
		logger.Warn("exclude file is not configured", zap.String("hint", "set filters.exclude-file or pass --exclude-file"))
		return nil
	}

	weak := results.Below(config.Ranking.MinimumScore)
	if weak.Len() == 0 {
		logger.Info("nothing to exclude", zap.Float64("minimum_score", config.Ranking.MinimumScore))
		return nil
	}

	excluded, err := records.LoadExcluded(excludeFile)
	if err != nil {
		return err
	}

	excluded.Append(weak.ToExcluded(results.Job.ID, excludeReason))

	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Int("count", weak.Len()))
	return nil
}

func printTable(items []ranking.Ranked) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tNAME\tSCORE\tMATCH\tSIMILARITY\tMISSING")
	for i, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.2f%%\t%.2f (%s)\t%s\n",
			i+1,
			item.Candidate.ID,
			item.Candidate.Name,
			item.Score.FinalPercentage,
			item.Match.MatchPercentage,
			item.Similarity,
			item.SimilaritySource,
			strings.Join(item.Match.Missing, ", "),
		)
	}
	return w.Flush()
}

func prepareFilters(config *FiltersConfig, logger *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewExcludeFile(config.ExcludeFile),
		filtering.NewExperienceRange(config.Experience),
		filtering.NewCPDLevel(config.CPDLevel),
		filtering.NewRequireSkills(config.RequireSkills),
	}

	return filtering.New(steps, logger)
}

func prepareEngine(ctx context.Context, config *Config, logger *zap.Logger) (*ranking.Engine, error) {
	scorer, err := scoring.New(*config.Scoring)
	if err != nil {
		return nil, err
	}

	extractor, embedder, err := aiCollaborators(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("continuing without ai", zap.Error(err))
		extractor, embedder, _ = aiCollaborators(ctx, nil, logger)
	}

	g := buildGraph(config)

	return ranking.New(ranking.Deps{
		Matcher:   buildMatcher(config, g),
		Graph:     g,
		Scorer:    scorer,
		Extractor: extractor,
		Embedder:  embedder,
		Logger:    logger,
	}, ranking.Options{
		Workers:     config.Ranking.Workers,
		ExpandQuery: config.Matching.ExpandQuery,
		ExpandDepth: config.Matching.ExpandDepth,
	})
}
