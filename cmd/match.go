package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spigell/skillmatch/internal/skills"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match candidate skills against required skills and print the result as JSON",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("candidate", "c", "", "comma separated candidate skills")
	matchCmd.Flags().StringP("required", "r", "", "comma separated required skills")
	matchCmd.Flags().StringP("query", "q", "", "free text query expanded through the skill graph instead of --required")
	matchCmd.Flags().Int("depth", 0, "graph depth for --query (default from matching.expand-depth)")
	matchCmd.MarkFlagRequired("candidate")
}

func match(cmd *cobra.Command) {
	logger, config := setup()

	candidate := skills.NewSkillSet(splitFlag(cmd.Flag("candidate").Value.String()))
	matcher := buildMatcher(config, buildGraph(config))

	query := cmd.Flag("query").Value.String()
	required := cmd.Flag("required").Value.String()
	if query == "" && required == "" {
		logger.Fatal("either --required or --query is required")
	}

	var result any
	if query != "" {
		depth, _ := cmd.Flags().GetInt("depth")
		result = matcher.MatchQuery(candidate, query, depth)
	} else {
		result = matcher.Match(candidate, skills.NewSkillSet(splitFlag(required)))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Fatal("printing the result", zap.Error(err))
	}
}

// splitFlag splits a comma or semicolon separated flag value.
func splitFlag(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return skills.SplitList([]string{v})
}
