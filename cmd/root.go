package cmd

import (
	"log"

	"github.com/spigell/skillmatch/internal/ai/gemini"
	"github.com/spigell/skillmatch/internal/graph"
	"github.com/spigell/skillmatch/internal/scoring"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "skillmatch"
)

type Config struct {
	Matching *MatchingConfig `mapstructure:"matching"`
	Scoring  *scoring.Config `mapstructure:"scoring"`
	Graph    *GraphConfig    `mapstructure:"graph"`
	Ranking  *RankingConfig  `mapstructure:"ranking"`
	Filters  *FiltersConfig  `mapstructure:"filters"`
	Records  *RecordsConfig  `mapstructure:"records"`
	Job      *JobConfig      `mapstructure:"job"`
	AI       *AIConfig       `mapstructure:"ai"`
}

type MatchingConfig struct {
	FuzzyThreshold float64 `mapstructure:"fuzzy-threshold"`
	ExpandDepth    int     `mapstructure:"expand-depth"`
	ExpandQuery    bool    `mapstructure:"expand-query"`
}

type GraphConfig struct {
	ExtraEdges graph.Edges `mapstructure:"extra-edges"`
}

type RankingConfig struct {
	Workers      int     `mapstructure:"workers"`
	MinimumScore float64 `mapstructure:"minimum-score"`
	Limit        int     `mapstructure:"limit"`
}

type FiltersConfig struct {
	Experience    string `mapstructure:"experience"`
	CPDLevel      int    `mapstructure:"cpd-level"`
	ExcludeFile   string `mapstructure:"exclude-file"`
	RequireSkills bool   `mapstructure:"require-skills"`
}

type RecordsConfig struct {
	Source     string `mapstructure:"source"`
	Path       string `mapstructure:"path"`
	URL        string `mapstructure:"url"`
	TokenFile  string `mapstructure:"token-file"`
	SQLitePath string `mapstructure:"sqlite-path"`
	UserAgent  string `mapstructure:"user-agent"`
}

type JobConfig struct {
	File string `mapstructure:"file"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile    string `mapstructure:"api-key-file"`
	gemini.Config `mapstructure:",squash"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skillmatch matches candidate skills against job requirements and ranks candidates",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("records.token-file", "SKILLMATCH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding SKILLMATCH_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skillmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Only rank requires a config file. The other commands read one if it exists.
	required := rankCmd.CalledAs() != ""

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		required = true
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && !required {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	config.fillSections()

	return config, nil
}

// fillSections replaces absent sections with zero values so callers do not
// need nil checks. Zero values mean package defaults.
func (c *Config) fillSections() {
	if c.Matching == nil {
		c.Matching = &MatchingConfig{}
	}
	if c.Scoring == nil {
		d := scoring.DefaultConfig()
		c.Scoring = &d
	}
	if c.Graph == nil {
		c.Graph = &GraphConfig{}
	}
	if c.Ranking == nil {
		c.Ranking = &RankingConfig{}
	}
	if c.Filters == nil {
		c.Filters = &FiltersConfig{}
	}
	if c.Records == nil {
		c.Records = &RecordsConfig{}
	}
	if c.Job == nil {
		c.Job = &JobConfig{}
	}
	if c.AI == nil {
		c.AI = &AIConfig{}
	}
	if c.AI.Gemini == nil {
		c.AI.Gemini = &GeminiConfig{}
	}
}
