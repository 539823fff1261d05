package cmd

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/graph"
	"github.com/spigell/skillmatch/internal/scoring"
)

func TestOpenSource(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name    string
		config  RecordsConfig
		want    string
		wantErr bool
	}{
		{name: "default file", config: RecordsConfig{Path: "candidates.json"}, want: sourceFile},
		{name: "file without path", config: RecordsConfig{Source: "file"}, wantErr: true},
		{name: "http", config: RecordsConfig{Source: "HTTP", URL: "http://localhost/candidates"}, want: sourceHTTP},
		{name: "http without url", config: RecordsConfig{Source: "http"}, wantErr: true},
		{name: "http with missing token file", config: RecordsConfig{Source: "http", URL: "http://localhost", TokenFile: "/nonexistent/token"}, wantErr: true},
		{name: "sqlite", config: RecordsConfig{Source: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "store.db")}, want: sourceSQLite},
		{name: "sqlite without path", config: RecordsConfig{Source: "sqlite"}, wantErr: true},
		{name: "unknown", config: RecordsConfig{Source: "ftp"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, closeSource, err := openSource(&tt.config, logger)
			defer closeSource()

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if src.Name() != tt.want {
				t.Fatalf("expected %s source, got %s", tt.want, src.Name())
			}
		})
	}
}

func TestFillSections(t *testing.T) {
	config := &Config{}
	config.fillSections()

	if config.Matching == nil || config.Graph == nil || config.Ranking == nil || config.Filters == nil ||
		config.Records == nil || config.Job == nil || config.AI == nil || config.AI.Gemini == nil {
		t.Fatalf("expected every section to be set: %+v", config)
	}
	if !reflect.DeepEqual(*config.Scoring, scoring.DefaultConfig()) {
		t.Fatalf("expected default scoring, got %+v", config.Scoring)
	}
}

func TestScoringZeroFromYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	yaml := "scoring:\n  scheme: B\n  experience-weight: 0\n"
	if err := v.ReadConfig(strings.NewReader(yaml)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	config.fillSections()

	scorer, err := scoring.New(*config.Scoring)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := scorer.ExperienceWeight(); got != 0 {
		t.Fatalf("expected experience weight 0, got %v", got)
	}
	if got := *scorer.Config().PenaltyPerYear; got != scoring.DefaultPenaltyPerYear {
		t.Fatalf("expected default penalty, got %v", got)
	}
}

func TestBuildGraphExtraEdges(t *testing.T) {
	config := &Config{}
	config.fillSections()

	if buildGraph(config) != graph.Default() {
		t.Fatalf("expected the default graph without extra edges")
	}

	config.Graph.ExtraEdges = graph.Edges{"Elixir": {"Phoenix": 3}}
	g := buildGraph(config)
	if w, ok := g.Weight("phoenix", "elixir"); !ok || w != 3 {
		t.Fatalf("expected extra edge with weight 3, got %d %t", w, ok)
	}
	if _, ok := g.Weight("django", "python"); !ok {
		t.Fatalf("expected curated edges to be kept")
	}
}

func TestSplitFlag(t *testing.T) {
	if got := splitFlag("  "); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := splitFlag("Python, Django;python"); !reflect.DeepEqual(got, []string{"Python", "Django"}) {
		t.Fatalf("unexpected split: %v", got)
	}
}
