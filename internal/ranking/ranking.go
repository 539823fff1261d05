package ranking

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/skillmatch/internal/ai"
	"github.com/spigell/skillmatch/internal/graph"
	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/matching"
	"github.com/spigell/skillmatch/internal/records"
	"github.com/spigell/skillmatch/internal/scoring"
	"github.com/spigell/skillmatch/internal/skills"
)

const DefaultWorkers = 8

// Similarity sources reported per candidate.
const (
	SimilarityStored    = "stored"
	SimilarityVector    = "vector"
	SimilarityEmbedding = "embedding"
	SimilarityNone      = "none"
)

type Options struct {
	Workers int `mapstructure:"workers" json:"workers"`
	// ExpandQuery adds graph neighbours of the required skills to the
	// requirement before matching.
	ExpandQuery bool `mapstructure:"expand-query" json:"expand_query"`
	ExpandDepth int  `mapstructure:"expand-depth" json:"expand_depth"`
}

// Engine ranks a candidate pool against one job.
type Engine struct {
	matcher   *matching.Matcher
	graph     *graph.Graph
	scorer    *scoring.Scorer
	cleaner   *skills.Cleaner
	dict      *skills.Dictionary
	extractor ai.Extractor
	embedder  ai.Embedder
	opts      Options
	logger    *zap.Logger
}

// Deps are the collaborators of an Engine. Matcher, Graph and Scorer fall
// back to their defaults when nil. Extractor is used only for a job without
// required skills, Embedder only when no stored similarity or vectors exist.
type Deps struct {
	Matcher   *matching.Matcher
	Graph     *graph.Graph
	Scorer    *scoring.Scorer
	Extractor ai.Extractor
	Embedder  ai.Embedder
	Logger    *zap.Logger
}

func New(deps Deps, opts Options) (*Engine, error) {
	if deps.Graph == nil {
		deps.Graph = graph.Default()
	}
	if deps.Matcher == nil {
		deps.Matcher = matching.New(deps.Graph, matching.Options{ExpandDepth: opts.ExpandDepth})
	}
	if deps.Scorer == nil {
		s, err := scoring.New(scoring.DefaultConfig())
		if err != nil {
			return nil, err
		}
		deps.Scorer = s
	}
	if deps.Extractor == nil {
		deps.Extractor = ai.Disabled{}
	}
	if deps.Embedder == nil {
		deps.Embedder = ai.Disabled{}
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.ExpandDepth <= 0 {
		opts.ExpandDepth = graph.DefaultDepth
	}

	dict := skills.DefaultDictionary()
	return &Engine{
		matcher:   deps.Matcher,
		graph:     deps.Graph,
		scorer:    deps.Scorer,
		cleaner:   skills.NewCleaner(dict),
		dict:      dict,
		extractor: deps.Extractor,
		embedder:  deps.Embedder,
		opts:      opts,
		logger:    logger.WithFields(deps.Logger),
	}, nil
}

// Rank scores every candidate against job. Candidates are processed
// concurrently with at most Workers in flight; a cancelled context aborts the
// run. Per candidate failures only degrade that candidate's similarity.
func (e *Engine) Rank(ctx context.Context, job *records.Job, c *records.Candidates) (*Results, error) {
	if job == nil {
		return nil, errors.New("job is required")
	}
	if c == nil {
		c = &records.Candidates{}
	}

	runID := uuid.NewString()
	log := logger.WithRunFields(e.logger, runID, job.ID)

	required, err := e.requiredSkills(ctx, job, log)
	if err != nil {
		return nil, err
	}
	jobVector := e.jobVector(ctx, job, log)

	log.Info("ranking candidates",
		zap.Int("candidates", c.Len()),
		zap.Int("required_skills", required.Len()),
		zap.Bool("job_vector", len(jobVector) > 0),
		zap.Int("workers", e.opts.Workers),
	)

	items := make([]Ranked, c.Len())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, candidate := range c.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = e.rankOne(gctx, candidate, required, jobVector, job.RequiredExperience, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Score.FinalPercentage != b.Score.FinalPercentage {
			return a.Score.FinalPercentage > b.Score.FinalPercentage
		}
		if a.Match.MatchPercentage != b.Match.MatchPercentage {
			return a.Match.MatchPercentage > b.Match.MatchPercentage
		}
		return a.Candidate.ID < b.Candidate.ID
	})

	return &Results{
		RunID:    runID,
		Job:      job,
		Required: required.Display(),
		Items:    items,
	}, nil
}

func (e *Engine) requiredSkills(ctx context.Context, job *records.Job, log *zap.Logger) (skills.SkillSet, error) {
	raw := job.RequiredSkills
	if len(raw) == 0 && job.Description != "" {
		extracted, err := e.extractor.ExtractSkills(ctx, job.Description)
		switch {
		case errors.Is(err, ai.ErrDisabled):
			extracted = e.dict.Extract(job.Description)
		case err != nil:
			if ctx.Err() != nil {
				return skills.SkillSet{}, ctx.Err()
			}
			log.Warn("extracting job skills failed, using dictionary", zap.Error(err))
			extracted = e.dict.Extract(job.Description)
		}
		log.Info("required skills taken from description", zap.Strings("skills", extracted))
		raw = extracted
	}

	required := e.cleaner.Clean(raw)
	if e.opts.ExpandQuery && required.Len() > 0 {
		expanded := e.graph.ExpandAll(required.Canonical(), e.opts.ExpandDepth)
		required = required.Union(skills.NewSkillSet(expanded))
		log.Debug("required skills expanded", zap.Strings("skills", required.Canonical()))
	}
	return required, nil
}

func (e *Engine) jobVector(ctx context.Context, job *records.Job, log *zap.Logger) []float32 {
	if len(job.Vector) > 0 {
		return job.Vector
	}
	if job.Description == "" {
		return nil
	}

	v, err := e.embedder.Embed(ctx, job.Description)
	if err != nil {
		if !errors.Is(err, ai.ErrDisabled) {
			log.Warn("embedding job description failed", zap.Error(err))
		}
		return nil
	}
	return v
}

func (e *Engine) rankOne(ctx context.Context, c *records.Candidate, required skills.SkillSet, jobVector []float32, requiredYears int, log *zap.Logger) Ranked {
	clog := log.With(logger.CandidateField(c.ID))

	candidateSkills := e.cleaner.Clean(c.Skills)
	if candidateSkills.Len() == 0 && c.ResumeText != "" {
		candidateSkills = e.cleaner.Clean(e.dict.Extract(c.ResumeText))
	}

	match := e.matcher.Match(candidateSkills, required)
	similarity, source := e.similarity(ctx, c, jobVector, clog)
	score := e.scorer.Score(match.Ratio(), similarity, c.ExperienceYears, requiredYears)

	clog.Debug("candidate scored",
		zap.Float64("match_percentage", match.MatchPercentage),
		zap.Float64("similarity", similarity),
		zap.String("similarity_source", source),
		zap.Float64("final_percentage", score.FinalPercentage),
	)

	return Ranked{
		Candidate:        c,
		Skills:           candidateSkills.Display(),
		Match:            match,
		Similarity:       similarity,
		SimilaritySource: source,
		Score:            score,
	}
}

func (e *Engine) similarity(ctx context.Context, c *records.Candidate, jobVector []float32, log *zap.Logger) (float64, string) {
	if c.Similarity != nil {
		return scoring.Clamp01(*c.Similarity), SimilarityStored
	}
	if len(jobVector) == 0 {
		return 0, SimilarityNone
	}
	if len(c.Vector) > 0 {
		return scoring.Clamp01(scoring.CosineSimilarity(jobVector, c.Vector)), SimilarityVector
	}
	if c.ResumeText == "" {
		return 0, SimilarityNone
	}

	v, err := e.embedder.Embed(ctx, c.ResumeText)
	if err != nil {
		if !errors.Is(err, ai.ErrDisabled) && ctx.Err() == nil {
			log.Warn("embedding resume failed", zap.Error(err))
		}
		return 0, SimilarityNone
	}
	if len(v) == 0 {
		return 0, SimilarityNone
	}
	return scoring.Clamp01(scoring.CosineSimilarity(jobVector, v)), SimilarityEmbedding
}

// Describe is a one line summary of the engine settings for logs.
func (e *Engine) Describe() string {
	cfg := e.scorer.Config()
	return fmt.Sprintf("scheme=%s workers=%d expand=%t depth=%d", cfg.Scheme, e.opts.Workers, e.opts.ExpandQuery, e.opts.ExpandDepth)
}
