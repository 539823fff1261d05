package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/spigell/skillmatch/internal/graph"
	"github.com/spigell/skillmatch/internal/skills"
)

// DefaultFuzzyThreshold is the minimum Ratio for the fuzzy strategy.
const DefaultFuzzyThreshold = 0.78

// Strategy names the rule that satisfied a required skill.
type Strategy string

const (
	StrategyExact     Strategy = "exact"
	StrategySubstring Strategy = "substring"
	StrategyMultiWord Strategy = "multi_word"
	StrategyFuzzy     Strategy = "fuzzy"
	StrategyNone      Strategy = "none"
)

// Options tune the matcher. Zero values fall back to the defaults.
type Options struct {
	FuzzyThreshold float64
	// ExpandDepth is the graph depth used by MatchQuery.
	ExpandDepth int
}

// Decision records how one required skill was decided.
type Decision struct {
	Skill    string   `json:"skill"`
	Strategy Strategy `json:"strategy"`
	// Against is the candidate skill that satisfied the requirement, empty
	// for multi-word matches spanning several skills and for misses.
	Against string  `json:"against,omitempty"`
	Score   float64 `json:"score,omitempty"`
}

// Result is the outcome of matching required skills against a candidate.
// Matched and Missing hold normalized tokens sorted lexicographically.
type Result struct {
	Matched         []string   `json:"matched"`
	Missing         []string   `json:"missing"`
	MatchCount      int        `json:"match_count"`
	TotalRequired   int        `json:"total_required"`
	MatchPercentage float64    `json:"match_percentage"`
	Decisions       []Decision `json:"decisions,omitempty"`
}

// Ratio returns the matched fraction in [0, 1], 0 when nothing is required.
func (r Result) Ratio() float64 {
	if r.TotalRequired == 0 {
		return 0
	}
	return float64(r.MatchCount) / float64(r.TotalRequired)
}

// Matcher decides which required skills a candidate satisfies. It holds no
// per-call state and may be shared between goroutines.
type Matcher struct {
	graph      *graph.Graph
	classifier *skills.Classifier
	threshold  float64
	depth      int
}

// New returns a matcher that expands queries through g, or through the
// default graph when g is nil.
func New(g *graph.Graph, opts Options) *Matcher {
	if g == nil {
		g = graph.Default()
	}
	if opts.FuzzyThreshold <= 0 || opts.FuzzyThreshold > 1 {
		opts.FuzzyThreshold = DefaultFuzzyThreshold
	}
	if opts.ExpandDepth <= 0 {
		opts.ExpandDepth = graph.DefaultDepth
	}

	return &Matcher{
		graph:      g,
		classifier: skills.NewClassifier(nil),
		threshold:  opts.FuzzyThreshold,
		depth:      opts.ExpandDepth,
	}
}

// Match checks every required skill against the candidate skills. Strategies
// are tried in order: exact, substring in either direction, multi-word
// decomposition, fuzzy ratio. The first one that succeeds wins.
func (m *Matcher) Match(candidate, required skills.SkillSet) Result {
	cand := candidate.Canonical()
	req := required.Canonical()

	index := make(map[string]struct{}, len(cand))
	words := make([]string, 0, len(cand))
	for _, c := range cand {
		index[c] = struct{}{}
		words = append(words, strings.Fields(c)...)
	}

	res := Result{
		Matched:       []string{},
		Missing:       []string{},
		TotalRequired: len(req),
		Decisions:     make([]Decision, 0, len(req)),
	}

	for _, r := range req {
		d := m.decide(r, cand, index, words)
		if d.Strategy == StrategyNone {
			res.Missing = append(res.Missing, r)
		} else {
			res.Matched = append(res.Matched, r)
		}
		res.Decisions = append(res.Decisions, d)
	}

	sort.Strings(res.Matched)
	sort.Strings(res.Missing)
	sort.Slice(res.Decisions, func(i, j int) bool { return res.Decisions[i].Skill < res.Decisions[j].Skill })

	res.MatchCount = len(res.Matched)
	if res.TotalRequired > 0 {
		res.MatchPercentage = round2(100 * float64(res.MatchCount) / float64(res.TotalRequired))
	}

	return res
}

// MatchRaw builds skill sets from raw strings and matches them.
func (m *Matcher) MatchRaw(candidate, required []string) Result {
	return m.Match(skills.NewSkillSet(candidate), skills.NewSkillSet(required))
}

// MatchQuery extracts keywords from a free-text query, keeps those that look
// like skills, expands them through the graph and matches the expansion
// against the candidate. depth <= 0 uses the matcher's configured depth.
func (m *Matcher) MatchQuery(candidate skills.SkillSet, query string, depth int) Result {
	return m.Match(candidate, m.ExpandQuery(query, depth))
}

// ExpandQuery returns the skill set a free-text query stands for.
func (m *Matcher) ExpandQuery(query string, depth int) skills.SkillSet {
	if depth <= 0 {
		depth = m.depth
	}

	keywords := make([]string, 0)
	for _, kw := range skills.Keywords(query) {
		if m.classifier.LooksLikeTech(kw) {
			keywords = append(keywords, kw)
		}
	}

	return skills.NewSkillSet(m.graph.ExpandAll(keywords, depth))
}

func (m *Matcher) decide(r string, cand []string, index map[string]struct{}, words []string) Decision {
	if _, ok := index[r]; ok {
		return Decision{Skill: r, Strategy: StrategyExact, Against: r}
	}

	for _, c := range cand {
		if strings.Contains(c, r) || strings.Contains(r, c) {
			return Decision{Skill: r, Strategy: StrategySubstring, Against: c}
		}
	}

	if parts := strings.Fields(r); len(parts) >= 2 && len(words) > 0 && allPartsMatch(parts, words) {
		return Decision{Skill: r, Strategy: StrategyMultiWord}
	}

	best, bestScore := "", 0.0
	for _, c := range cand {
		if score := Ratio(r, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	if best != "" && bestScore >= m.threshold {
		return Decision{Skill: r, Strategy: StrategyFuzzy, Against: best, Score: round2(bestScore)}
	}

	return Decision{Skill: r, Strategy: StrategyNone}
}

func allPartsMatch(parts, words []string) bool {
	for _, p := range parts {
		found := false
		for _, w := range words {
			if strings.Contains(w, p) || strings.Contains(p, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
