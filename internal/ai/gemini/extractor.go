package gemini

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/skills"
	"github.com/spigell/skillmatch/internal/utils"
)

const (
	DefaultTopK = 30

	minDescriptionLength = 50
	maxPromptRunes       = 4000
)

//go:embed prompt.md
var promptTemplate string

var (
	listSplit = regexp.MustCompile(`[,;\n]`)
	fenceLine = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*\\s*$")
)

type generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Extractor asks Gemini for the skills of a job description and keeps only
// those that actually occur in the description.
type Extractor struct {
	generator    generator
	dict         *skills.Dictionary
	classifier   *skills.Classifier
	topK         int
	maxLogLength int
	logger       *zap.Logger
}

func NewExtractor(g generator, topK, maxLogLength int, logger *zap.Logger) *Extractor {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if maxLogLength <= 0 {
		maxLogLength = DefaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dict := skills.DefaultDictionary()
	return &Extractor{
		generator:    g,
		dict:         dict,
		classifier:   skills.NewClassifier(dict),
		topK:         topK,
		maxLogLength: maxLogLength,
		logger:       logger,
	}
}

// ExtractSkills returns at most topK lowercase skill phrases. Descriptions
// shorter than 50 characters yield no skills and no model call.
func (e *Extractor) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < minDescriptionLength {
		return []string{}, nil
	}

	raw, err := e.generator.GenerateContent(ctx, buildPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("extract skills: %w", err)
	}

	e.logger.Debug("extractor raw response", zap.String("response", utils.TruncateForLog(raw, e.maxLogLength)))

	return e.filter(raw, text), nil
}

func (e *Extractor) filter(raw, text string) []string {
	lowerText := strings.ToLower(text)
	seen := make(map[string]struct{})
	out := make([]string, 0, e.topK)

	for _, item := range listSplit.Split(fenceLine.ReplaceAllString(raw, ""), -1) {
		skill := strings.ToLower(skills.StripBullet(strings.Trim(item, " \t*\"'`")))
		if skill == "" {
			continue
		}

		words := strings.Fields(skill)
		if e.dict.IsStopword(skill) || e.dict.IsStopword(words[0]) {
			e.logger.Debug("dropping stopword phrase", zap.String("skill", skill))
			continue
		}
		if !strings.Contains(lowerText, skill) {
			e.logger.Debug("dropping skill absent from text", zap.String("skill", skill))
			continue
		}
		if !e.classifier.LooksLikeTech(skill) {
			e.logger.Debug("dropping non technical phrase", zap.String("skill", skill))
			continue
		}

		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		out = append(out, skill)

		if len(out) == e.topK {
			break
		}
	}

	return out
}

func buildPrompt(text string) string {
	if runes := []rune(text); len(runes) > maxPromptRunes {
		text = string(runes[:maxPromptRunes])
	}
	return strings.ReplaceAll(promptTemplate, "{{JD_TEXT}}", text)
}
