package ai

import (
	"context"
	"errors"

	"github.com/spigell/skillmatch/internal/skills"
)

// ErrDisabled is returned by collaborators when AI support is switched off.
var ErrDisabled = errors.New("ai is disabled")

// Extractor pulls skill phrases out of free text such as a job description.
type Extractor interface {
	ExtractSkills(ctx context.Context, text string) ([]string, error)
}

// Embedder turns text into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Disabled satisfies Extractor and Embedder and always returns ErrDisabled.
type Disabled struct{}

func (Disabled) ExtractSkills(context.Context, string) ([]string, error) {
	return nil, ErrDisabled
}

func (Disabled) Embed(context.Context, string) ([]float32, error) {
	return nil, ErrDisabled
}

// KeywordExtractor finds skills by dictionary lookup, without any model.
type KeywordExtractor struct {
	dict    *skills.Dictionary
	cleaner *skills.Cleaner
}

func NewKeywordExtractor(dict *skills.Dictionary) *KeywordExtractor {
	if dict == nil {
		dict = skills.DefaultDictionary()
	}
	return &KeywordExtractor{dict: dict, cleaner: skills.NewCleaner(dict)}
}

func (e *KeywordExtractor) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.cleaner.Clean(e.dict.Extract(text)).Display(), nil
}
