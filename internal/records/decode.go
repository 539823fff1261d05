package records

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/skills"
)

// fieldAliases maps payload keys used by older exports onto Candidate tags.
var fieldAliases = map[string]string{
	"candidate_name":   "name",
	"s3_url":           "url",
	"experience":       "experience_years",
	"years_experience": "experience_years",
	"skill":            "skills",
	"text":             "resume_text",
}

// DecodeCandidates decodes loosely typed records. Records that cannot be
// decoded at all or carry no id are skipped, fields that do not coerce are
// left at their zero value. Both cases are logged as warnings.
func DecodeCandidates(items []any, logger *zap.Logger) *Candidates {
	if logger == nil {
		logger = zap.NewNop()
	}

	out := &Candidates{Items: make([]*Candidate, 0, len(items))}
	for i, item := range items {
		candidate, defaulted, err := DecodeCandidate(item)
		if err != nil {
			logger.Warn("skipping record", zap.Int("record", i), zap.Error(err))
			continue
		}
		if len(defaulted) > 0 {
			logger.Warn("record fields defaulted",
				zap.Int("record", i),
				zap.String("candidate_id", candidate.ID),
				zap.Strings("fields", defaulted),
			)
		}
		out.Items = append(out.Items, candidate)
	}
	return out
}

// DecodeCandidate decodes one record. Keys whose values do not coerce into
// their field are dropped and returned in defaulted. Only a record that is not
// an object or has no id is an error.
func DecodeCandidate(item any) (candidate *Candidate, defaulted []string, err error) {
	m, ok := withAliases(item).(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("record is %T, not an object", item)
	}

	var c Candidate
	c, defaulted = decodeLenient[Candidate](m)
	if strings.TrimSpace(c.ID) == "" {
		return nil, defaulted, fmt.Errorf("candidate id is empty")
	}

	c.normalize()
	return &c, defaulted, nil
}

// decodeLenient decodes m into a T. When the whole map does not decode every
// key is tried on its own and the failing ones are left out.
func decodeLenient[T any](m map[string]any) (T, []string) {
	var out T
	if err := decode(m, &out); err == nil {
		return out, nil
	}

	kept := make(map[string]any, len(m))
	var defaulted []string
	for _, key := range slices.Sorted(maps.Keys(m)) {
		var single T
		if err := decode(map[string]any{key: m[key]}, &single); err != nil {
			defaulted = append(defaulted, key)
			continue
		}
		kept[key] = m[key]
	}

	out = *new(T)
	if err := decode(kept, &out); err != nil {
		return *new(T), slices.Sorted(maps.Keys(m))
	}
	return out, defaulted
}

func DecodeJob(item any) (*Job, error) {
	var job Job
	if err := decode(item, &job); err != nil {
		return nil, err
	}
	if job.RequiredSkills == nil {
		job.RequiredSkills = []string{}
	}
	if job.RequiredExperience < 0 {
		job.RequiredExperience = 0
	}
	return &job, nil
}

func (c *Candidate) normalize() {
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.ExperienceYears < 0 {
		c.ExperienceYears = 0
	}
	if c.CPDLevel == 0 {
		c.CPDLevel = CPDLevel(c.ExperienceYears)
	}
	c.CPDLevel = clampCPD(c.CPDLevel)
}

func decode(input, result any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       skillListHook,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// skillListHook accepts a skill list given as a delimited string or as a list
// mixing strings with other values.
func skillListHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf([]string{}) {
		return data, nil
	}

	switch v := data.(type) {
	case string:
		return skills.SplitList([]string{v}), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return trimAll(out), nil
	}
	return data, nil
}

func withAliases(item any) any {
	m, ok := item.(map[string]any)
	if !ok {
		return item
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	for alias, key := range fieldAliases {
		v, found := out[alias]
		if !found {
			continue
		}
		delete(out, alias)
		if _, taken := out[key]; !taken {
			out[key] = v
		}
	}
	return out
}
