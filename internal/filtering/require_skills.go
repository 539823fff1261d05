package filtering

import (
	"context"

	"github.com/spigell/skillmatch/internal/records"
	"github.com/spigell/skillmatch/internal/skills"
)

type requireSkillsFilter struct {
	toggle
	cleaner *skills.Cleaner
}

// NewRequireSkills creates a filter that drops candidates without a single
// usable skill after cleaning.
func NewRequireSkills(enabled bool) Filter {
	f := &requireSkillsFilter{cleaner: skills.NewCleaner(nil)}
	if !enabled {
		f.Disable("not requested")
	}
	return f
}

func (f *requireSkillsFilter) Name() string { return "require_skills" }

func (f *requireSkillsFilter) Validate() error { return nil }

func (f *requireSkillsFilter) Apply(_ context.Context, c *records.Candidates) (*records.Candidates, Step, error) {
	initial := c.Len()
	removed := c.Filter(func(candidate *records.Candidate) bool {
		return f.cleaner.Clean(candidate.Skills).Len() > 0
	})
	return c, stepOf(initial, removed, c), nil
}

func (f *requireSkillsFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
