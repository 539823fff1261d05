package filtering

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/skillmatch/internal/records"
)

// AnyExperience disables the experience filter.
const AnyExperience = "Any"

type yearsRange struct {
	min int
	// max < 0 leaves the range open.
	max int
}

var experienceRanges = map[string]yearsRange{
	"0-2":  {min: 0, max: 2},
	"3-5":  {min: 3, max: 5},
	"6-10": {min: 6, max: 10},
	"10+":  {min: 10, max: -1},
}

func (r yearsRange) contains(years int) bool {
	return years >= r.min && (r.max < 0 || years <= r.max)
}

type experienceFilter struct {
	toggle
	raw string
}

// NewExperienceRange creates a filter that keeps candidates whose experience
// falls into one of the ranges "0-2", "3-5", "6-10" or "10+". Bounds are
// inclusive. An empty range or "Any" keeps everyone.
func NewExperienceRange(r string) Filter {
	return &experienceFilter{raw: strings.TrimSpace(r)}
}

func (f *experienceFilter) Name() string { return "experience" }

func (f *experienceFilter) anyRange() bool {
	return f.raw == "" || strings.EqualFold(f.raw, AnyExperience)
}

func (f *experienceFilter) Validate() error {
	if f.anyRange() {
		return nil
	}
	if _, ok := experienceRanges[f.raw]; !ok {
		return fmt.Errorf("unknown experience range %q", f.raw)
	}
	return nil
}

func (f *experienceFilter) Apply(_ context.Context, c *records.Candidates) (*records.Candidates, Step, error) {
	initial := c.Len()
	if f.anyRange() {
		return c, stepOf(initial, nil, c), nil
	}

	r, ok := experienceRanges[f.raw]
	if !ok {
		return c, Step{}, fmt.Errorf("unknown experience range %q", f.raw)
	}

	removed := c.Filter(func(candidate *records.Candidate) bool {
		return r.contains(candidate.ExperienceYears)
	})

	return c, stepOf(initial, removed, c), nil
}

func (f *experienceFilter) Status() Status {
	details := map[string]string{}
	if !f.anyRange() {
		details["range"] = f.raw
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
