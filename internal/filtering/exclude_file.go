package filtering

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/skillmatch/internal/records"
)

type excludeFileFilter struct {
	toggle
	path string
}

// NewExcludeFile creates a filter that removes candidates listed in an exclude file.
func NewExcludeFile(path string) Filter {
	return &excludeFileFilter{
		path: strings.TrimSpace(path),
	}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate() error { return nil }

func (f *excludeFileFilter) Apply(_ context.Context, c *records.Candidates) (*records.Candidates, Step, error) {
	initial := c.Len()
	if f.path == "" {
		return c, stepOf(initial, nil, c), nil
	}

	excluded, err := records.LoadExcluded(f.path)
	if err != nil {
		return c, Step{}, fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	removed := c.Exclude(records.CandidateIDField, excluded.IDs())

	return c, stepOf(initial, removed, c), nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
