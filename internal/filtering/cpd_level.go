package filtering

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigell/skillmatch/internal/records"
)

type cpdLevelFilter struct {
	toggle
	level int
}

// NewCPDLevel creates a filter that keeps candidates on one career level.
// Level 0 keeps everyone.
func NewCPDLevel(level int) Filter {
	return &cpdLevelFilter{level: level}
}

func (f *cpdLevelFilter) Name() string { return "cpd_level" }

func (f *cpdLevelFilter) Validate() error {
	if f.level < 0 || f.level > records.MaxCPDLevel {
		return fmt.Errorf("cpd level %d is out of range", f.level)
	}
	return nil
}

func (f *cpdLevelFilter) Apply(_ context.Context, c *records.Candidates) (*records.Candidates, Step, error) {
	initial := c.Len()
	if f.level == 0 {
		return c, stepOf(initial, nil, c), nil
	}

	removed := c.Filter(func(candidate *records.Candidate) bool {
		return candidate.CPDLevel == f.level
	})

	return c, stepOf(initial, removed, c), nil
}

func (f *cpdLevelFilter) Status() Status {
	details := map[string]string{}
	if f.level != 0 {
		details["level"] = strconv.Itoa(f.level)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
