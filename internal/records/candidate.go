package records

import (
	"encoding/json"
	"os"
	"strings"
)

const (
	CandidateIDField   = "ID"
	CandidateNameField = "Name"
)

// Candidate is one stored résumé record.
type Candidate struct {
	ID              string   `json:"id"`
	Name            string   `json:"name,omitempty"`
	Email           string   `json:"email,omitempty"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	CPDLevel        int      `json:"cpd_level,omitempty"`
	// Similarity is a precomputed semantic similarity against the current job,
	// nil when the store has none.
	Similarity *float64  `json:"similarity,omitempty"`
	Vector     []float32 `json:"vector,omitempty"`
	ResumeText string    `json:"resume_text,omitempty"`
	URL        string    `json:"url,omitempty"`
}

type Candidates struct {
	Items []*Candidate `json:"items"`
}

func (c *Candidate) GetStringField(name string) string {
	switch name {
	case CandidateIDField:
		return c.ID
	case CandidateNameField:
		return c.Name
	default:
		return ""
	}
}

func (c *Candidates) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

func (c *Candidates) FindByID(id string) *Candidate {
	if c == nil {
		return nil
	}
	for _, candidate := range c.Items {
		if candidate.ID == id {
			return candidate
		}
	}
	return nil
}

func (c *Candidates) IDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, candidate := range c.Items {
		ids = append(ids, candidate.ID)
	}
	return ids
}

// Exclude removes candidates whose field value is in values and returns the
// removed IDs.
func (c *Candidates) Exclude(field string, values []string) []string {
	if len(values) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(values))
	for _, v := range values {
		drop[v] = struct{}{}
	}

	return c.Filter(func(candidate *Candidate) bool {
		_, found := drop[candidate.GetStringField(field)]
		return !found
	})
}

// Filter keeps the candidates for which keep returns true and returns the IDs
// of the removed ones. Order is preserved.
func (c *Candidates) Filter(keep func(*Candidate) bool) []string {
	var removed []string
	kept := c.Items[:0]
	for _, candidate := range c.Items {
		if keep(candidate) {
			kept = append(kept, candidate)
			continue
		}
		removed = append(removed, candidate.ID)
	}
	for i := len(kept); i < len(c.Items); i++ {
		c.Items[i] = nil
	}
	c.Items = kept
	return removed
}

// RemoveByIndex drops the item at idx by swapping the last item into its place.
func (c *Candidates) RemoveByIndex(idx int) {
	last := len(c.Items) - 1
	c.Items[idx] = c.Items[last]
	c.Items[last] = nil
	c.Items = c.Items[:last]
}

func (c *Candidates) DumpToTmpFile() (string, error) {
	return dumpToTmpFile("candidates_*.json", c)
}

func dumpToTmpFile(pattern string, v any) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Job is the requirement side of a matching run.
type Job struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title,omitempty"`
	Description        string    `json:"description,omitempty"`
	RequiredSkills     []string  `json:"required_skills"`
	RequiredExperience int       `json:"required_experience"`
	Vector             []float32 `json:"vector,omitempty"`
}

// MaxCPDLevel is the top of the career level ladder.
const MaxCPDLevel = 6

// CPDLevel maps years of experience onto the 1 to 6 career level ladder.
func CPDLevel(years int) int {
	switch {
	case years <= 1:
		return 1
	case years <= 3:
		return 2
	case years <= 5:
		return 3
	case years <= 8:
		return 4
	case years <= 12:
		return 5
	default:
		return 6
	}
}

// Experience buckets used by the analytics report.
const (
	BucketJunior = "0-2 yrs"
	BucketMiddle = "3-5 yrs"
	BucketSenior = "6-10 yrs"
	BucketExpert = "10+ yrs"
)

func ExperienceBucket(years int) string {
	switch {
	case years <= 2:
		return BucketJunior
	case years <= 5:
		return BucketMiddle
	case years <= 10:
		return BucketSenior
	default:
		return BucketExpert
	}
}

func clampCPD(level int) int {
	if level < 1 {
		return 1
	}
	if level > MaxCPDLevel {
		return MaxCPDLevel
	}
	return level
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
