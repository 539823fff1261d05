package ranking

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spigell/skillmatch/internal/matching"
	"github.com/spigell/skillmatch/internal/records"
	"github.com/spigell/skillmatch/internal/scoring"
)

// Ranked is one scored candidate.
type Ranked struct {
	Candidate *records.Candidate `json:"candidate"`
	// Skills are the candidate skills after cleaning.
	Skills           []string          `json:"skills"`
	Match            matching.Result   `json:"match"`
	Similarity       float64           `json:"similarity"`
	SimilaritySource string            `json:"similarity_source"`
	Score            scoring.Breakdown `json:"score"`
}

// Results of one ranking run, best first.
type Results struct {
	RunID    string       `json:"run_id"`
	Job      *records.Job `json:"job"`
	Required []string     `json:"required"`
	Items    []Ranked     `json:"items"`
}

func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}

// Strong returns the items scoring at least min. When none reach it every
// item is returned.
func (r *Results) Strong(min float64) []Ranked {
	var strong []Ranked
	for _, item := range r.Items {
		if item.Score.FinalPercentage >= min {
			strong = append(strong, item)
		}
	}
	if len(strong) == 0 {
		return r.Items
	}
	return strong
}

// Below returns the candidates scoring under min.
func (r *Results) Below(min float64) *records.Candidates {
	out := &records.Candidates{}
	for _, item := range r.Items {
		if item.Score.FinalPercentage < min {
			out.Items = append(out.Items, item.Candidate)
		}
	}
	return out
}

// Top returns the first n items; n <= 0 returns all.
func Top(items []Ranked, n int) []Ranked {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}

func (r *Results) Top(n int) []Ranked {
	return Top(r.Items, n)
}

// DumpToTmpFile writes the results as indented JSON to a new temp file named
// after the run.
func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", fmt.Sprintf("ranking_%s_*.json", r.RunID))
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
