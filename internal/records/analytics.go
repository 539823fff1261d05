package records

import (
	"sort"
	"strconv"
	"strings"
)

const DefaultTopSkills = 20

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// Overview summarises a candidate pool.
type Overview struct {
	Total      int            `json:"total"`
	CPDLevels  map[string]int `json:"cpd_levels"`
	Experience map[string]int `json:"experience"`
	TopSkills  []SkillCount   `json:"top_skills"`
}

// Analytics counts candidates per career level and experience bucket and
// returns the topN most common skills. topN <= 0 uses DefaultTopSkills.
func (c *Candidates) Analytics(topN int) Overview {
	if topN <= 0 {
		topN = DefaultTopSkills
	}

	o := Overview{
		Total:     c.Len(),
		CPDLevels: make(map[string]int),
		Experience: map[string]int{
			BucketJunior: 0,
			BucketMiddle: 0,
			BucketSenior: 0,
			BucketExpert: 0,
		},
		TopSkills: []SkillCount{},
	}

	counts := make(map[string]int)
	for _, candidate := range c.Items {
		o.CPDLevels[strconv.Itoa(clampCPD(candidate.CPDLevel))]++
		o.Experience[ExperienceBucket(candidate.ExperienceYears)]++

		seen := make(map[string]struct{}, len(candidate.Skills))
		for _, s := range candidate.Skills {
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			counts[key]++
		}
	}

	for skill, n := range counts {
		o.TopSkills = append(o.TopSkills, SkillCount{Skill: skill, Count: n})
	}
	sort.Slice(o.TopSkills, func(i, j int) bool {
		if o.TopSkills[i].Count != o.TopSkills[j].Count {
			return o.TopSkills[i].Count > o.TopSkills[j].Count
		}
		return o.TopSkills[i].Skill < o.TopSkills[j].Skill
	})
	if len(o.TopSkills) > topN {
		o.TopSkills = o.TopSkills[:topN]
	}

	return o
}
