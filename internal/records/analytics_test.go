package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalytics(t *testing.T) {
	t.Parallel()

	c := testCandidates()
	c.Items = append(c.Items, &Candidate{ID: "4", Skills: []string{" Python ", "PYTHON", "Go"}, ExperienceYears: 7, CPDLevel: 4})

	o := c.Analytics(0)

	assert.Equal(t, 4, o.Total)
	assert.Equal(t, map[string]int{"1": 1, "3": 1, "4": 1, "5": 1}, o.CPDLevels)
	assert.Equal(t, map[string]int{
		BucketJunior: 1,
		BucketMiddle: 1,
		BucketSenior: 1,
		BucketExpert: 1,
	}, o.Experience)
	assert.Equal(t, []SkillCount{
		{Skill: "python", Count: 3},
		{Skill: "go", Count: 2},
		{Skill: "django", Count: 1},
	}, o.TopSkills)
}

func TestAnalyticsTopN(t *testing.T) {
	t.Parallel()

	o := testCandidates().Analytics(1)
	assert.Equal(t, []SkillCount{{Skill: "python", Count: 2}}, o.TopSkills)

	empty := (&Candidates{}).Analytics(5)
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.TopSkills)
	assert.Empty(t, empty.CPDLevels)
}
