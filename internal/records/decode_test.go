package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDecodeCandidateLooseTypes(t *testing.T) {
	t.Parallel()

	c, _, err := DecodeCandidate(map[string]any{
		"id":               7,
		"candidate_name":   "Ann",
		"skills":           "Python, Django; AWS, python",
		"experience_years": "5",
		"similarity":       0.5,
		"s3_url":           "s3://bucket/ann.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, "7", c.ID)
	assert.Equal(t, "Ann", c.Name)
	assert.Equal(t, []string{"Python", "Django", "AWS"}, c.Skills)
	assert.Equal(t, 5, c.ExperienceYears)
	assert.Equal(t, 3, c.CPDLevel)
	require.NotNil(t, c.Similarity)
	assert.InDelta(t, 0.5, *c.Similarity, 1e-9)
	assert.Equal(t, "s3://bucket/ann.pdf", c.URL)
}

func TestDecodeCandidateSkillList(t *testing.T) {
	t.Parallel()

	c, _, err := DecodeCandidate(map[string]any{
		"id":     "a",
		"skills": []any{"Go", 5, " ", " Docker "},
		"vector": []any{0.5, 1.0},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Docker"}, c.Skills)
	assert.Equal(t, []float32{0.5, 1}, c.Vector)
	assert.Nil(t, c.Similarity)
}

func TestDecodeCandidateDefaults(t *testing.T) {
	t.Parallel()

	c, _, err := DecodeCandidate(map[string]any{"id": "x", "experience_years": -4})
	require.NoError(t, err)

	assert.NotNil(t, c.Skills)
	assert.Empty(t, c.Skills)
	assert.Equal(t, 0, c.ExperienceYears)
	assert.Equal(t, 1, c.CPDLevel)

	c, _, err = DecodeCandidate(map[string]any{"id": "y", "cpd_level": 9})
	require.NoError(t, err)
	assert.Equal(t, 6, c.CPDLevel)
}

func TestDecodeCandidateAliasDoesNotOverride(t *testing.T) {
	t.Parallel()

	c, _, err := DecodeCandidate(map[string]any{"id": "x", "name": "Real", "candidate_name": "Alias"})
	require.NoError(t, err)
	assert.Equal(t, "Real", c.Name)
}

func TestDecodeCandidateFieldsDefaulted(t *testing.T) {
	t.Parallel()

	_, _, err := DecodeCandidate(map[string]any{"name": "no id"})
	assert.Error(t, err)

	_, _, err = DecodeCandidate("garbage")
	assert.Error(t, err)

	c, defaulted, err := DecodeCandidate(map[string]any{
		"id":               "x",
		"name":             "Ann",
		"experience_years": "many",
		"similarity":       "high",
		"skills":           "Go, Docker",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"experience_years", "similarity"}, defaulted)
	assert.Equal(t, "Ann", c.Name)
	assert.Equal(t, 0, c.ExperienceYears)
	assert.Equal(t, 1, c.CPDLevel)
	assert.Nil(t, c.Similarity)
	assert.Equal(t, []string{"Go", "Docker"}, c.Skills)
}

func TestDecodeCandidatesKeepsGoodRecords(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.WarnLevel)

	got := DecodeCandidates([]any{
		map[string]any{"id": "a", "skills": []any{"Go"}, "experience_years": 4},
		"garbage",
		map[string]any{"name": "no id"},
		map[string]any{"id": "b", "experience_years": "five"},
		map[string]any{"id": "c", "skills": "Docker"},
	}, zap.New(core))

	assert.Equal(t, []string{"a", "b", "c"}, got.IDs())
	assert.Equal(t, 0, got.FindByID("b").ExperienceYears)
	assert.Equal(t, []string{"Docker"}, got.FindByID("c").Skills)

	assert.Equal(t, 2, observed.FilterMessage("skipping record").Len())
	defaulted := observed.FilterMessage("record fields defaulted").All()
	require.Len(t, defaulted, 1)
	assert.Equal(t, "b", defaulted[0].ContextMap()["candidate_id"])
	assert.Equal(t, []any{"experience_years"}, defaulted[0].ContextMap()["fields"])
}

func TestDecodeJob(t *testing.T) {
	t.Parallel()

	job, err := DecodeJob(map[string]any{
		"id":                  "backend-1",
		"required_skills":     "Go; PostgreSQL, Docker",
		"required_experience": 3,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, job.RequiredSkills)
	assert.Equal(t, 3, job.RequiredExperience)

	job, err = DecodeJob(map[string]any{"id": "j", "required_experience": -1})
	require.NoError(t, err)
	assert.Equal(t, 0, job.RequiredExperience)
	assert.NotNil(t, job.RequiredSkills)
}
