package records

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSourceJSONList(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "candidates.json", `[
  {"id": "1", "name": "Ann", "skills": ["Go", "Docker"], "experience_years": 4},
  {"id": 2, "candidate_name": "Bob", "skills": "Python, Django", "experience_years": 1.0}
]`)

	got, err := NewFileSource(nil, path).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, got.Len())
	assert.Equal(t, []string{"1", "2"}, got.IDs())
	assert.Equal(t, 3, got.Items[0].CPDLevel)
	assert.Equal(t, "Bob", got.Items[1].Name)
	assert.Equal(t, []string{"Python", "Django"}, got.Items[1].Skills)
}

func TestFileSourceYAMLItems(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "candidates.yaml", `
items:
  - id: c-1
    name: Cid
    skills: [Kubernetes, Helm]
    experience_years: 9
`)

	got, err := NewFileSource(nil, path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, []string{"Kubernetes", "Helm"}, got.Items[0].Skills)
	assert.Equal(t, 5, got.Items[0].CPDLevel)
}

func TestFileSourceSkipsBadRecords(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "mixed.json", `[
  {"id": "a", "skills": ["Go"], "experience_years": 2},
  {"id": "b", "experience_years": "five"},
  {"id": "c", "skills": "Docker"}
]`)

	got, err := NewFileSource(nil, path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got.IDs())
	assert.Equal(t, 0, got.Items[1].ExperienceYears)
}

func TestFileSourceErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := NewFileSource(nil, filepath.Join(t.TempDir(), "nope.json")).Load(ctx)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewFileSource(nil, writeFile(t, "bad.json", `{`)).Load(ctx)
	assert.Error(t, err)

	_, err = NewFileSource(nil, writeFile(t, "obj.json", `{"found": 1}`)).Load(ctx)
	assert.ErrorContains(t, err, "no items")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = NewFileSource(nil, writeFile(t, "ok.json", `[]`)).Load(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadJob(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "backend.yaml", `
title: Backend engineer
description: Django and PostgreSQL
required_skills:
  - Python
  - Django
required_experience: 3
`)

	job, err := LoadJob(path)
	require.NoError(t, err)

	assert.Equal(t, "backend", job.ID)
	assert.Equal(t, "Backend engineer", job.Title)
	assert.Equal(t, []string{"Python", "Django"}, job.RequiredSkills)
	assert.Equal(t, 3, job.RequiredExperience)
}
