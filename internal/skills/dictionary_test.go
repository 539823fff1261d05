package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDictionaryErrors(t *testing.T) {
	t.Parallel()

	_, err := ParseDictionary([]byte("skills: ["))
	require.Error(t, err)

	_, err = ParseDictionary([]byte("stopwords: [a]"))
	require.Error(t, err)
}

func TestDefaultDictionaryLookups(t *testing.T) {
	t.Parallel()

	d := DefaultDictionary()
	require.Same(t, d, DefaultDictionary())

	tests := map[string]string{
		"javascript":  "JavaScript",
		"java script": "JavaScript",
		"NodeJS":      "Node.js",
		"nodejs":      "Node.js",
		"csharp":      "C#",
		"cplusplus":   "C++",
		"postgresql":  "PostgreSQL",
		"spring-boot": "Spring Boot",
	}
	for in, want := range tests {
		got, ok := d.Canonical(in)
		assert.True(t, ok, "lookup %q", in)
		assert.Equal(t, want, got, "lookup %q", in)
	}

	assert.False(t, d.Contains("responsibilities"))

	soft, ok := d.SoftSkill("problem solving")
	assert.True(t, ok)
	assert.Equal(t, "Problem Solving", soft)
	assert.Contains(t, d.SoftSkills(), "Leadership")

	assert.True(t, d.IsCommon("the and"))
	assert.False(t, d.IsCommon("the kubernetes"))
	assert.True(t, d.IsStopword(" Experience "))
}
