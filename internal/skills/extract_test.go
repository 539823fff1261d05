package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictionaryExtract(t *testing.T) {
	t.Parallel()

	text := "Experienced Python developer. Worked with Django REST framework, PostgreSQL and Docker.\n" +
		"Skills: Communication, Leadership, Kubernetes\n\n" +
		"Contact: jane.doe@example.com"

	got := DefaultDictionary().Extract(text)
	assert.ElementsMatch(t, []string{
		"Python", "Django", "REST", "PostgreSQL", "Docker", "Kubernetes", "Communication", "Leadership",
	}, got)
}

func TestDictionaryExtractBoundaries(t *testing.T) {
	t.Parallel()

	d := DefaultDictionary()

	got := d.Extract("We use C++ and C# daily, plus ASP.NET.")
	assert.ElementsMatch(t, []string{"C++", "C#", "ASP.NET"}, got)

	assert.NotContains(t, d.Extract("django developers"), "Go")
	assert.NotContains(t, d.Extract("Communication matters to us"), "Communication",
		"soft skills are only taken from a skills section")
	assert.Empty(t, d.Extract("   "))
}

func TestDictionaryExtractTextOrder(t *testing.T) {
	t.Parallel()

	d := DefaultDictionary()

	assert.Equal(t, []string{"Python", "Django"}, d.Extract("We need Python and Django engineers."))
	assert.Equal(t, []string{"Terraform", "Docker", "AWS"}, d.Extract("Terraform first, then Docker on AWS"))
}
