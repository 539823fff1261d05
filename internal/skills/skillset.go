package skills

import "strings"

// SkillSet is an ordered list of skills deduplicated by normalized form.
// The display list keeps the first surface spelling seen for every token and
// the canonical list holds the matching normalized tokens, index for index.
// A SkillSet is not modified after construction.
type SkillSet struct {
	display   []string
	canonical []string
	index     map[string]int
}

// NewSkillSet builds a SkillSet from raw strings. Entries that normalize to the
// empty string are dropped.
func NewSkillSet(raw []string) SkillSet {
	var b setBuilder
	for _, r := range raw {
		b.add(r)
	}
	return b.build()
}

type setBuilder struct {
	display   []string
	canonical []string
	index     map[string]int
}

func (b *setBuilder) add(raw string) bool {
	token := Normalize(raw)
	if token == "" {
		return false
	}
	if b.index == nil {
		b.index = make(map[string]int)
	}
	if _, ok := b.index[token]; ok {
		return false
	}
	b.index[token] = len(b.canonical)
	b.canonical = append(b.canonical, token)
	b.display = append(b.display, strings.TrimSpace(raw))
	return true
}

func (b *setBuilder) build() SkillSet {
	s := SkillSet{display: b.display, canonical: b.canonical, index: b.index}
	*b = setBuilder{}
	return s
}

// Len returns the number of distinct skills.
func (s SkillSet) Len() int {
	return len(s.canonical)
}

// Canonical returns a copy of the normalized tokens.
func (s SkillSet) Canonical() []string {
	return append([]string{}, s.canonical...)
}

// Display returns a copy of the surface spellings.
func (s SkillSet) Display() []string {
	return append([]string{}, s.display...)
}

// Contains reports whether the normalized form of skill is in the set.
func (s SkillSet) Contains(skill string) bool {
	_, ok := s.index[Normalize(skill)]
	return ok
}

// DisplayOf returns the surface spelling recorded for a token.
func (s SkillSet) DisplayOf(skill string) (string, bool) {
	i, ok := s.index[Normalize(skill)]
	if !ok {
		return "", false
	}
	return s.display[i], true
}

// Union returns a new set with the skills of s followed by the skills of other
// that s does not already hold.
func (s SkillSet) Union(other SkillSet) SkillSet {
	var b setBuilder
	for _, d := range s.display {
		b.add(d)
	}
	for _, d := range other.display {
		b.add(d)
	}
	return b.build()
}
