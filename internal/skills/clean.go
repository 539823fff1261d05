package skills

import (
	"regexp"
	"strings"
)

var (
	bulletPrefix = regexp.MustCompile(`^(?:[-•*·▪◦]+|\d+[.)])\s*`)
	keywordToken = regexp.MustCompile(`[a-z0-9+#.]+`)
	listSplit    = regexp.MustCompile(`[,;]`)
)

// Cleaner turns noisy extracted phrases into a SkillSet.
type Cleaner struct {
	dict       *Dictionary
	classifier *Classifier
}

// NewCleaner returns a cleaner backed by the given dictionary or the embedded
// one when dict is nil.
func NewCleaner(dict *Dictionary) *Cleaner {
	c := NewClassifier(dict)
	return &Cleaner{dict: c.dict, classifier: c}
}

// Clean strips list bullets, drops empty entries, stopwords and phrases that
// start with a stopword, keeps what the classifier accepts and deduplicates by
// normalized form.
func (c *Cleaner) Clean(raw []string) SkillSet {
	var b setBuilder
	for _, r := range raw {
		phrase := StripBullet(r)
		if phrase == "" {
			continue
		}

		normalized := Normalize(phrase)
		if words := strings.Fields(normalized); len(words) == 0 || c.dict.IsStopword(words[0]) {
			continue
		}

		if !c.classifier.LooksLikeTech(normalized) {
			continue
		}

		b.add(phrase)
	}
	return b.build()
}

// Clean runs the embedded-dictionary cleaner over raw.
func Clean(raw []string) SkillSet {
	return NewCleaner(nil).Clean(raw)
}

// StripBullet removes a leading list marker ("- ", "• ", "1. ", "2)") and
// surrounding whitespace.
func StripBullet(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSpace(bulletPrefix.ReplaceAllString(s, ""))
}

// SplitList splits comma and semicolon separated lines into items and drops
// duplicates ignoring case.
func SplitList(lines []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		for _, part := range listSplit.Split(line, -1) {
			item := strings.TrimSpace(part)
			if item == "" {
				continue
			}
			key := strings.ToLower(item)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// Keywords extracts lowercase keyword tokens from free text in first-seen
// order. Letters, digits and '+', '#', '.' are kept together, so "c++",
// "c#", "node.js" and "python3" stay whole. Sentence-final dots are dropped.
func Keywords(text string) []string {
	matches := keywordToken.FindAllString(strings.ToLower(text), -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.Trim(m, ".")
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// SoftSkills keeps only the known soft skills from items, in their dictionary
// spelling.
func (c *Cleaner) SoftSkills(items []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, item := range items {
		display, ok := c.dict.SoftSkill(StripBullet(item))
		if !ok {
			continue
		}
		if _, dup := seen[display]; dup {
			continue
		}
		seen[display] = struct{}{}
		out = append(out, display)
	}
	return out
}
