package skills

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailPattern   = regexp.MustCompile(`[\w.\-]+@[\w.\-]+`)
	phonePattern   = regexp.MustCompile(`(?:\+?\d{1,3}[\-.\s]?)?(?:\(?\d{2,4}\)?[\-.\s]?)?\d{3,4}[\-.\s]?\d{3,4}`)
	sectionHeading = regexp.MustCompile(`(?i)^\s*(?:technical\s+|soft\s+)?skills(?:\s*&\s*tools)?\s*:?\s*(.*)$`)
	sectionSplit   = regexp.MustCompile(`[;,•|\-]+`)
)

const maxSectionLines = 12

// Extract finds dictionary skills in free text without any model. Known
// phrases are matched longest first without overlap, then left-over keyword
// tokens are looked up by variant. Soft skills are only taken from a "Skills"
// section. The result holds dictionary display spellings: phrase matches in
// the order they appear in the text, then variant and soft skill finds.
func (d *Dictionary) Extract(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	cleaned := phonePattern.ReplaceAllString(emailPattern.ReplaceAllString(text, " "), " ")

	var found []string
	seen := make(map[string]struct{})
	push := func(display string) {
		if _, ok := seen[display]; ok {
			return
		}
		seen[display] = struct{}{}
		found = append(found, display)
	}

	for _, display := range d.scanPhrases(cleaned) {
		push(display)
	}

	for _, kw := range Keywords(cleaned) {
		if display, ok := d.Canonical(kw); ok {
			push(display)
		}
	}

	for _, item := range sectionItems(cleaned) {
		if display, ok := d.SoftSkill(item); ok {
			push(display)
		}
	}

	return found
}

type span struct{ start, end int }

// scanPhrases matches dictionary keys against the lowercased, whitespace
// collapsed text and returns them in text order. A match must not touch a letter, digit, '_', '#' or '+' on
// either side; a trailing '.' counts as a boundary only when it ends the text
// or is followed by a space.
func (d *Dictionary) scanPhrases(text string) []string {
	lowered := strings.ToLower(strings.Join(strings.Fields(text), " "))

	type match struct {
		start   int
		display string
	}

	var taken []span
	var matches []match
	for _, key := range d.byLength {
		from := 0
		for from < len(lowered) {
			idx := strings.Index(lowered[from:], key)
			if idx < 0 {
				break
			}
			s := from + idx
			e := s + len(key)
			from = s + 1

			if !boundaryBefore(lowered, s) || !boundaryAfter(lowered, e) {
				continue
			}
			if overlaps(taken, s, e) {
				continue
			}
			taken = append(taken, span{s, e})
			matches = append(matches, match{start: s, display: d.canonical[key]})
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	found := make([]string, 0, len(matches))
	for _, m := range matches {
		found = append(found, m.display)
	}
	return found
}

func overlaps(taken []span, s, e int) bool {
	for _, t := range taken {
		if s < t.end && e > t.start {
			return true
		}
	}
	return false
}

func isWordByte(r rune) bool {
	return r == '_' || r == '#' || r == '+' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordByte(r) && r != '.'
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	if r == '.' {
		return i+size == len(s) || s[i+size] == ' '
	}
	return !isWordByte(r)
}

// sectionItems returns the raw items listed under the first "Skills" heading.
// The block ends at a blank line or after a fixed number of lines.
func sectionItems(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		m := sectionHeading.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		block := []string{m[1]}
		for j := i + 1; j < len(lines) && len(block) < maxSectionLines; j++ {
			if strings.TrimSpace(lines[j]) == "" {
				break
			}
			block = append(block, lines[j])
		}

		var items []string
		for _, part := range sectionSplit.Split(strings.Join(block, "\n"), -1) {
			for _, item := range strings.Split(part, "\n") {
				if item = strings.TrimSpace(strings.TrimRight(item, ":•")); item != "" {
					items = append(items, item)
				}
			}
		}
		if len(items) > 0 {
			return items
		}
	}
	return nil
}
