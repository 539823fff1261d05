package skills

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var separators = strings.NewReplacer("_", " ", "/", " ", "\\", " ", "-", " ")

// Normalize turns a raw skill phrase into its canonical token form.
//
// The phrase is NFKC folded and trimmed, camel-case boundaries become spaces,
// underscores, slashes, backslashes and hyphen runs become single spaces,
// whitespace is collapsed and the result is lowercased. Technical punctuation
// ('.', '+', '#') is kept. The function is total and idempotent.
func Normalize(raw string) string {
	t := strings.TrimSpace(norm.NFKC.String(raw))
	if t == "" {
		return ""
	}

	t = splitCamelCase(t)
	t = separators.Replace(t)
	t = strings.Join(strings.Fields(t), " ")

	return strings.ToLower(t)
}

// splitCamelCase inserts a space at lower->upper transitions ("reactNative")
// and before the last capital of an acronym run followed by a lowercase letter
// ("XMLParser" -> "XML Parser").
func splitCamelCase(s string) string {
	runes := []rune(s)
	if len(runes) < 2 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			switch {
			case unicode.IsLower(prev):
				b.WriteRune(' ')
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Variants returns alternate spellings of a phrase used for dictionary lookups.
// The normalized phrase always comes first; duplicates are dropped keeping the
// first occurrence.
func Variants(phrase string) []string {
	base := Normalize(phrase)
	if base == "" {
		return nil
	}

	out := []string{base}
	if strings.Contains(base, ".") {
		out = append(out, strings.ReplaceAll(base, ".", ""), strings.ReplaceAll(base, ".", " "))
	}
	out = append(out, strings.ReplaceAll(base, " ", ""))
	if strings.Contains(base, "++") {
		out = append(out, strings.ReplaceAll(base, "++", "plusplus"), strings.ReplaceAll(base, "++", " plus plus"))
	}
	if strings.Contains(base, "#") {
		out = append(out, strings.ReplaceAll(base, "#", "sharp"))
	}

	seen := make(map[string]struct{}, len(out))
	uniq := make([]string, 0, len(out))
	for _, v := range out {
		v = strings.Join(strings.Fields(v), " ")
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		uniq = append(uniq, v)
	}

	return uniq
}
