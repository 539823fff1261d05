package skills

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	datePattern    = regexp.MustCompile(`^(?:(?:19|20)\d{2}|\d{1,2}[/.\- ]\d{1,2}[/.\- ]\d{2,4}|\d{1,2}[/.\- ](?:19|20)\d{2})$`)
	numericPattern = regexp.MustCompile(`^[\d\s.,/\-]+$`)
)

// Classifier decides whether a token plausibly names a technical skill.
// It is a heuristic: the only promise is that the same token always gets the
// same answer.
type Classifier struct {
	dict *Dictionary
}

// NewClassifier returns a classifier backed by the given dictionary or the
// embedded one when dict is nil.
func NewClassifier(dict *Dictionary) *Classifier {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &Classifier{dict: dict}
}

// LooksLikeTech applies the rules below in order, the first one that fires
// decides:
//
//  1. stopword: reject
//  2. short skill allow-list: accept
//  3. technical punctuation ('.', '#', '+', '/') next to letters, or letters
//     mixed with digits: accept
//  4. common English word that is not a dictionary skill: reject
//  5. date-like or numeric: reject
//  6. letters and spaces only, at least 3 characters and not a generic
//     adjective: accept
//
// Anything else is rejected.
func (c *Classifier) LooksLikeTech(token string) bool {
	t := lowerTrim(token)
	if t == "" {
		return false
	}

	if c.dict.IsStopword(t) {
		return false
	}

	if c.dict.IsShortSkill(t) {
		return true
	}

	if hasTechPunctuation(t) || lettersWithDigits(t) {
		return true
	}

	if c.dict.IsCommon(t) && !c.dict.Contains(t) {
		return false
	}

	if datePattern.MatchString(t) || numericPattern.MatchString(t) {
		return false
	}

	shape := strings.Join(strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(t)), " ")
	if len([]rune(shape)) >= 3 && lettersAndSpaces(shape) && !c.dict.IsGenericAdjective(shape) {
		return true
	}

	return false
}

// LooksLikeTech classifies the token with the embedded dictionary.
func LooksLikeTech(token string) bool {
	return defaultClassifier().LooksLikeTech(token)
}

func defaultClassifier() *Classifier {
	return &Classifier{dict: DefaultDictionary()}
}

func hasTechPunctuation(t string) bool {
	if !strings.ContainsAny(t, ".#+/") {
		return false
	}
	return strings.IndexFunc(t, unicode.IsLetter) >= 0
}

func lettersWithDigits(t string) bool {
	runes := []rune(t)
	for i := 1; i < len(runes); i++ {
		a, b := runes[i-1], runes[i]
		if (unicode.IsLetter(a) && unicode.IsDigit(b)) || (unicode.IsDigit(a) && unicode.IsLetter(b)) {
			return true
		}
	}
	return false
}

func lettersAndSpaces(t string) bool {
	for _, r := range t {
		if r != ' ' && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
