package skills

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed dictionary.yaml
var defaultDictionaryData []byte

type dictionaryFile struct {
	Skills            []string `yaml:"skills"`
	SoftSkills        []string `yaml:"soft_skills"`
	Stopwords         []string `yaml:"stopwords"`
	ShortSkills       []string `yaml:"short_skills"`
	GenericAdjectives []string `yaml:"generic_adjectives"`
	CommonWords       []string `yaml:"common_words"`
}

// Dictionary holds the static vocabulary used by the classifier and the
// dictionary extractor. It is read-only after construction and safe for
// concurrent use.
type Dictionary struct {
	// variant -> display form of the canonical skill
	canonical map[string]string
	// lookup keys ordered longest first for phrase scanning
	byLength []string

	soft       map[string]string
	softOrder  []string
	stopwords  set
	short      set
	adjectives set
	common     set
}

type set map[string]struct{}

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

func newSet(items []string, key func(string) string) set {
	s := make(set, len(items))
	for _, item := range items {
		if k := key(item); k != "" {
			s[k] = struct{}{}
		}
	}
	return s
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseDictionary builds a Dictionary from its YAML representation.
func ParseDictionary(data []byte) (*Dictionary, error) {
	var file dictionaryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse skill dictionary: %w", err)
	}

	if len(file.Skills) == 0 {
		return nil, fmt.Errorf("skill dictionary has no skills")
	}

	d := &Dictionary{
		canonical:  make(map[string]string, len(file.Skills)*2),
		soft:       make(map[string]string, len(file.SoftSkills)),
		stopwords:  newSet(file.Stopwords, lowerTrim),
		short:      newSet(file.ShortSkills, lowerTrim),
		adjectives: newSet(file.GenericAdjectives, lowerTrim),
		common:     newSet(file.CommonWords, lowerTrim),
	}

	for _, raw := range file.Skills {
		display := strings.TrimSpace(raw)
		for _, v := range Variants(display) {
			if _, ok := d.canonical[v]; !ok {
				d.canonical[v] = display
			}
		}
	}

	for _, raw := range file.SoftSkills {
		display := strings.TrimSpace(raw)
		key := Normalize(display)
		if key == "" {
			continue
		}
		if _, ok := d.soft[key]; !ok {
			d.soft[key] = display
			d.softOrder = append(d.softOrder, display)
		}
	}

	d.byLength = make([]string, 0, len(d.canonical))
	for k := range d.canonical {
		d.byLength = append(d.byLength, k)
	}
	sort.Slice(d.byLength, func(i, j int) bool {
		a, b := d.byLength[i], d.byLength[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	return d, nil
}

var (
	defaultDictionary     *Dictionary
	defaultDictionaryOnce sync.Once
)

// DefaultDictionary returns the embedded dictionary. It is parsed on first use
// and shared afterwards.
func DefaultDictionary() *Dictionary {
	defaultDictionaryOnce.Do(func() {
		d, err := ParseDictionary(defaultDictionaryData)
		if err != nil {
			panic(err)
		}
		defaultDictionary = d
	})

	return defaultDictionary
}

// Canonical returns the display form of the dictionary skill the phrase refers
// to, trying every lookup variant of it.
func (d *Dictionary) Canonical(phrase string) (string, bool) {
	for _, v := range Variants(phrase) {
		if display, ok := d.canonical[v]; ok {
			return display, true
		}
	}
	return "", false
}

// Contains reports whether the phrase names a dictionary skill.
func (d *Dictionary) Contains(phrase string) bool {
	_, ok := d.Canonical(phrase)
	return ok
}

// Len returns the number of lookup keys, variants included.
func (d *Dictionary) Len() int {
	return len(d.canonical)
}

func (d *Dictionary) IsStopword(token string) bool {
	return d.stopwords.has(lowerTrim(token))
}

func (d *Dictionary) IsShortSkill(token string) bool {
	return d.short.has(lowerTrim(token))
}

func (d *Dictionary) IsGenericAdjective(token string) bool {
	return d.adjectives.has(lowerTrim(token))
}

// IsCommon reports whether every word of the token is a common English word.
func (d *Dictionary) IsCommon(token string) bool {
	words := strings.Fields(lowerTrim(token))
	if len(words) == 0 {
		return true
	}
	for _, w := range words {
		if !d.common.has(w) {
			return false
		}
	}
	return true
}

// SoftSkill returns the display form of a known soft skill.
func (d *Dictionary) SoftSkill(phrase string) (string, bool) {
	display, ok := d.soft[Normalize(phrase)]
	return display, ok
}

// SoftSkills lists the known soft skills in their configured order.
func (d *Dictionary) SoftSkills() []string {
	return append([]string(nil), d.softOrder...)
}
