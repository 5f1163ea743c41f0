package nlp

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.yaml.in/yaml/v4"
)

//go:embed skills.yaml
var defaultVocabulary []byte

// SkillSet - множество канонических навыков в порядке обнаружения.
type SkillSet struct {
	items []string
	seen  map[string]struct{}
}

func NewSkillSet(skills ...string) SkillSet {
	var s SkillSet
	for _, sk := range skills {
		s.Add(sk)
	}
	return s
}

// Add inserts skill unless an equal one (after normalization) is present.
func (s *SkillSet) Add(skill string) {
	skill = strings.TrimSpace(skill)
	key := NormalizeSkill(skill)
	if key == "" {
		return
	}
	if s.seen == nil {
		s.seen = map[string]struct{}{}
	}
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, skill)
}

func (s SkillSet) Has(skill string) bool {
	_, ok := s.seen[NormalizeSkill(skill)]
	return ok
}

func (s SkillSet) Len() int      { return len(s.items) }
func (s SkillSet) IsEmpty() bool { return len(s.items) == 0 }

// Slice returns a copy of the skills; never nil.
func (s SkillSet) Slice() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s *SkillSet) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*s = NewSkillSet(list...)
	return nil
}

type rule struct {
	skill string
	re    *regexp.Regexp
}

// Vocabulary is an ordered list of skill rules plus the fallback keywords.
type Vocabulary struct {
	rules    []rule
	fallback []string
}

type vocabularyFile struct {
	Rules []struct {
		Skill   string `yaml:"skill"`
		Pattern string `yaml:"pattern"`
	} `yaml:"rules"`
	Fallback []string `yaml:"fallback"`
}

// LoadVocabulary parses a YAML vocabulary. Patterns are compiled
// case-insensitive.
func LoadVocabulary(data []byte) (*Vocabulary, error) {
	var f vocabularyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse skill vocabulary: %w", err)
	}
	v := &Vocabulary{fallback: f.Fallback}
	for i, r := range f.Rules {
		if strings.TrimSpace(r.Skill) == "" || r.Pattern == "" {
			return nil, fmt.Errorf("skill rule %d: skill and pattern are required", i)
		}
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("skill rule %q: %w", r.Skill, err)
		}
		v.rules = append(v.rules, rule{skill: r.Skill, re: re})
	}
	return v, nil
}

var (
	defaultOnce  sync.Once
	defaultVocab *Vocabulary
)

// DefaultVocabulary returns the embedded vocabulary.
func DefaultVocabulary() *Vocabulary {
	defaultOnce.Do(func() {
		v, err := LoadVocabulary(defaultVocabulary)
		if err != nil {
			panic(err)
		}
		defaultVocab = v
	})
	return defaultVocab
}

// Extract returns every skill whose rule matches text. When no rule fires the
// fallback keywords are searched as plain substrings.
func (v *Vocabulary) Extract(text string) SkillSet {
	var found SkillSet
	if strings.TrimSpace(text) == "" {
		return found
	}
	for _, r := range v.rules {
		if r.re.MatchString(text) {
			found.Add(r.skill)
		}
	}
	if !found.IsEmpty() {
		return found
	}
	lower := strings.ToLower(text)
	for _, tech := range v.fallback {
		if strings.Contains(lower, strings.ToLower(tech)) {
			found.Add(tech)
		}
	}
	return found
}

// ExtractSkills runs the embedded vocabulary over text.
func ExtractSkills(text string) SkillSet {
	return DefaultVocabulary().Extract(text)
}
