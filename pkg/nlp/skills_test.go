package nlp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSkillsFindsReactAndNode(t *testing.T) {
	got := ExtractSkills("Proficient in React and Node.js development")
	assert.True(t, got.Has("React"))
	assert.True(t, got.Has("Node.js"))
}

func TestExtractSkillsEmptyText(t *testing.T) {
	got := ExtractSkills("")
	assert.True(t, got.IsEmpty())
	assert.Equal(t, []string{}, got.Slice())
}

func TestExtractSkillsCollapsesDuplicates(t *testing.T) {
	got := ExtractSkills("JavaScript, JS and ES6 everywhere; more javascript")
	assert.Equal(t, []string{"JavaScript"}, got.Slice())
}

func TestExtractSkillsWordBoundaries(t *testing.T) {
	got := ExtractSkills("Strong Java background, some C++ and C# on the side, Golang hobbyist")
	assert.True(t, got.Has("Java"))
	assert.True(t, got.Has("C++"))
	assert.True(t, got.Has("C#"))
	assert.True(t, got.Has("Go"))
	assert.False(t, got.Has("JavaScript"))

	// "go" alone is too common an English word to count
	assert.False(t, ExtractSkills("ready to go").Has("Go"))
}

func TestExtractSkillsFallback(t *testing.T) {
	v, err := LoadVocabulary([]byte(`
rules:
  - skill: Rust
    pattern: '\brust\b'
fallback: [Node, SQL]
`))
	require.NoError(t, err)

	got := v.Extract("NodeJS-heavy stack with NoSQL stores")
	assert.Equal(t, []string{"Node", "SQL"}, got.Slice())

	got = v.Extract("Rust and NodeJS")
	assert.Equal(t, []string{"Rust"}, got.Slice(), "fallback only runs when no rule fired")
}

func TestLoadVocabularyRejectsBadRules(t *testing.T) {
	_, err := LoadVocabulary([]byte("rules:\n  - skill: X\n    pattern: '(['\n"))
	assert.Error(t, err)

	_, err = LoadVocabulary([]byte("rules:\n  - pattern: 'x'\n"))
	assert.Error(t, err)
}

func TestSkillSetJSON(t *testing.T) {
	s := NewSkillSet("Go", "go", "Docker")
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["Go","Docker"]`, string(b))

	var back SkillSet
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, 2, back.Len())
}

func TestAnalysisText(t *testing.T) {
	assert.Equal(t, "a b c", AnalysisText("a", "b", "c"))
	assert.True(t, ExtractSkills(AnalysisText("", "Knows Python", "")).Has("Python"))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "node js", NormalizeText("  Node.JS "))
	assert.Equal(t, "c++", NormalizeText("C++"))
}
