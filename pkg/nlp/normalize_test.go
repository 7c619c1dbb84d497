package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := map[string]string{
		"  Find   FANTASY books ": "find fantasy books",
		"Café Société":            "cafe societe",
		"Sorcerer’s Stone":        "sorcerer's stone",
		"SCI-FI\tplease\n":        "sci-fi please",
		"":                        "",
	}

	for in, want := range tests {
		assert.Equal(t, want, cleanText(in), in)
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"hi", "there", "sorcerer's", "stone"}, tokenize("hi, there! sorcerer's stone."))
	assert.Empty(t, tokenize("?!"))
}

func TestContainsSequence(t *testing.T) {
	tokens := tokenize("well good morning to you")

	assert.True(t, containsSequence(tokens, []string{"good", "morning"}))
	assert.False(t, containsSequence(tokens, []string{"morning", "good"}))
	assert.False(t, containsSequence(tokens, nil))
	assert.False(t, containsSequence([]string{"history"}, []string{"hi"}))
}

func TestCapitalizeFirst(t *testing.T) {
	tag := MustDefaultKnowledgeBase().LanguageTag()

	assert.Equal(t, "O'neil", capitalizeFirst("o'neil", tag))
	assert.Equal(t, "Smith-jones", capitalizeFirst("smith-jones", tag))
	assert.Equal(t, "Émile", capitalizeFirst("émile", tag))
	assert.Equal(t, "", capitalizeFirst("", tag))
}
