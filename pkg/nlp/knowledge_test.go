package nlp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKnowledgeBase(t *testing.T) {
	kb, err := DefaultKnowledgeBase()
	require.NoError(t, err)

	assert.Equal(t, "en", kb.LanguageTag().String())
	assert.Equal(t,
		[]string{"Fantasy", "Science", "Mystery", "Biography", "Fiction", "Technology", "History", "Romance"},
		kb.GenreNames(),
	)
	assert.Contains(t, kb.AuthorNames(), "Stephen Hawking")
	assert.Contains(t, kb.TitleNames(), "The Alchemist")
	assert.Len(t, kb.TitleNames(), 10)
	assert.NotEmpty(t, kb.Examples)

	for _, p := range kb.BookPatterns {
		assert.NotNil(t, p.re, p.Pattern)
	}
}

func TestDefaultKnowledgeBase_PatternsCoverSampleCatalog(t *testing.T) {
	kb := MustDefaultKnowledgeBase()
	catalog := SampleCatalog()

	for _, p := range kb.BookPatterns {
		assert.NotNil(t, findByTitle(catalog, p.Title), p.Title)
	}
}

func TestLoadKnowledgeBase_Invalid(t *testing.T) {
	valid := string(defaultKnowledge)

	tests := []struct {
		name    string
		payload string
		errText string
	}{
		{
			name:    "malformed json",
			payload: `{"language": `,
			errText: "decode knowledge base",
		},
		{
			name:    "missing tables",
			payload: `{"language": "en"}`,
			errText: "validate knowledge base",
		},
		{
			name:    "unknown intent kind",
			payload: strings.Replace(valid, `"kind": "status"`, `"kind": "dance"`, 1),
			errText: "validate knowledge base",
		},
		{
			name:    "short response pool",
			payload: strings.Replace(valid, `"Hi there! Ready to explore some great books?",`, ``, 1),
			errText: "validate knowledge base",
		},
		{
			name:    "broken pattern",
			payload: strings.Replace(valid, `"pattern": "cosmos"`, `"pattern": "cosmos("`, 1),
			errText: "book pattern",
		},
		{
			name: "thanks phrases without replies",
			payload: strings.Replace(valid,
				"\"You're welcome! Is there anything else I can help you with?\",\n"+
					"      \"Happy to help! Let me know if you need another book.\",\n"+
					"      \"Any time! Enjoy your reading.\"", "", 1),
			errText: "no thanks responses",
		},
		{
			name:    "bad language tag",
			payload: strings.Replace(valid, `"language": "en"`, `"language": "!!"`, 1),
			errText: "knowledge base language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb, err := LoadKnowledgeBase(strings.NewReader(tt.payload))

			require.Error(t, err)
			assert.Nil(t, kb)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadKnowledgeBaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge.json")
	custom := strings.Replace(string(defaultKnowledge), `"keyword": "romance", "genre": "romance"`, `"keyword": "poetry", "genre": "poetry"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o600))

	kb, err := LoadKnowledgeBaseFile(path)
	require.NoError(t, err)
	assert.Contains(t, kb.GenreNames(), "Poetry")
	assert.NotContains(t, kb.GenreNames(), "Romance")

	_, err = LoadKnowledgeBaseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
