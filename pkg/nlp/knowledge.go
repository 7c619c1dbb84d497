package nlp

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed data/knowledge.json
var defaultKnowledge []byte

// KnowledgeBase holds the keyword tables and response pools the interpreter works from.
// Table order is significant: the first matching entry wins. A loaded KnowledgeBase is
// never mutated and may be shared between goroutines.
type KnowledgeBase struct {
	Language            string              `json:"language" validate:"required"`
	AuthorMarker        string              `json:"author_marker" validate:"required"`
	Greetings           []string            `json:"greetings" validate:"required,min=1,dive,required"`
	Thanks              []string            `json:"thanks" validate:"dive,required"`
	Intents             []IntentPhrases     `json:"intents" validate:"required,min=1,dive"`
	Genres              []GenreEntry        `json:"genres" validate:"required,min=1,dive"`
	Authors             []AuthorEntry       `json:"authors" validate:"dive"`
	Titles              []TitleEntry        `json:"titles" validate:"dive"`
	BookPatterns        []BookPattern       `json:"book_patterns" validate:"dive"`
	Availability        []AvailabilityEntry `json:"availability" validate:"dive"`
	Recommend           RecommendKeywords   `json:"recommend"`
	Fuzzy               FuzzyConfig         `json:"fuzzy"`
	SearchFillers       []string            `json:"search_fillers"`
	SearchExcludedTerms []string            `json:"search_excluded_terms"`
	Responses           Responses           `json:"responses"`
	Examples            []string            `json:"examples"`

	greetingTokens [][]string
	fillers        map[string]bool
	excludedTerms  map[string]bool
	stopWords      map[string]bool
	tag            language.Tag
}

type IntentPhrases struct {
	Kind    IntentKind `json:"kind" validate:"required,oneof=search recommend borrow help status"`
	Phrases []string   `json:"phrases" validate:"required,min=1,dive,required"`
}

type GenreEntry struct {
	Keyword string `json:"keyword" validate:"required"`
	Genre   string `json:"genre" validate:"required"`

	canonical string
}

// Canonical is the capitalised genre name, e.g. "Science" for the "sci-fi" keyword.
func (g GenreEntry) Canonical() string {
	return g.canonical
}

type AuthorEntry struct {
	Keyword string `json:"keyword" validate:"required"`
	Name    string `json:"name" validate:"required"`
}

type TitleEntry struct {
	Keyword string `json:"keyword" validate:"required"`
	Title   string `json:"title" validate:"required"`
}

type BookPattern struct {
	Pattern string `json:"pattern" validate:"required"`
	Title   string `json:"title" validate:"required"`

	re *regexp.Regexp
}

type AvailabilityEntry struct {
	Keyword string `json:"keyword" validate:"required"`
	Value   string `json:"value" validate:"required,oneof=available borrowed"`
}

type RecommendKeywords struct {
	Popular []string `json:"popular" validate:"dive,required"`
	New     []string `json:"new" validate:"dive,required"`
}

type FuzzyConfig struct {
	MinWordLength int      `json:"min_word_length" validate:"gte=1"`
	StopWords     []string `json:"stop_words"`
}

type Responses struct {
	Greeting     []string `json:"greeting" validate:"min=3,dive,required"`
	Thanks       []string `json:"thanks" validate:"dive,required"`
	SearchAck    []string `json:"search_ack" validate:"min=3,dive,required"`
	RecommendAck []string `json:"recommend_ack" validate:"min=3,dive,required"`
	BorrowAck    []string `json:"borrow_ack" validate:"min=3,dive,required"`
	Help         []string `json:"help" validate:"min=3,dive,required"`
	Unknown      []string `json:"unknown" validate:"min=3,dive,required"`

	SearchGenre      string `json:"search_genre" validate:"required"`
	SearchAuthor     string `json:"search_author" validate:"required"`
	SearchTitle      string `json:"search_title" validate:"required"`
	SearchAvailable  string `json:"search_available" validate:"required"`
	SearchBorrowed   string `json:"search_borrowed" validate:"required"`
	SearchTerm       string `json:"search_term" validate:"required"`
	SearchClarify    string `json:"search_clarify" validate:"required"`
	RecommendGenre   string `json:"recommend_genre" validate:"required"`
	RecommendPopular string `json:"recommend_popular" validate:"required"`
	RecommendNew     string `json:"recommend_new" validate:"required"`
	RecommendClarify string `json:"recommend_clarify" validate:"required"`
	BorrowTitle      string `json:"borrow_title" validate:"required"`
	Status           string `json:"status" validate:"required"`
	GenreBrowse      string `json:"genre_browse" validate:"required"`
	BookDetail       string `json:"book_detail" validate:"required"`
}

// DefaultKnowledgeBase returns the embedded English tables.
func DefaultKnowledgeBase() (*KnowledgeBase, error) {
	return LoadKnowledgeBase(bytes.NewReader(defaultKnowledge))
}

func MustDefaultKnowledgeBase() *KnowledgeBase {
	kb, err := DefaultKnowledgeBase()
	if err != nil {
		panic(fmt.Sprintf("nlp: embedded knowledge base is invalid: %v", err))
	}
	return kb
}

func LoadKnowledgeBaseFile(path string) (*KnowledgeBase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open knowledge base %s: %w", path, err)
	}
	defer f.Close()

	return LoadKnowledgeBase(f)
}

func LoadKnowledgeBase(r io.Reader) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := jsoniter.NewDecoder(r).Decode(&kb); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}

	if err := validator.New().Struct(&kb); err != nil {
		return nil, fmt.Errorf("validate knowledge base: %w", err)
	}

	if err := kb.compile(); err != nil {
		return nil, err
	}

	return &kb, nil
}

func (kb *KnowledgeBase) compile() error {
	tag, err := language.Parse(kb.Language)
	if err != nil {
		return fmt.Errorf("knowledge base language %q: %w", kb.Language, err)
	}
	kb.tag = tag
	kb.AuthorMarker = cleanText(kb.AuthorMarker)

	kb.greetingTokens = make([][]string, 0, len(kb.Greetings))
	for i, g := range kb.Greetings {
		kb.Greetings[i] = cleanText(g)
		kb.greetingTokens = append(kb.greetingTokens, tokenize(kb.Greetings[i]))
	}

	kb.Thanks = cleanAll(kb.Thanks)
	if len(kb.Thanks) > 0 && len(kb.Responses.Thanks) == 0 {
		return fmt.Errorf("knowledge base has thanks phrases but no thanks responses")
	}

	for i := range kb.Intents {
		kb.Intents[i].Phrases = cleanAll(kb.Intents[i].Phrases)
	}

	caser := cases.Title(tag)
	for i := range kb.Genres {
		kb.Genres[i].Keyword = cleanText(kb.Genres[i].Keyword)
		kb.Genres[i].canonical = caser.String(kb.Genres[i].Genre)
	}
	for i := range kb.Authors {
		kb.Authors[i].Keyword = cleanText(kb.Authors[i].Keyword)
	}
	for i := range kb.Titles {
		kb.Titles[i].Keyword = cleanText(kb.Titles[i].Keyword)
	}
	for i := range kb.Availability {
		kb.Availability[i].Keyword = cleanText(kb.Availability[i].Keyword)
	}

	for i := range kb.BookPatterns {
		re, err := regexp.Compile(kb.BookPatterns[i].Pattern)
		if err != nil {
			return fmt.Errorf("book pattern %q: %w", kb.BookPatterns[i].Pattern, err)
		}
		kb.BookPatterns[i].re = re
	}

	kb.Recommend.Popular = cleanAll(kb.Recommend.Popular)
	kb.Recommend.New = cleanAll(kb.Recommend.New)

	kb.stopWords = toSet(kb.Fuzzy.StopWords)
	kb.fillers = toSet(kb.SearchFillers)
	kb.excludedTerms = toSet(kb.SearchExcludedTerms)

	return nil
}

// GenreNames lists the distinct canonical genres in table order.
func (kb *KnowledgeBase) GenreNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, g := range kb.Genres {
		if seen[g.canonical] {
			continue
		}
		seen[g.canonical] = true
		names = append(names, g.canonical)
	}
	return names
}

func (kb *KnowledgeBase) AuthorNames() []string {
	names := make([]string, 0, len(kb.Authors))
	for _, a := range kb.Authors {
		names = append(names, a.Name)
	}
	return names
}

// TitleNames lists the distinct canonical titles in table order.
func (kb *KnowledgeBase) TitleNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range kb.Titles {
		if seen[t.Title] {
			continue
		}
		seen[t.Title] = true
		names = append(names, t.Title)
	}
	return names
}

func (kb *KnowledgeBase) LanguageTag() language.Tag {
	return kb.tag
}

func cleanAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = cleanText(v)
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[cleanText(v)] = true
	}
	return set
}
