package nlp

type IntentKind string

const (
	IntentSearch      IntentKind = "search"
	IntentRecommend   IntentKind = "recommend"
	IntentBorrow      IntentKind = "borrow"
	IntentHelp        IntentKind = "help"
	IntentStatus      IntentKind = "status"
	IntentGenreBrowse IntentKind = "genre_browse"
	IntentGreeting    IntentKind = "greeting"
	IntentUnknown     IntentKind = "unknown"
)

// IsValid reports whether k is one of the known intent kinds.
func (k IntentKind) IsValid() bool {
	switch k {
	case IntentSearch, IntentRecommend, IntentBorrow, IntentHelp, IntentStatus,
		IntentGenreBrowse, IntentGreeting, IntentUnknown:
		return true
	default:
		return false
	}
}

const (
	AvailabilityAvailable = "available"
	AvailabilityBorrowed  = "borrowed"
)

// Preference narrows a recommendation request that names no genre.
const (
	PreferencePopular = "popular"
	PreferenceNew     = "new"
)

const (
	MatchSourcePattern = "pattern"
	MatchSourceFuzzy   = "fuzzy"
)

// Book is the read-only view of a catalog record the interpreter matches against.
type Book struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre"`
	Synopsis  string `json:"synopsis"`
	Available bool   `json:"available"`
	Copies    int    `json:"copies"`
}

type ExtractedEntities struct {
	Genre        string `json:"genre,omitempty"`
	Author       string `json:"author,omitempty"`
	Title        string `json:"title,omitempty"`
	Availability string `json:"availability,omitempty"`
	SearchTerm   string `json:"search_term,omitempty"`
	Preference   string `json:"preference,omitempty"`
}

func (e ExtractedEntities) IsEmpty() bool {
	return e == ExtractedEntities{}
}

type IntentResult struct {
	Kind         IntentKind        `json:"kind"`
	Entities     ExtractedEntities `json:"entities"`
	ResponseText string            `json:"response_text"`
	MatchedBook  *Book             `json:"matched_book,omitempty"`
	MatchSource  string            `json:"match_source,omitempty"`
}

// RandomSource picks response variants. *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type IInterpreter interface {
	Interpret(utterance string, catalog []Book) IntentResult
	Knowledge() *KnowledgeBase
}
