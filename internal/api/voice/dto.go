package voice

import (
	"github.com/varshasramu/Smart-library-assistant/internal/api/catalog"
	"github.com/varshasramu/Smart-library-assistant/pkg/nlp"
)

// Actions tell the UI which view to bring up for an interpreted command.
const (
	ActionShowBook           = "show_book"
	ActionFilterGenre        = "filter_genre"
	ActionSearch             = "search"
	ActionFilterAvailability = "filter_availability"
	ActionRecommend          = "recommend"
	ActionBorrow             = "borrow"
	ActionHelp               = "help"
	ActionStatus             = "status"
	ActionGreet              = "greet"
	ActionClarify            = "clarify"
)

const (
	TransportHTTP      = "http"
	TransportWebSocket = "websocket"
)

type CommandRequest struct {
	Text string `json:"text"`
}

type CommandResponse struct {
	Transcript     string                 `json:"transcript"`
	Kind           nlp.IntentKind         `json:"kind"`
	Entities       nlp.ExtractedEntities  `json:"entities"`
	ResponseText   string                 `json:"response_text"`
	Action         string                 `json:"action"`
	MatchedBook    *catalog.BookResponse  `json:"matched_book,omitempty"`
	MatchSource    string                 `json:"match_source,omitempty"`
	Books          []catalog.BookResponse `json:"books"`
	OpenBorrowForm bool                   `json:"open_borrow_form"`
}

type CapabilitiesResponse struct {
	Genres   []string `json:"genres"`
	Authors  []string `json:"authors"`
	Titles   []string `json:"titles"`
	Examples []string `json:"examples"`
}

type ErrorFrame struct {
	Error string `json:"error"`
}
