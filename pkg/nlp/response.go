package nlp

import "strings"

func (in *Interpreter) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[in.rnd.IntN(len(pool))]
}

func fill(template string, pairs ...string) string {
	return strings.NewReplacer(pairs...).Replace(template)
}

func (in *Interpreter) respond(kind IntentKind, e ExtractedEntities, book *Book) string {
	r := in.kb.Responses

	switch kind {
	case IntentSearch:
		return in.searchResponse(e, book)
	case IntentRecommend:
		return in.recommendResponse(e)
	case IntentBorrow:
		title := e.Title
		if title == "" && book != nil {
			title = book.Title
		}
		if title != "" {
			return fill(r.BorrowTitle, "{title}", title)
		}
		return in.pick(r.BorrowAck)
	case IntentHelp:
		return in.pick(r.Help)
	case IntentStatus:
		switch e.Availability {
		case AvailabilityAvailable:
			return r.SearchAvailable
		case AvailabilityBorrowed:
			return r.SearchBorrowed
		}
		return r.Status
	case IntentGenreBrowse:
		return fill(r.GenreBrowse, "{genre}", e.Genre)
	case IntentGreeting:
		return in.pick(r.Greeting)
	default:
		return in.pick(r.Unknown)
	}
}

func (in *Interpreter) searchResponse(e ExtractedEntities, book *Book) string {
	r := in.kb.Responses

	switch {
	case book != nil:
		return fill(r.BookDetail, "{title}", book.Title, "{author}", book.Author)
	case e.Genre != "":
		return fill(r.SearchGenre, "{ack}", in.pick(r.SearchAck), "{genre}", e.Genre)
	case e.Author != "":
		return fill(r.SearchAuthor, "{ack}", in.pick(r.SearchAck), "{author}", e.Author)
	case e.Title != "":
		return fill(r.SearchTitle, "{ack}", in.pick(r.SearchAck), "{title}", e.Title)
	case e.Availability == AvailabilityAvailable:
		return r.SearchAvailable
	case e.Availability == AvailabilityBorrowed:
		return r.SearchBorrowed
	case e.SearchTerm != "":
		return fill(r.SearchTerm, "{term}", e.SearchTerm)
	default:
		return r.SearchClarify
	}
}

func (in *Interpreter) recommendResponse(e ExtractedEntities) string {
	r := in.kb.Responses

	switch {
	case e.Genre != "":
		return fill(r.RecommendGenre, "{ack}", in.pick(r.RecommendAck), "{genre}", e.Genre)
	case e.Author != "":
		return fill(r.SearchAuthor, "{ack}", in.pick(r.RecommendAck), "{author}", e.Author)
	case e.Preference == PreferencePopular:
		return fill(r.RecommendPopular, "{ack}", in.pick(r.RecommendAck))
	case e.Preference == PreferenceNew:
		return fill(r.RecommendNew, "{ack}", in.pick(r.RecommendAck))
	default:
		return r.RecommendClarify
	}
}
