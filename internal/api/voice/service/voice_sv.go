package voiceService

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/catalog"
	"github.com/varshasramu/Smart-library-assistant/internal/api/voice"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	contextPkg "github.com/varshasramu/Smart-library-assistant/pkg/context"
	"github.com/varshasramu/Smart-library-assistant/pkg/metrics"
	"github.com/varshasramu/Smart-library-assistant/pkg/nlp"
)

// ProcessCommand interprets one utterance against the current catalog and works out
// what the UI should show. It only reads the catalog.
func (s *voiceService) ProcessCommand(ctx context.Context, text string, transport string) (voice.CommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	start := time.Now()
	defer func() {
		metrics.VoiceCommandDuration.WithLabelValues(transport).Observe(time.Since(start).Seconds())
	}()

	// Blank input is still interpreted (as unknown) but needs no catalog.
	var books []entity.Book
	if strings.TrimSpace(text) != "" {
		var err error
		books, err = s.catalog.GetCatalogSnapshot(ctx)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to load catalog snapshot")
			return voice.CommandResponse{}, err
		}
	}

	result := s.interpreter.Interpret(text, entity.CatalogEntries(books))

	res := voice.CommandResponse{
		Transcript:   text,
		Kind:         result.Kind,
		Entities:     result.Entities,
		ResponseText: result.ResponseText,
		MatchSource:  result.MatchSource,
		Books:        []catalog.BookResponse{},
	}

	action, results, err := s.resolveAction(ctx, result, books)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"kind":       result.Kind,
			"error":      err.Error(),
		}).Error("Failed to resolve voice action")
		return voice.CommandResponse{}, err
	}

	res.Action = action
	res.Books = catalog.MakeBooksResponse(results).Books
	if result.MatchedBook != nil {
		if book, ok := findBook(books, result.MatchedBook.ID); ok {
			matched := catalog.MakeBookResponse(book)
			res.MatchedBook = &matched
		}
		res.OpenBorrowForm = result.Kind == nlp.IntentBorrow
	}

	metrics.VoiceInterpretations.WithLabelValues(string(result.Kind), metrics.MatchSourceLabel(result.MatchSource)).Inc()
	metrics.VoiceActions.WithLabelValues(action).Inc()

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"transport":    transport,
		"kind":         result.Kind,
		"action":       action,
		"match_source": metrics.MatchSourceLabel(result.MatchSource),
		"results":      len(res.Books),
	}).Info("Voice command interpreted")

	return res, nil
}

// resolveAction maps an interpretation onto a UI action and the books that go with
// it. A matched book always wins.
func (s *voiceService) resolveAction(ctx context.Context, result nlp.IntentResult, books []entity.Book) (string, []entity.Book, error) {
	e := result.Entities

	if result.MatchedBook != nil {
		if book, ok := findBook(books, result.MatchedBook.ID); ok {
			return voice.ActionShowBook, []entity.Book{book}, nil
		}
	}

	switch result.Kind {
	case nlp.IntentSearch, nlp.IntentGenreBrowse:
		switch {
		case e.Genre != "":
			return voice.ActionFilterGenre, filterBooks(books, byGenre(e.Genre), byAvailability(e.Availability)), nil
		case e.Author != "":
			return voice.ActionSearch, filterBooks(books, byAuthor(e.Author)), nil
		case e.Title != "":
			return voice.ActionSearch, filterBooks(books, byTitle(e.Title)), nil
		case e.Availability != "":
			return voice.ActionFilterAvailability, filterBooks(books, byAvailability(e.Availability)), nil
		case e.SearchTerm != "":
			return voice.ActionSearch, filterBooks(books, byTerm(e.SearchTerm)), nil
		}
		return voice.ActionSearch, nil, nil
	case nlp.IntentRecommend:
		recommended, err := s.recommend(ctx, e, books)
		return voice.ActionRecommend, recommended, err
	case nlp.IntentBorrow:
		return voice.ActionBorrow, nil, nil
	case nlp.IntentHelp:
		return voice.ActionHelp, nil, nil
	case nlp.IntentStatus:
		if e.Availability != "" {
			return voice.ActionFilterAvailability, filterBooks(books, byAvailability(e.Availability)), nil
		}
		return voice.ActionStatus, nil, nil
	case nlp.IntentGreeting:
		return voice.ActionGreet, nil, nil
	default:
		return voice.ActionClarify, nil, nil
	}
}

func (s *voiceService) recommend(ctx context.Context, e nlp.ExtractedEntities, books []entity.Book) ([]entity.Book, error) {
	switch {
	case e.Genre != "":
		return s.catalog.GetRecommendations(ctx, e.Genre)
	case e.Author != "":
		return filterBooks(books, byAuthor(e.Author), byAvailability(nlp.AvailabilityAvailable)), nil
	case e.Preference == nlp.PreferencePopular:
		return s.popular(ctx, books)
	case e.Preference == nlp.PreferenceNew:
		return s.catalog.GetNewestBooks(ctx, newestRecommendationLimit)
	default:
		return nil, nil
	}
}

// popular resolves the most borrowed titles against the snapshot, skipping titles
// whose book has since left the catalog.
func (s *voiceService) popular(ctx context.Context, books []entity.Book) ([]entity.Book, error) {
	if s.popularity == nil {
		return nil, nil
	}

	titles, err := s.popularity.GetPopularTitles(ctx, popularRecommendationLimit)
	if err != nil {
		return nil, err
	}

	res := make([]entity.Book, 0, len(titles))
	for _, t := range titles {
		if book, ok := findBook(books, t.BookID); ok {
			res = append(res, book)
		}
	}
	return res, nil
}

type bookFilter func(entity.Book) bool

func filterBooks(books []entity.Book, filters ...bookFilter) []entity.Book {
	res := make([]entity.Book, 0)
	for _, b := range books {
		keep := true
		for _, f := range filters {
			if !f(b) {
				keep = false
				break
			}
		}
		if keep {
			res = append(res, b)
		}
	}
	return res
}

func byGenre(genre string) bookFilter {
	return func(b entity.Book) bool {
		return strings.EqualFold(b.Genre, genre)
	}
}

func byAuthor(author string) bookFilter {
	return func(b entity.Book) bool {
		return containsFold(b.Author, author)
	}
}

func byTitle(title string) bookFilter {
	return func(b entity.Book) bool {
		return containsFold(b.Title, title)
	}
}

// byAvailability keeps every book when no availability was asked for.
func byAvailability(availability string) bookFilter {
	return func(b entity.Book) bool {
		switch availability {
		case nlp.AvailabilityAvailable:
			return b.Available
		case nlp.AvailabilityBorrowed:
			return !b.Available
		default:
			return true
		}
	}
}

func byTerm(term string) bookFilter {
	return func(b entity.Book) bool {
		return containsFold(b.Title, term) ||
			containsFold(b.Author, term) ||
			containsFold(b.Genre, term) ||
			containsFold(b.Synopsis, term)
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func findBook(books []entity.Book, id string) (entity.Book, bool) {
	for _, b := range books {
		if b.ID == id {
			return b, true
		}
	}
	return entity.Book{}, false
}
