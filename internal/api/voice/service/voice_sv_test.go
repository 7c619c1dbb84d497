package voiceService

import (
	"context"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varshasramu/Smart-library-assistant/internal/api/borrowing"
	"github.com/varshasramu/Smart-library-assistant/internal/api/catalog"
	"github.com/varshasramu/Smart-library-assistant/internal/api/voice"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	"github.com/varshasramu/Smart-library-assistant/pkg/nlp"
)

type fakeCatalog struct {
	books       []entity.Book
	err         error
	genresAsked []string
}

func (f *fakeCatalog) GetCatalogSnapshot(context.Context) ([]entity.Book, error) {
	return f.books, f.err
}

func (f *fakeCatalog) GetRecommendations(_ context.Context, genre string) ([]entity.Book, error) {
	f.genresAsked = append(f.genresAsked, genre)
	var res []entity.Book
	for _, b := range f.books {
		if b.Genre == genre && b.Available && len(res) < 3 {
			res = append(res, b)
		}
	}
	return res, nil
}

func (f *fakeCatalog) GetNewestBooks(_ context.Context, limit int) ([]entity.Book, error) {
	res := make([]entity.Book, 0, limit)
	for i := len(f.books) - 1; i >= 0 && len(res) < limit; i-- {
		res = append(res, f.books[i])
	}
	return res, nil
}

type fakePopularity struct {
	titles []borrowing.PopularTitle
}

func (f *fakePopularity) GetPopularTitles(context.Context, int) ([]borrowing.PopularTitle, error) {
	return f.titles, nil
}

func sampleBooks() []entity.Book {
	var books []entity.Book
	for _, b := range nlp.SampleCatalog() {
		books = append(books, entity.Book{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			Genre:     b.Genre,
			Synopsis:  b.Synopsis,
			Available: b.Available,
			Copies:    b.Copies,
		})
	}
	return books
}

func newTestService(t *testing.T, cat *fakeCatalog, pop PopularityReader) IVoiceService {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	interpreter := nlp.NewInterpreter(nlp.MustDefaultKnowledgeBase(), nlp.WithRandomSource(rand.New(rand.NewPCG(3, 4))))
	return NewVoiceService(log, interpreter, cat, pop)
}

func titles(books []catalog.BookResponse) []string {
	res := make([]string, 0, len(books))
	for _, b := range books {
		res = append(res, b.Title)
	}
	return res
}

func TestProcessCommand_Actions(t *testing.T) {
	svc := newTestService(t, &fakeCatalog{books: sampleBooks()}, &fakePopularity{
		titles: []borrowing.PopularTitle{{BookID: "2", Title: "A Brief History of Time", BorrowCount: 3}, {BookID: "gone", Title: "Removed", BorrowCount: 2}},
	})

	tests := []struct {
		utterance string
		action    string
		kind      nlp.IntentKind
	}{
		{"find the hobbit", voice.ActionShowBook, nlp.IntentSearch},
		{"find fantasy books", voice.ActionFilterGenre, nlp.IntentSearch},
		{"mystery novels", voice.ActionFilterGenre, nlp.IntentGenreBrowse},
		{"find books by pratchett", voice.ActionSearch, nlp.IntentSearch},
		{"show available books", voice.ActionFilterAvailability, nlp.IntentStatus},
		{"recommend something popular", voice.ActionRecommend, nlp.IntentRecommend},
		{"i want to borrow a book", voice.ActionBorrow, nlp.IntentBorrow},
		{"what can you do", voice.ActionHelp, nlp.IntentHelp},
		{"hello", voice.ActionGreet, nlp.IntentGreeting},
		{"the weather is nice", voice.ActionClarify, nlp.IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			res, err := svc.ProcessCommand(context.Background(), tt.utterance, voice.TransportHTTP)
			require.NoError(t, err)

			assert.Equal(t, tt.action, res.Action)
			assert.Equal(t, tt.kind, res.Kind)
			assert.NotEmpty(t, res.ResponseText)
			assert.NotNil(t, res.Books)
		})
	}
}

func TestProcessCommand_ShowBook(t *testing.T) {
	svc := newTestService(t, &fakeCatalog{books: sampleBooks()}, nil)

	res, err := svc.ProcessCommand(context.Background(), "find the hobbit", voice.TransportHTTP)
	require.NoError(t, err)

	require.NotNil(t, res.MatchedBook)
	assert.Equal(t, "The Hobbit", res.MatchedBook.Title)
	assert.Equal(t, nlp.MatchSourcePattern, res.MatchSource)
	assert.Equal(t, []string{"The Hobbit"}, titles(res.Books))
	assert.False(t, res.OpenBorrowForm)
}

func TestProcessCommand_BorrowMatchedBookOpensForm(t *testing.T) {
	svc := newTestService(t, &fakeCatalog{books: sampleBooks()}, nil)

	res, err := svc.ProcessCommand(context.Background(), "borrow the alchemist", voice.TransportWebSocket)
	require.NoError(t, err)

	assert.Equal(t, voice.ActionShowBook, res.Action)
	assert.Equal(t, nlp.IntentBorrow, res.Kind)
	assert.True(t, res.OpenBorrowForm)
}

func TestProcessCommand_GenreFilter(t *testing.T) {
	svc := newTestService(t, &fakeCatalog{books: sampleBooks()}, nil)

	res, err := svc.ProcessCommand(context.Background(), "find fantasy books", voice.TransportHTTP)
	require.NoError(t, err)

	require.NotEmpty(t, res.Books)
	for _, b := range res.Books {
		assert.Equal(t, "Fantasy", b.Genre)
	}
}

func TestProcessCommand_BorrowedFilter(t *testing.T) {
	svc := newTestService(t, &fakeCatalog{books: sampleBooks()}, nil)

	res, err := svc.ProcessCommand(context.Background(), "which books are unavailable", voice.TransportHTTP)
	require.NoError(t, err)

	assert.Equal(t, voice.ActionFilterAvailability, res.Action)
	require.Len(t, res.Books, 2)
	for _, b := range res.Books {
		assert.False(t, b.Available)
	}
}

func TestProcessCommand_Recommendations(t *testing.T) {
	t.Run("genre goes through the catalog", func(t *testing.T) {
		cat := &fakeCatalog{books: sampleBooks()}
		svc := newTestService(t, cat, nil)

		res, err := svc.ProcessCommand(context.Background(), "recommend fantasy", voice.TransportHTTP)
		require.NoError(t, err)

		assert.Equal(t, []string{"Fantasy"}, cat.genresAsked)
		for _, b := range res.Books {
			assert.True(t, b.Available)
		}
	})

	t.Run("popular skips titles no longer in the catalog", func(t *testing.T) {
		svc := newTestService(t, &fakeCatalog{books: sampleBooks()}, &fakePopularity{
			titles: []borrowing.PopularTitle{{BookID: "gone"}, {BookID: "2"}},
		})

		res, err := svc.ProcessCommand(context.Background(), "recommend something popular", voice.TransportHTTP)
		require.NoError(t, err)
		assert.Equal(t, []string{"A Brief History of Time"}, titles(res.Books))
	})

	t.Run("new books", func(t *testing.T) {
		svc := newTestService(t, &fakeCatalog{books: sampleBooks()}, nil)

		res, err := svc.ProcessCommand(context.Background(), "recommend something new", voice.TransportHTTP)
		require.NoError(t, err)
		assert.Len(t, res.Books, newestRecommendationLimit)
	})
}

func TestProcessCommand_Errors(t *testing.T) {
	svc := newTestService(t, &fakeCatalog{err: catalog.ErrCatalogNotReady}, nil)

	_, err := svc.ProcessCommand(context.Background(), "find fantasy books", voice.TransportHTTP)
	assert.ErrorIs(t, err, catalog.ErrCatalogNotReady)
}

func TestProcessCommand_BlankInputClarifies(t *testing.T) {
	// the snapshot would fail, so blank input must not depend on it
	svc := newTestService(t, &fakeCatalog{err: catalog.ErrCatalogNotReady}, nil)

	for _, text := range []string{"", "   ", "\t\n"} {
		res, err := svc.ProcessCommand(context.Background(), text, voice.TransportHTTP)
		require.NoError(t, err, "%q", text)

		assert.Equal(t, nlp.IntentUnknown, res.Kind, "%q", text)
		assert.Equal(t, voice.ActionClarify, res.Action, "%q", text)
		assert.NotEmpty(t, res.ResponseText, "%q", text)
		assert.Empty(t, res.Books, "%q", text)
		assert.Nil(t, res.MatchedBook, "%q", text)
	}
}

func TestCapabilities(t *testing.T) {
	svc := newTestService(t, &fakeCatalog{}, nil)

	caps := svc.Capabilities()

	assert.Contains(t, caps.Genres, "Fantasy")
	assert.Contains(t, caps.Authors, "Stephen Hawking")
	assert.Contains(t, caps.Titles, "The Hobbit")
	assert.NotEmpty(t, caps.Examples)
}
