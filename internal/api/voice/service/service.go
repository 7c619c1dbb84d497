package voiceService

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/varshasramu/Smart-library-assistant/internal/api/borrowing"
	"github.com/varshasramu/Smart-library-assistant/internal/api/voice"
	"github.com/varshasramu/Smart-library-assistant/internal/entity"
	"github.com/varshasramu/Smart-library-assistant/pkg/nlp"
)

const (
	popularRecommendationLimit = 3
	newestRecommendationLimit  = 3
)

type IVoiceService interface {
	ProcessCommand(ctx context.Context, text string, transport string) (voice.CommandResponse, error)
	Capabilities() voice.CapabilitiesResponse
}

// CatalogReader is the read side of the catalog the voice flow depends on.
type CatalogReader interface {
	GetCatalogSnapshot(c context.Context) ([]entity.Book, error)
	GetRecommendations(c context.Context, genre string) ([]entity.Book, error)
	GetNewestBooks(c context.Context, limit int) ([]entity.Book, error)
}

type PopularityReader interface {
	GetPopularTitles(c context.Context, limit int) ([]borrowing.PopularTitle, error)
}

type voiceService struct {
	log         *logrus.Logger
	interpreter nlp.IInterpreter
	catalog     CatalogReader
	popularity  PopularityReader
}

func NewVoiceService(
	log *logrus.Logger,
	interpreter nlp.IInterpreter,
	catalog CatalogReader,
	popularity PopularityReader,
) IVoiceService {
	return &voiceService{
		log:         log,
		interpreter: interpreter,
		catalog:     catalog,
		popularity:  popularity,
	}
}

func (s *voiceService) Capabilities() voice.CapabilitiesResponse {
	kb := s.interpreter.Knowledge()

	return voice.CapabilitiesResponse{
		Genres:   kb.GenreNames(),
		Authors:  kb.AuthorNames(),
		Titles:   kb.TitleNames(),
		Examples: append([]string{}, kb.Examples...),
	}
}
