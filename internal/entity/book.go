package entity

import (
	"time"

	"github.com/varshasramu/Smart-library-assistant/pkg/nlp"
)

type Book struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Author    string    `db:"author"`
	Genre     string    `db:"genre"`
	Synopsis  string    `db:"synopsis"`
	Available bool      `db:"available"`
	Copies    int       `db:"copies"`
	AddedAt   time.Time `db:"added_at"`
}

// CatalogEntry is the view of the book the voice interpreter matches against.
func (b Book) CatalogEntry() nlp.Book {
	return nlp.Book{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Genre:     b.Genre,
		Synopsis:  b.Synopsis,
		Available: b.Available,
		Copies:    b.Copies,
	}
}

func CatalogEntries(books []Book) []nlp.Book {
	entries := make([]nlp.Book, 0, len(books))
	for _, b := range books {
		entries = append(entries, b.CatalogEntry())
	}
	return entries
}

// BookAvailability values accepted by catalog filters.
const (
	AvailabilityAll       = "all"
	AvailabilityAvailable = nlp.AvailabilityAvailable
	AvailabilityBorrowed  = nlp.AvailabilityBorrowed
)

const DefaultRecommendationGenre = "Fantasy"
