package catalog

import (
	"time"

	"github.com/varshasramu/Smart-library-assistant/internal/entity"
)

type BookFilter struct {
	Genre        string `query:"genre" validate:"max=64"`
	Availability string `query:"availability" validate:"omitempty,oneof=all available borrowed"`
	Query        string `query:"q" validate:"max=200"`
}

type CreateBookRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Author   string `json:"author" validate:"required,max=255"`
	Genre    string `json:"genre" validate:"required,max=64"`
	Synopsis string `json:"synopsis" validate:"required,max=2000"`
	Copies   int    `json:"copies" validate:"required,min=1,max=1000"`
}

type BookResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	Synopsis  string    `json:"synopsis"`
	Available bool      `json:"available"`
	Copies    int       `json:"copies"`
	AddedAt   time.Time `json:"added_at"`
}

type BooksResponse struct {
	Books []BookResponse `json:"books"`
	Total int            `json:"total"`
}

type StatsResponse struct {
	TotalBooks     int    `json:"total_books"`
	AvailableBooks int    `json:"available_books"`
	BorrowedBooks  int    `json:"borrowed_books"`
	PopularGenre   string `json:"popular_genre"`
}

func MakeBookResponse(b entity.Book) BookResponse {
	return BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Genre:     b.Genre,
		Synopsis:  b.Synopsis,
		Available: b.Available,
		Copies:    b.Copies,
		AddedAt:   b.AddedAt,
	}
}

func MakeBooksResponse(books []entity.Book) BooksResponse {
	res := BooksResponse{Books: make([]BookResponse, 0, len(books)), Total: len(books)}
	for _, b := range books {
		res.Books = append(res.Books, MakeBookResponse(b))
	}
	return res
}
