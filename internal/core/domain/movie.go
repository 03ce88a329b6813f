package domain

import "time"

// Genre is the closed set of movie genres.
type Genre string

const (
	GenreAction         Genre = "Action"
	GenreAdventure      Genre = "Adventure"
	GenreAnimation      Genre = "Animation"
	GenreComedy         Genre = "Comedy"
	GenreDocumentary    Genre = "Documentary"
	GenreDrama          Genre = "Drama"
	GenreFantasy        Genre = "Fantasy"
	GenreHorror         Genre = "Horror"
	GenreRomance        Genre = "Romance"
	GenreScienceFiction Genre = "ScienceFiction"
	GenreThriller       Genre = "Thriller"
)

var genres = map[Genre]struct{}{
	GenreAction:         {},
	GenreAdventure:      {},
	GenreAnimation:      {},
	GenreComedy:         {},
	GenreDocumentary:    {},
	GenreDrama:          {},
	GenreFantasy:        {},
	GenreHorror:         {},
	GenreRomance:        {},
	GenreScienceFiction: {},
	GenreThriller:       {},
}

// Valid reports whether g is one of the known genres.
func (g Genre) Valid() bool {
	_, ok := genres[g]
	return ok
}

// DateLayout is the wire format of DateOfRelease.
const DateLayout = "2006-01-02"

// Movie is owned by exactly one user through UserID; only the owner may mutate it.
type Movie struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Author        string    `json:"author"`
	Genre         Genre     `json:"genre"`
	DateOfRelease time.Time `json:"date_of_release"`
	UserID        string    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
