package entities

import (
	"fmt"
	"strings"
)

// Genre is a closed set of book genres, persisted by name.
type Genre string

const (
	GenreNone       Genre = ""
	GenreFantasy    Genre = "Fantasy"
	GenreAction     Genre = "Action"
	GenreScifi      Genre = "Scifi"
	GenreRomance    Genre = "Romance"
	GenreHorror     Genre = "Horror"
	GenreMystery    Genre = "Mystery"
	GenreThriller   Genre = "Thriller"
	GenreNonFiction Genre = "NonFiction"
	GenreBiography  Genre = "Biography"
)

// Genres lists every valid genre in declaration order.
var Genres = []Genre{
	GenreFantasy,
	GenreAction,
	GenreScifi,
	GenreRomance,
	GenreHorror,
	GenreMystery,
	GenreThriller,
	GenreNonFiction,
	GenreBiography,
}

// ParseGenre resolves a genre name case-insensitively. An empty string
// yields GenreNone.
func ParseGenre(s string) (Genre, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return GenreNone, nil
	}
	for _, g := range Genres {
		if strings.EqualFold(string(g), s) {
			return g, nil
		}
	}
	return GenreNone, fmt.Errorf("unknown genre %q", s)
}

func (g Genre) String() string {
	return string(g)
}
