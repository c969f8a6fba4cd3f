// Package seed loads the sample catalog into an empty store.
package seed

import (
	"context"
	"fmt"

	"github.com/mrlokans/catalog/internal/dto"
	"github.com/mrlokans/catalog/internal/result"
	"github.com/mrlokans/catalog/internal/services"
)

// Services are the catalog services the sample data is written through, so
// that every cross-entity check applies to it as well.
type Services struct {
	Users    *services.UserService
	Authors  *services.AuthorService
	Books    *services.BookService
	Chapters *services.ChapterService
	Reviews  *services.ReviewService
}

type sampleAuthor struct {
	user  dto.UserCreateDTO
	books []sampleBook
}

type sampleBook struct {
	book     dto.BookCreateDTO
	chapters []dto.ChapterCreateDTO
}

type sampleReview struct {
	book     string
	username string
	review   dto.ReviewCreateDTO
}

var catalog = []sampleAuthor{
	{
		user: dto.UserCreateDTO{Username: "George", Password: "testpass", Name: "J.R.R Tolkien"},
		books: []sampleBook{{
			book: dto.BookCreateDTO{
				Name:        "Lord of the Rings",
				Title:       "Lord of the Rings",
				Genre:       "Fantasy",
				Description: "Epic fantasy adventure set in the land of Middle Earth starring Froddo Baggings",
				Rating:      5,
			},
			chapters: []dto.ChapterCreateDTO{
				{Title: "The first step", Content: "Froddo finds the One Ring and meets Gandalf", ReadCount: 1, ChapterNumber: 1},
				{Title: "The Nazgul", Content: "Froddo and Sam have to flee a Nazgul to escape the Shire", ReadCount: 1, ChapterNumber: 2},
				{Title: "The FellowShip of the Ring", Content: "Froddo and Sam meet Aragon", ReadCount: 1, ChapterNumber: 3},
			},
		}},
	},
	{
		user: dto.UserCreateDTO{Username: "Margaret", Password: "testpass2", Name: "J.K. Rowling"},
		books: []sampleBook{{
			book: dto.BookCreateDTO{
				Name:        "Harry Potter",
				Title:       "Harry Potter",
				Genre:       "Action",
				Description: "Adventures of Harry Potter in a world of Wizardy and Magic",
				ReadCount:   1,
				Rating:      4,
			},
			chapters: []dto.ChapterCreateDTO{
				{Title: "The Boy who Lived", Content: "Harry gets invited to the Hogwarts School of Wizardy and Magic by Hagrid", ReadCount: 1, ChapterNumber: 1},
			},
		}},
	},
	{
		user: dto.UserCreateDTO{Username: "Colfer", Password: "testpass3", Name: "Eoin Colfer"},
		books: []sampleBook{{
			book: dto.BookCreateDTO{
				Name:        "Artemis Fowl",
				Title:       "Artemis Fowl",
				Genre:       "Scifi",
				Description: "Adventures of Artemis Fowl and Holly Short",
				ReadCount:   2,
				Rating:      4,
			},
			chapters: []dto.ChapterCreateDTO{
				{Title: "The Azure Gem", Content: "Artemis Fowl tricks an old fairy into handing him the secret book of the fairies and decodes it", ReadCount: 1, ChapterNumber: 1},
				{Title: "The Police Capture", Content: "Artemis Fowl and Buttler kidnap Holly Short and demand a randsom from the LFPD for her release", ReadCount: 1, ChapterNumber: 2},
			},
		}},
	},
}

var reviews = []sampleReview{
	{book: "Lord of the Rings", username: "Margaret", review: dto.ReviewCreateDTO{Comment: "Great book!", Rating: 5}},
	{book: "Harry Potter", username: "George", review: dto.ReviewCreateDTO{Comment: "Fantastic book about a boy trying to find his own place in the world", Rating: 4}},
}

// Run writes the sample catalog unless users already exist. It returns the
// number of records created per entity; nil counts mean nothing was done.
func Run(ctx context.Context, svc Services) (map[string]int, error) {
	existing, err := svc.Users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, nil
	}

	counts := map[string]int{}
	userIDs := map[string]uint{}
	bookIDs := map[string]uint{}

	for _, a := range catalog {
		user, err := must(svc.Users.Create(ctx, a.user), "user "+a.user.Username)
		if err != nil {
			return counts, err
		}
		userIDs[user.Username] = user.ID
		counts["users"]++

		author, err := must(svc.Authors.Create(ctx, dto.AuthorCreateDTO{UserID: user.ID, Name: user.Name}), "author "+user.Name)
		if err != nil {
			return counts, err
		}
		counts["authors"]++

		for _, b := range a.books {
			in := b.book
			in.AuthorID = author.ID
			book, err := must(svc.Books.Create(ctx, in), "book "+in.Name)
			if err != nil {
				return counts, err
			}
			bookIDs[book.Name] = book.ID
			counts["books"]++

			for _, ch := range b.chapters {
				ch.BookID = book.ID
				if _, err := must(svc.Chapters.Create(ctx, ch), "chapter "+ch.Title); err != nil {
					return counts, err
				}
				counts["chapters"]++
			}
		}
	}

	for _, r := range reviews {
		in := r.review
		in.BookID = bookIDs[r.book]
		in.UserID = userIDs[r.username]
		if _, err := must(svc.Reviews.Create(ctx, in), "review of "+r.book); err != nil {
			return counts, err
		}
		counts["reviews"]++
	}

	return counts, nil
}

func must[T any](res result.Result[T], what string) (T, error) {
	if !res.Success {
		var zero T
		return zero, fmt.Errorf("failed to seed %s: %w", what, res.Err())
	}
	return *res.Data, nil
}
