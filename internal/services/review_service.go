package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/dto"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/patch"
	"github.com/mrlokans/catalog/internal/result"
)

// ReviewService manages reviews. A review references both a book and a user.
type ReviewService struct {
	reviews ReviewRepository
	books   Getter[entities.Book]
	users   Getter[entities.User]
	crud    crud[entities.Review, *entities.Review, dto.ReviewDTO]
}

func NewReviewService(reviews ReviewRepository, books Getter[entities.Book], users Getter[entities.User], log logrus.FieldLogger) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		books:   books,
		users:   users,
		crud:    crud[entities.Review, *entities.Review, dto.ReviewDTO]{kind: "Review", store: reviews, toDTO: dto.ToReviewDTO, log: log},
	}
}

func (s *ReviewService) GetAll(ctx context.Context) ([]dto.ReviewDTO, error) {
	return s.crud.getAll(ctx)
}

func (s *ReviewService) GetByID(ctx context.Context, id uint) (dto.ReviewDTO, error) {
	return s.crud.getByID(ctx, id)
}

// GetReviewsByUserName lists the reviews written by the named user.
func (s *ReviewService) GetReviewsByUserName(ctx context.Context, name string) ([]dto.ReviewDTO, error) {
	reviews, err := s.reviews.GetReviewsByUserName(ctx, name)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("User '%s' not found.", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of %q: %w", name, err)
	}
	return dto.ToReviewDTOs(reviews), nil
}

func (s *ReviewService) GetReviewsByBook(ctx context.Context, bookID uint) ([]dto.ReviewDTO, error) {
	ok, err := exists(ctx, s.books, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", bookID, err)
	}
	if !ok {
		return nil, notFoundf("Book with ID %d not found.", bookID)
	}
	reviews, err := s.reviews.GetReviewsByBookID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of book %d: %w", bookID, err)
	}
	return dto.ToReviewDTOs(reviews), nil
}

// ReviewHasValidReferences reports whether both the book and the user exist.
func (s *ReviewService) ReviewHasValidReferences(ctx context.Context, bookID, userID uint) (bool, error) {
	missing, err := s.missingReference(ctx, bookID, userID)
	return missing == "", err
}

// missingReference names the first reference that does not resolve.
func (s *ReviewService) missingReference(ctx context.Context, bookID, userID uint) (string, error) {
	ok, err := exists(ctx, s.books, bookID)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf("Book with ID %d does not exist.", bookID), nil
	}
	ok, err = exists(ctx, s.users, userID)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf("User with ID %d does not exist.", userID), nil
	}
	return "", nil
}

func (s *ReviewService) Create(ctx context.Context, in dto.ReviewCreateDTO) result.Result[dto.ReviewDTO] {
	missing, err := s.missingReference(ctx, in.BookID, in.UserID)
	if err != nil {
		return result.Failf[dto.ReviewDTO](result.CodeInternal, "Unexpected error occurred: %v", err)
	}
	if missing != "" {
		return result.Fail[dto.ReviewDTO](result.CodeValidation, missing)
	}

	review := dto.ReviewFromCreate(in)
	return s.crud.create(ctx, &review)
}

func (s *ReviewService) Delete(ctx context.Context, id uint) result.Result[dto.ReviewDTO] {
	return s.crud.delete(ctx, id)
}

func (s *ReviewService) UpdateFull(ctx context.Context, in dto.ReviewUpdateDTO) result.Result[dto.ReviewDTO] {
	return s.crud.update(ctx, in.ID, func(r *entities.Review) error {
		dto.ApplyReviewUpdate(r, in)
		return nil
	})
}

func (s *ReviewService) UpdatePartial(ctx context.Context, id uint, doc patch.Document) result.Result[dto.ReviewDTO] {
	return s.crud.patch(ctx, id, doc, dto.ReviewPatchTable, infallible(dto.ApplyReviewDTO))
}
