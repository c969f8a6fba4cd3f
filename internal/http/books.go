package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/dto"
	"github.com/mrlokans/catalog/internal/entities"
)

type BooksController struct {
	*resource[dto.BookDTO, dto.BookCreateDTO, dto.BookUpdateDTO]
	books    BookService
	chapters ChapterService
	reviews  ReviewService
}

func NewBooksController(svc BookService, chapters ChapterService, reviews ReviewService, recorder ChangeRecorder, log logrus.FieldLogger) *BooksController {
	return &BooksController{
		resource: newResource[dto.BookDTO, dto.BookCreateDTO, dto.BookUpdateDTO](
			"book", "/api/books", svc,
			func(b dto.BookDTO) uint { return b.ID },
			func(b dto.BookDTO) string { return b.Name },
			func(b dto.BookUpdateDTO) uint { return b.ID },
			recorder, log,
		),
		books:    svc,
		chapters: chapters,
		reviews:  reviews,
	}
}

func (bc *BooksController) RegisterRoutes(api *gin.RouterGroup) {
	group := api.Group("/books")
	bc.register(group, bc.List)
	group.GET("/:id/chapters", bc.Chapters)
	group.GET("/:id/reviews", bc.Reviews)
}

// List handles GET /api/books with the optional genre and authorName filters.
func (bc *BooksController) List(c *gin.Context) {
	ctx := c.Request.Context()

	if raw, ok := c.GetQuery("genre"); ok {
		genre, err := entities.ParseGenre(raw)
		if err != nil || genre == entities.GenreNone {
			respondBadRequest(c, "invalid genre")
			return
		}
		books, err := bc.books.GetBooksByGenre(ctx, genre)
		if err != nil {
			respondLookupError(c, bc.log, err, "books by genre")
			return
		}
		c.JSON(http.StatusOK, books)
		return
	}

	if name := c.Query("authorName"); name != "" {
		books, err := bc.books.GetBooksByAuthorName(ctx, name)
		if err != nil {
			respondLookupError(c, bc.log, err, "books by author")
			return
		}
		c.JSON(http.StatusOK, books)
		return
	}

	bc.resource.List(c)
}

// Chapters lists the chapters of a book.
// GET /api/books/:id/chapters
func (bc *BooksController) Chapters(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	chapters, err := bc.chapters.GetChaptersByBookID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, bc.log, err, "book chapters")
		return
	}
	c.JSON(http.StatusOK, chapters)
}

// Reviews lists the reviews of a book.
// GET /api/books/:id/reviews
func (bc *BooksController) Reviews(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reviews, err := bc.reviews.GetReviewsByBook(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, bc.log, err, "book reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}
