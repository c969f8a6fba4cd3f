package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/dto"
)

type AuthorsController struct {
	*resource[dto.AuthorDTO, dto.AuthorCreateDTO, dto.AuthorUpdateDTO]
	authors AuthorService
}

func NewAuthorsController(svc AuthorService, recorder ChangeRecorder, log logrus.FieldLogger) *AuthorsController {
	return &AuthorsController{
		resource: newResource[dto.AuthorDTO, dto.AuthorCreateDTO, dto.AuthorUpdateDTO](
			"author", "/api/authors", svc,
			func(a dto.AuthorDTO) uint { return a.ID },
			func(a dto.AuthorDTO) string { return a.Name },
			func(a dto.AuthorUpdateDTO) uint { return a.ID },
			recorder, log,
		),
		authors: svc,
	}
}

func (ac *AuthorsController) RegisterRoutes(api *gin.RouterGroup) {
	group := api.Group("/authors")
	ac.register(group, nil)
	group.GET("/:id/books", ac.Books)
	group.GET("/:id/user", ac.User)
}

// Books returns the author with every book they wrote.
// GET /api/authors/:id/books
func (ac *AuthorsController) Books(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	out, err := ac.authors.AuthorWithBooks(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, ac.log, err, "author books")
		return
	}
	c.JSON(http.StatusOK, out)
}

// User returns the author together with the user backing it.
// GET /api/authors/:id/user
func (ac *AuthorsController) User(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	res := ac.authors.AuthorWithUser(c.Request.Context(), id)
	if !res.Success {
		respondFailure(c, ac.log, res, "author user")
		return
	}
	c.JSON(http.StatusOK, res.Data)
}
