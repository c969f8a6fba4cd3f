package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/dto"
)

type ChaptersController struct {
	*resource[dto.ChapterDTO, dto.ChapterCreateDTO, dto.ChapterUpdateDTO]
	chapters ChapterService
}

func NewChaptersController(svc ChapterService, recorder ChangeRecorder, log logrus.FieldLogger) *ChaptersController {
	return &ChaptersController{
		resource: newResource[dto.ChapterDTO, dto.ChapterCreateDTO, dto.ChapterUpdateDTO](
			"chapter", "/api/chapters", svc,
			func(ch dto.ChapterDTO) uint { return ch.ID },
			func(ch dto.ChapterDTO) string { return ch.Title },
			func(ch dto.ChapterUpdateDTO) uint { return ch.ID },
			recorder, log,
		),
		chapters: svc,
	}
}

func (cc *ChaptersController) RegisterRoutes(api *gin.RouterGroup) {
	cc.register(api.Group("/chapters"), cc.List)
}

// List handles GET /api/chapters, optionally filtered by bookName.
func (cc *ChaptersController) List(c *gin.Context) {
	name := c.Query("bookName")
	if name == "" {
		cc.resource.List(c)
		return
	}
	chapters, err := cc.chapters.GetChaptersByBook(c.Request.Context(), name)
	if err != nil {
		respondLookupError(c, cc.log, err, "chapters by book")
		return
	}
	c.JSON(http.StatusOK, chapters)
}
