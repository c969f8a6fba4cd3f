package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/dto"
)

type ReviewsController struct {
	*resource[dto.ReviewDTO, dto.ReviewCreateDTO, dto.ReviewUpdateDTO]
	reviews ReviewService
}

func NewReviewsController(svc ReviewService, recorder ChangeRecorder, log logrus.FieldLogger) *ReviewsController {
	return &ReviewsController{
		resource: newResource[dto.ReviewDTO, dto.ReviewCreateDTO, dto.ReviewUpdateDTO](
			"review", "/api/reviews", svc,
			func(r dto.ReviewDTO) uint { return r.ID },
			func(dto.ReviewDTO) string { return "" },
			func(r dto.ReviewUpdateDTO) uint { return r.ID },
			recorder, log,
		),
		reviews: svc,
	}
}

func (rc *ReviewsController) RegisterRoutes(api *gin.RouterGroup) {
	rc.register(api.Group("/reviews"), rc.List)
}

// List handles GET /api/reviews, optionally filtered by userName.
func (rc *ReviewsController) List(c *gin.Context) {
	name := c.Query("userName")
	if name == "" {
		rc.resource.List(c)
		return
	}
	reviews, err := rc.reviews.GetReviewsByUserName(c.Request.Context(), name)
	if err != nil {
		respondLookupError(c, rc.log, err, "reviews by user")
		return
	}
	c.JSON(http.StatusOK, reviews)
}
