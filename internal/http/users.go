package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/dto"
)

type UsersController struct {
	*resource[dto.UserDTO, dto.UserCreateDTO, dto.UserUpdateDTO]
}

func NewUsersController(svc UserService, recorder ChangeRecorder, log logrus.FieldLogger) *UsersController {
	return &UsersController{
		resource: newResource[dto.UserDTO, dto.UserCreateDTO, dto.UserUpdateDTO](
			"user", "/api/users", svc,
			func(u dto.UserDTO) uint { return u.ID },
			func(u dto.UserDTO) string { return u.Username },
			func(u dto.UserUpdateDTO) uint { return u.ID },
			recorder, log,
		),
	}
}

func (uc *UsersController) RegisterRoutes(api *gin.RouterGroup) {
	uc.register(api.Group("/users"), nil)
}
