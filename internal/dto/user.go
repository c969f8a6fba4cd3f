package dto

import (
	"time"

	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/patch"
)

// UserDTO is the read shape of a user. Password can be patched but is never
// serialized or readable through a patch.
type UserDTO struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Password    string    `json:"-"`
	Name        string    `json:"name"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
}

type UserCreateDTO struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"max=256"`
}

type UserUpdateDTO struct {
	ID       uint   `json:"id" binding:"required"`
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"max=256"`
}

func ToUserDTO(u entities.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Password:    u.Password,
		Name:        u.Name,
		CreatedDate: u.CreatedDate,
		UpdatedDate: u.UpdatedDate,
	}
}

func ToUserDTOs(users []entities.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}

func UserFromCreate(in UserCreateDTO) entities.User {
	return entities.User{
		Username: in.Username,
		Password: in.Password,
		Name:     in.Name,
	}
}

// ApplyUserUpdate copies the mutable fields of in onto u.
func ApplyUserUpdate(u *entities.User, in UserUpdateDTO) {
	u.Username = in.Username
	u.Password = in.Password
	u.Name = in.Name
}

// ApplyUserDTO writes a patched DTO back onto u. Identity and dates stay as stored.
func ApplyUserDTO(u *entities.User, in UserDTO) {
	u.Username = in.Username
	u.Password = in.Password
	u.Name = in.Name
}

// UserPatchTable lists the members a user patch may address.
var UserPatchTable = patch.NewTable(map[string]patch.Field[UserDTO]{
	"id":          patch.Immutable(patch.Value(func(d *UserDTO) *uint { return &d.ID })),
	"username":    patch.Value(func(d *UserDTO) *string { return &d.Username }, patch.Required),
	"password":    patch.WriteOnly(patch.Value(func(d *UserDTO) *string { return &d.Password }, patch.Required)),
	"name":        patch.Value(func(d *UserDTO) *string { return &d.Name }),
	"createdDate": patch.Immutable(patch.Timestamp(func(d *UserDTO) *time.Time { return &d.CreatedDate })),
	"updatedDate": patch.Immutable(patch.Timestamp(func(d *UserDTO) *time.Time { return &d.UpdatedDate })),
})
