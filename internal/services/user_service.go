package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/dto"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/patch"
	"github.com/mrlokans/catalog/internal/result"
)

type UserService struct {
	users UserRepository
	crud  crud[entities.User, *entities.User, dto.UserDTO]
}

func NewUserService(users UserRepository, log logrus.FieldLogger) *UserService {
	s := &UserService{
		users: users,
		crud:  crud[entities.User, *entities.User, dto.UserDTO]{kind: "User", store: users, toDTO: dto.ToUserDTO, log: log},
	}
	s.crud.conflict = s.renameConflict
	return s
}

func (s *UserService) GetAll(ctx context.Context) ([]dto.UserDTO, error) {
	return s.crud.getAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id uint) (dto.UserDTO, error) {
	return s.crud.getByID(ctx, id)
}

// GetByName matches the display name, ignoring case.
func (s *UserService) GetByName(ctx context.Context, name string) (dto.UserDTO, error) {
	user, err := s.users.Get(ctx, database.NameEquals("name", name), database.Untracked())
	return s.crud.byName(name, user, err)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (dto.UserDTO, error) {
	user, err := s.users.GetByUsername(ctx, username)
	return s.crud.byName(username, user, err)
}

func (s *UserService) IsUniqueUsername(ctx context.Context, username string) (bool, error) {
	return s.users.IsUniqueUsername(ctx, username)
}

// Create rejects a display name or username that is already taken.
func (s *UserService) Create(ctx context.Context, in dto.UserCreateDTO) result.Result[dto.UserDTO] {
	if in.Name != "" {
		dup, err := taken[entities.User](s.users.Get(ctx, database.NameEquals("name", in.Name), database.Untracked()))
		if err != nil {
			return result.Failf[dto.UserDTO](result.CodeInternal, "Unexpected error occurred: %v", err)
		}
		if dup {
			return result.Failf[dto.UserDTO](result.CodeConflict, "User '%s' already exists.", in.Name)
		}
	}
	unique, err := s.users.IsUniqueUsername(ctx, in.Username)
	if err != nil {
		return result.Failf[dto.UserDTO](result.CodeInternal, "Unexpected error occurred: %v", err)
	}
	if !unique {
		return result.Failf[dto.UserDTO](result.CodeConflict, "User '%s' already exists.", in.Username)
	}

	user := dto.UserFromCreate(in)
	return s.crud.create(ctx, &user)
}

func (s *UserService) Delete(ctx context.Context, id uint) result.Result[dto.UserDTO] {
	return s.crud.delete(ctx, id)
}

func (s *UserService) UpdateFull(ctx context.Context, in dto.UserUpdateDTO) result.Result[dto.UserDTO] {
	return s.crud.update(ctx, in.ID, func(u *entities.User) error {
		dto.ApplyUserUpdate(u, in)
		return nil
	})
}

func (s *UserService) UpdatePartial(ctx context.Context, id uint, doc patch.Document) result.Result[dto.UserDTO] {
	return s.crud.patch(ctx, id, doc, dto.UserPatchTable, infallible(dto.ApplyUserDTO))
}

// renameConflict applies the checks of Create to a changed user: neither
// the display name nor the username may belong to another user.
func (s *UserService) renameConflict(ctx context.Context, u *entities.User) (string, error) {
	if u.Name != "" {
		dup, err := heldByOther[entities.User](ctx, s.users, u.ID, database.NameEquals("name", u.Name))
		if err != nil {
			return "", err
		}
		if dup {
			return fmt.Sprintf("User '%s' already exists.", u.Name), nil
		}
	}
	dup, err := heldByOther[entities.User](ctx, s.users, u.ID, database.NameEquals("username", u.Username))
	if err != nil || !dup {
		return "", err
	}
	return fmt.Sprintf("User '%s' already exists.", u.Username), nil
}
