package auth

import (
	"context"
	"strings"

	"ecommerce/internal/domain/model"
	"ecommerce/internal/repository"
	"ecommerce/internal/usecase"
	"ecommerce/internal/validator"

	"github.com/pkg/errors"
)

// 空文字の項目は変更しない
type UpdateProfileInput struct {
	Username string
	Email    string
	Password string
}

type ProfileUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

// DI
func NewProfileUsecase(userRepo repository.UserRepository, hasher PasswordHasher) *ProfileUsecase {
	return &ProfileUsecase{userRepo: userRepo, hasher: hasher}
}

func (u *ProfileUsecase) Get(ctx context.Context, userID int64) (model.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, usecase.NewError(usecase.KindNotFound, "user not found with id %d", userID)
		}
		return model.User{}, usecase.WrapError(usecase.KindInternal, err, "find user")
	}
	return user, nil
}

func (u *ProfileUsecase) Update(ctx context.Context, userID int64, in UpdateProfileInput) (model.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if err := validator.ValidateProfileUpdate(in.Password, email); err != nil {
		return model.User{}, usecase.WrapError(usecase.KindInvalidArgument, err, "invalid profile")
	}

	user, err := u.Get(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	if username != "" && username != user.Username {
		other, err := u.userRepo.FindByUsername(ctx, username)
		if err == nil && other.ID != user.ID {
			return model.User{}, usecase.NewError(usecase.KindConflict, "username %q is already taken", username)
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return model.User{}, usecase.WrapError(usecase.KindInternal, err, "find user")
		}
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if in.Password != "" {
		hashed, err := u.hasher.Hash(in.Password)
		if err != nil {
			return model.User{}, usecase.WrapError(usecase.KindInternal, err, "hash password")
		}
		user.PasswordHash = hashed
	}

	if err := u.userRepo.Update(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, usecase.NewError(usecase.KindConflict, "username %q is already taken", username)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, usecase.NewError(usecase.KindNotFound, "user not found with id %d", userID)
		}
		return model.User{}, usecase.WrapError(usecase.KindInternal, err, "update user")
	}
	return user, nil
}
