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

// 会員登録の入力
type RegisterUserInput struct {
	Username string
	Password string
	Email    string
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

// DI
func NewRegisterUserUsecase(userRepo repository.UserRepository, hasher PasswordHasher) *RegisterUserUsecase {
	return &RegisterUserUsecase{userRepo: userRepo, hasher: hasher}
}

// 会員登録実行（常にCUSTOMER）
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (model.User, error) {
	return u.create(ctx, in, model.RoleCustomer)
}

// 管理者作成（CLIからのみ）
func (u *RegisterUserUsecase) CreateAdmin(ctx context.Context, in RegisterUserInput) (model.User, error) {
	return u.create(ctx, in, model.RoleAdmin)
}

func (u *RegisterUserUsecase) create(ctx context.Context, in RegisterUserInput, role model.Role) (model.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if err := validator.ValidateRegister(username, in.Password, email); err != nil {
		return model.User{}, usecase.WrapError(usecase.KindInvalidArgument, err, "invalid user")
	}

	// username重複チェック
	_, err := u.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return model.User{}, usecase.NewError(usecase.KindConflict, "username %q is already taken", username)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.User{}, usecase.WrapError(usecase.KindInternal, err, "find user")
	}

	// ハッシュを保存（平文は保存しない）
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, usecase.WrapError(usecase.KindInternal, err, "hash password")
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashed,
		Email:        email,
		Role:         role,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		// 同時登録で負けた場合
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, usecase.NewError(usecase.KindConflict, "username %q is already taken", username)
		}
		return model.User{}, usecase.WrapError(usecase.KindInternal, err, "create user")
	}
	return *user, nil
}
