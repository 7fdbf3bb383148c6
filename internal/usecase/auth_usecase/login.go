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

// handlerからusecaseに渡す入力
type LoginInput struct {
	Username string
	Password string
}

type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	UserID   int64          `json:"user_id"`
	Username string         `json:"username"`
	Role     model.Role     `json:"role"`
	Token    JwtAccessToken `json:"token"`
}

const invalidCredentials = "invalid username or password"

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    usecase.Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock usecase.Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	username := strings.TrimSpace(in.Username)
	if err := validator.ValidateLogin(username, in.Password); err != nil {
		return LoginOutput{}, usecase.WrapError(usecase.KindInvalidArgument, err, "invalid login")
	}

	user, err := u.userRepo.FindByUsername(ctx, username)
	if err != nil {
		// ユーザーが居ないこととパスワード違いは区別しない
		if errors.Is(err, repository.ErrNotFound) {
			return LoginOutput{}, usecase.NewError(usecase.KindUnauthorized, invalidCredentials)
		}
		return LoginOutput{}, usecase.WrapError(usecase.KindInternal, err, "find user")
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return LoginOutput{}, usecase.NewError(usecase.KindUnauthorized, invalidCredentials)
	}

	//AccessToken発行
	now := u.clock.Now()
	accessToken, accessExp, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return LoginOutput{}, usecase.WrapError(usecase.KindInternal, err, "issue token")
	}

	return LoginOutput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Token: JwtAccessToken{
			AccessToken: accessToken,
			ExpiresIn:   int(accessExp.Sub(now).Seconds()),
		},
	}, nil
}
