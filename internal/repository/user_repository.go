package repository

import (
	"context"

	"ecommerce/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (model.User, error)
	// 同じユーザーへの操作を直列化するための行ロック
	FindByIDForUpdate(ctx context.Context, id int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Update(ctx context.Context, user *model.User) error
}
