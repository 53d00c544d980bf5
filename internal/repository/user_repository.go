package repository

import (
	"context"

	"app/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。見つからなければ(nil, nil)。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//ユーザー名からユーザーを1件取得する。見つからなければ(nil, nil)。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	//全ユーザー一覧
	List(ctx context.Context) ([]model.User, error)
	// ユーザー情報の更新=>アクティブかどうか・認証情報の変更など
	Update(ctx context.Context, user *model.User) error
	//トークンのバージョンを＋１（既存トークンを失効させる）
	IncrementTokenVersion(ctx context.Context, userID int64) error
}
