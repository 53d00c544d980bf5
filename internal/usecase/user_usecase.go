package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// ユーザー入力の検証を約束（実装はvalidatorパッケージ）
type UserValidator interface {
	ValidateCreate(username string, password string, role string) error
	ValidateUpdate(username *string, password *string) error
}

type UserUsecase struct {
	userRepo  repo.UserRepository
	hasher    PasswordHasher
	validator UserValidator
	auditRepo repo.AuditLogRepository
}

// DI
func NewUserUsecase(
	userRepo repo.UserRepository,
	hasher PasswordHasher,
	validator UserValidator,
	auditRepo repo.AuditLogRepository,
) *UserUsecase {
	return &UserUsecase{
		userRepo:  userRepo,
		hasher:    hasher,
		validator: validator,
		auditRepo: auditRepo,
	}
}

type CreateUserInput struct {
	Username string
	Password string
	Role     string
}

type UpdateUserInput struct {
	Username *string
	Password *string
}

func (u *UserUsecase) Create(ctx context.Context, in CreateUserInput) (model.User, error) {
	//role未指定はstaff
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = string(model.RoleStaff)
	}

	if err := u.validator.ValidateCreate(in.Username, in.Password, role); err != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	//ユーザー名重複チェック
	existing, err := u.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "Username already exists")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	user := model.User{
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hash,
		Role:         model.Role(role),
		IsActive:     true,
	}
	if err := u.userRepo.Create(ctx, &user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}

func (u *UserUsecase) List(ctx context.Context) ([]model.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return []model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return users, nil
}

// ユーザー名・パスワードの更新（どちらも任意）
func (u *UserUsecase) Update(ctx context.Context, userID int64, in UpdateUserInput) (model.User, error) {
	if userID <= 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.validator.ValidateUpdate(in.Username, in.Password); err != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return model.User{}, NewHTTPError(http.StatusNotFound, "User not found")
	}

	//ユーザー名変更は重複チェック（自分自身は除く）
	if in.Username != nil {
		existing, err := u.userRepo.FindByUsername(ctx, *in.Username)
		if err != nil {
			return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if existing != nil && existing.ID != userID {
			return model.User{}, NewHTTPError(http.StatusBadRequest, "Username already in use")
		}
		user.Username = strings.TrimSpace(*in.Username)
	}

	if in.Password != nil {
		hash, err := u.hasher.Hash(*in.Password)
		if err != nil {
			return model.User{}, NewHTTPError(http.StatusInternalServerError, "hash error")
		}
		user.PasswordHash = hash
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *user, nil
}

// 自分自身の認証情報更新
func (u *UserUsecase) UpdateSelf(ctx context.Context, actorUserID int64, in UpdateUserInput) (model.User, error) {
	if actorUserID <= 0 {
		return model.User{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.Update(ctx, actorUserID, in)
}

// ソフト削除。既存トークンも失効させる。
func (u *UserUsecase) Deactivate(ctx context.Context, userID int64) (string, error) {
	if userID <= 0 {
		return "", NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return "", NewHTTPError(http.StatusNotFound, "User not found")
	}

	user.IsActive = false
	if err := u.userRepo.Update(ctx, user); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.userRepo.IncrementTokenVersion(ctx, userID); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user.Username, nil
}

// 有効/無効の切り替え。切り替え後のis_activeを返す。
func (u *UserUsecase) ToggleActive(ctx context.Context, actorAdminUserID int64, userID int64) (bool, error) {
	if actorAdminUserID <= 0 {
		return false, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if userID <= 0 {
		return false, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return false, NewHTTPError(http.StatusNotFound, "User not found")
	}

	before := user.IsActive
	user.IsActive = !user.IsActive
	if err := u.userRepo.Update(ctx, user); err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//停止・再開どちらでも発行済みトークンは作り直させる
	if err := u.userRepo.IncrementTokenVersion(ctx, userID); err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// ★監査ログ（TOGGLE_USER_ACTIVE）
	beforeJSON := `{"is_active":` + boolJSON(before) + `}`
	afterJSON := `{"is_active":` + boolJSON(user.IsActive) + `}`
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionToggleUserActive,
		ResourceType: model.AuditResourceUser,
		ResourceID:   userID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return user.IsActive, nil
}

func boolJSON(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
