package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"
	"app/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン（1シフト分）
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 12 * time.Hour,
	}
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, tokenVersion int, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": string(role),
		"tv":   tokenVersion,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// adminがいなければ初期adminを作る
func seedAdmin(ctx context.Context, userRepo repository.UserRepository, hasher auth.PasswordHasher, password string) error {
	existing, err := userRepo.FindByUsername(ctx, "admin")
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	return userRepo.Create(ctx, &model.User{
		Username:     "admin",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     true,
	})
}

func main() {
	//.envはあれば読む
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Expense{},
		&model.Asset{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	menuRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	expenseRepo := infraRepo.NewExpenseGormRepository(gormDB)
	assetRepo := infraRepo.NewAssetGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}

	//bcrypt（ユーザー作成：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg.JWTSecret)

	//初期admin
	if err := seedAdmin(context.Background(), userRepo, hasher, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	//Usecase生成
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	userUC := usecase.NewUserUsecase(userRepo, hasher, validator.NewUserValidator(), auditRepo)
	menuUC := usecase.NewMenuUsecase(menuRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	expenseUC := usecase.NewExpenseUsecase(expenseRepo)
	assetUC := usecase.NewAssetUsecase(assetRepo)

	//Handler生成
	h := server.Handlers{
		Auth:       handler.NewAuthHandler(loginUC),
		User:       handler.NewUserHandler(userUC),
		Menu:       handler.NewMenuHandler(menuUC),
		Order:      handler.NewOrderHandler(orderUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		Expense:    handler.NewExpenseHandler(expenseUC),
		Asset:      handler.NewAssetHandler(assetUC),
	}

	//Server起動
	if err := server.Start(cfg, userRepo, h); err != nil {
		log.Fatal(err)
	}
}
