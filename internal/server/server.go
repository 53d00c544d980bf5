package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// 各ハンドラをまとめて受け取る
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Menu       *handler.MenuHandler
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
	Expense    *handler.ExpenseHandler
	Asset      *handler.AssetHandler
}

func Start(cfg config.Config, userRepo repository.UserRepository, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	//リクエストIDはUUIDで採番してログに出す
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	//フロントは別オリジン
	e.Use(echomw.CORS())

	RegisterRoutes(e, cfg, userRepo, h)

	return e.Start(":" + cfg.Port)
}
