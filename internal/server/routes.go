package server

import (
	"app/internal/config"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.User.RegisterRoutes(e, cfg, userRepo)
	h.Menu.RegisterRoutes(e, cfg, userRepo)
	//注文受付は認証なし（レジ端末から叩く）
	h.Order.RegisterRoutes(e)
	h.AdminOrder.RegisterRoutes(e, cfg, userRepo)
	h.Expense.RegisterRoutes(e, cfg, userRepo)
	h.Asset.RegisterRoutes(e, cfg, userRepo)
}
