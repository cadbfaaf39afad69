package routes

import (
	"github.com/labstack/echo/v4"

	"carbon-register/internal/controllers"
	"carbon-register/pkg/middleware"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh_token", authCtrl.RefreshToken)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}
}
