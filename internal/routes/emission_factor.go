package routes

import (
	"github.com/labstack/echo/v4"

	"carbon-register/internal/controllers"
)

func runEmissionFactorRouter(secureGroup *echo.Group, factorCtrl *controllers.EmissionFactorController) {
	secureGroup.GET("/emission-factors", factorCtrl.GetEmissionFactors)
	secureGroup.GET("/emission-factors/:id", factorCtrl.FindEmissionFactor)
	secureGroup.POST("/emission-factors", factorCtrl.CreateEmissionFactor)
	secureGroup.PUT("/emission-factors/:id", factorCtrl.UpdateEmissionFactor)
	secureGroup.DELETE("/emission-factors/:id", factorCtrl.DeactivateEmissionFactor)
}
