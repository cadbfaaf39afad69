package routes

import (
	"github.com/labstack/echo/v4"

	"carbon-register/internal/controllers"
)

func runLocationRouter(secureGroup *echo.Group, locationCtrl *controllers.LocationController) {
	secureGroup.GET("/locations", locationCtrl.GetLocations)
	secureGroup.GET("/locations/:id", locationCtrl.FindLocation)
	secureGroup.POST("/locations", locationCtrl.CreateLocation)
	secureGroup.PUT("/locations/:id", locationCtrl.UpdateLocation)
	secureGroup.DELETE("/locations/:id", locationCtrl.DeleteLocation)
}
