package routes

import (
	"github.com/labstack/echo/v4"

	"carbon-register/internal/controllers"
)

func runReportRouter(secureGroup *echo.Group, reportCtrl *controllers.ReportController) {
	secureGroup.GET("/reports/data-entries", reportCtrl.ExportEntries)
}
