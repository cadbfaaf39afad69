package routes

import (
	"github.com/labstack/echo/v4"

	"carbon-register/internal/controllers"
)

func runDataEntryRouter(secureGroup *echo.Group, entryCtrl *controllers.DataEntryController) {
	secureGroup.POST("/data-entries/validate-csv", entryCtrl.ValidateCSV)
	secureGroup.POST("/data-entries/batch", entryCtrl.SubmitBatch)
	secureGroup.POST("/data-entries", entryCtrl.CreateDataEntry)
	secureGroup.GET("/data-entries", entryCtrl.SearchDataEntries)
	secureGroup.GET("/data-entries/:id", entryCtrl.FindDataEntry)
	secureGroup.PUT("/data-entries/:id/approve", entryCtrl.ApproveDataEntry)
	secureGroup.PUT("/data-entries/:id/reject", entryCtrl.RejectDataEntry)
}
