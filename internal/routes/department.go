package routes

import (
	"github.com/labstack/echo/v4"

	"carbon-register/internal/controllers"
)

func runDepartmentRouter(secureGroup *echo.Group, departmentCtrl *controllers.DepartmentController) {
	secureGroup.GET("/departments", departmentCtrl.GetDepartments)
	secureGroup.GET("/departments/:id", departmentCtrl.FindDepartment)
	secureGroup.POST("/departments", departmentCtrl.CreateDepartment)
	secureGroup.PUT("/departments/:id", departmentCtrl.UpdateDepartment)
	secureGroup.DELETE("/departments/:id", departmentCtrl.DeleteDepartment)
}
