package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"carbon-register/internal/dto"
	"carbon-register/internal/services"
	"carbon-register/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) ExportEntries(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var filter dto.EntrySearchFilter
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	f, err := c.reportService.ExportEntries(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	filename := fmt.Sprintf("data-entries-%s.xlsx", time.Now().Format("20060102-150405"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Response().WriteHeader(http.StatusOK)

	if err := f.Write(ctx.Response().Writer); err != nil {
		c.logger.Error("failed to stream entry report", zap.Error(err))
		return err
	}
	return nil
}
