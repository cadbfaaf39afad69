package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"carbon-register/internal/dto"
	"carbon-register/internal/services"
	"carbon-register/pkg/utils"
)

type EmissionFactorController struct {
	factorService services.EmissionFactorServiceInterface
	logger        *zap.Logger
}

func NewEmissionFactorController(factorService services.EmissionFactorServiceInterface, logger *zap.Logger) *EmissionFactorController {
	return &EmissionFactorController{factorService: factorService, logger: logger}
}

func (c *EmissionFactorController) GetEmissionFactors(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	if active := ctx.QueryParam("active"); active != "" {
		filter.Filter["is_active"] = active
	}

	factors, total, err := c.factorService.GetEmissionFactors(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, factors, "emission factors listed", http.StatusOK, total)
}

func (c *EmissionFactorController) FindEmissionFactor(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	factor, err := c.factorService.FindEmissionFactor(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, factor, "emission factor found", http.StatusOK)
}

func (c *EmissionFactorController) CreateEmissionFactor(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateEmissionFactorDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.factorService.CreateEmissionFactor(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "emission factor created", http.StatusCreated)
}

func (c *EmissionFactorController) UpdateEmissionFactor(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEmissionFactorDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.factorService.UpdateEmissionFactor(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, updated, "emission factor updated", http.StatusOK)
}

func (c *EmissionFactorController) DeactivateEmissionFactor(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.factorService.DeactivateEmissionFactor(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "emission factor deactivated", http.StatusOK)
}
