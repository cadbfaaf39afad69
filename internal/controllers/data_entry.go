package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"carbon-register/internal/dto"
	"carbon-register/internal/services"
	"carbon-register/pkg/apperrors"
	"carbon-register/pkg/utils"
)

type DataEntryController struct {
	csvService        services.CsvValidationServiceInterface
	submissionService services.SubmissionServiceInterface
	approvalService   services.ApprovalServiceInterface
	entryService      services.DataEntryServiceInterface
	maxCSVSize        int64
	logger            *zap.Logger
}

func NewDataEntryController(
	csvService services.CsvValidationServiceInterface,
	submissionService services.SubmissionServiceInterface,
	approvalService services.ApprovalServiceInterface,
	entryService services.DataEntryServiceInterface,
	maxCSVSize int64,
	logger *zap.Logger,
) *DataEntryController {
	return &DataEntryController{
		csvService:        csvService,
		submissionService: submissionService,
		approvalService:   approvalService,
		entryService:      entryService,
		maxCSVSize:        maxCSVSize,
		logger:            logger,
	}
}

// ValidateCSV classifies the uploaded file without persisting anything.
// The client submits the valid subset afterwards via SubmitBatch.
func (c *DataEntryController) ValidateCSV(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "a csv file is required in the 'file' field", err, nil),
			c.logger,
		)
	}
	if fileHeader.Size > c.maxCSVSize {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusRequestEntityTooLarge, "uploaded file is too large", nil, nil),
			c.logger,
		)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "failed to open uploaded file", err, nil),
			c.logger,
		)
	}
	defer file.Close()

	result, err := c.csvService.ValidateCSV(reqCtx, file)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "csv validated", http.StatusOK)
}

func (c *DataEntryController) SubmitBatch(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.BatchSubmitDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.submissionService.SubmitBatch(reqCtx, payload.Rows)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "batch submitted", http.StatusCreated)
}

func (c *DataEntryController) CreateDataEntry(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateDataEntryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.submissionService.SubmitEntry(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "data entry created", http.StatusCreated)
}

func (c *DataEntryController) SearchDataEntries(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var filter dto.EntrySearchFilter
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	entries, err := c.entryService.Search(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, entries, "data entries listed", http.StatusOK, uint64(len(entries)))
}

func (c *DataEntryController) FindDataEntry(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	entry, err := c.entryService.Find(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, entry, "data entry found", http.StatusOK)
}

func (c *DataEntryController) ApproveDataEntry(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	entry, err := c.approvalService.Approve(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, entry, "data entry approved", http.StatusOK)
}

func (c *DataEntryController) RejectDataEntry(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.RejectDataEntryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	entry, err := c.approvalService.Reject(reqCtx, id, payload.Reason)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, entry, "data entry rejected", http.StatusOK)
}
