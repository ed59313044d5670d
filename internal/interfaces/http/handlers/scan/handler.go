package scan

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sonar/internal/application/scan/dto"
	"sonar/internal/application/scan/usecases"
	"sonar/internal/shared/errors"
	"sonar/internal/shared/logger"
	"sonar/internal/shared/utils"
)

// Handler serves the scan endpoint.
type Handler struct {
	scanUC *usecases.ScanUseCase
	logger logger.Interface
}

func NewHandler(scanUC *usecases.ScanUseCase) *Handler {
	return &Handler{
		scanUC: scanUC,
		logger: logger.NewLogger(),
	}
}

// Scan handles POST /api/scan
// @Summary Scan proxy subscriptions
// @Description Parse proxy descriptors from subscription URLs or inline text, probe them, and return reachable servers ranked by latency
// @Tags scan
// @Accept json
// @Produce json
// @Param request body dto.ScanRequest true "Scan request"
// @Success 200 {object} utils.APIResponse{data=dto.ScanResponse} "Scan completed"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 429 {object} utils.APIResponse "Rate limit exceeded"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/scan [post]
func (h *Handler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for scan", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		h.logger.Warnw("scan request failed validation", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ScanCommand{
		Sources:     req.Sources,
		Text:        req.Text,
		TimeoutMS:   req.TimeoutMS,
		Concurrency: req.Concurrency,
	}

	result, err := h.scanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scan completed", result)
}
