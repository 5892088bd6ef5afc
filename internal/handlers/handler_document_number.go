package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	portssvc "github.com/SscSPs/clinic_cash_register/internal/core/ports/services"
	"github.com/SscSPs/clinic_cash_register/internal/dto"
	"github.com/SscSPs/clinic_cash_register/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// documentNumberHandler handles HTTP requests for invoice and receipt numbers.
type documentNumberHandler struct {
	sequenceService portssvc.SequenceSvcFacade
}

// registerDocumentNumberRoutes registers routes related to document numbering.
// Issuing is rate limited; peeking is not.
func registerDocumentNumberRoutes(rg *gin.RouterGroup, sequenceService portssvc.SequenceSvcFacade, issueLimiter *limiter.Limiter) {
	h := &documentNumberHandler{sequenceService: sequenceService}

	numbers := rg.Group("/document-numbers")
	{
		numbers.POST("", middleware.RateLimit(issueLimiter), h.nextDocumentNumber)
		numbers.GET("/:series/:entityType", h.peekDocumentNumber)
	}
}

// nextDocumentNumber godoc
// @Summary Issue the next document number
// @Description Reserves the next gapless number of a series for the current year, e.g. F-2024-001 or R-2024-0001
// @Tags document-numbers
// @Accept  json
// @Produce  json
// @Param   request body dto.NextDocumentNumberRequest true "Series and entity type"
// @Success 201 {object} dto.DocumentNumberResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Failed to issue document number"
// @Failure 503 {object} dto.ErrorResponse "Sequence exhausted, retry"
// @Security BearerAuth
// @Router /document-numbers [post]
func (h *documentNumberHandler) nextDocumentNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.NextDocumentNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	number, err := h.sequenceService.NextDocumentNumber(c.Request.Context(), req.Series, req.EntityType)
	if err != nil {
		respondWithError(c, logger, err, "Failed to issue document number")
		return
	}

	logger.Info("Document number issued", slog.String("number", number.Number))
	c.JSON(http.StatusCreated, dto.ToDocumentNumberResponse(number))
}

// peekDocumentNumber godoc
// @Summary Get the last issued document number
// @Description Returns the last issued number of a series without reserving one. Sequence is 0 when nothing was issued.
// @Tags document-numbers
// @Produce  json
// @Param   series path string true "Series prefix"
// @Param   entityType path string true "Entity type" Enums(INVOICE, RECEIPT)
// @Param   year query int false "Year, defaults to the current year"
// @Success 200 {object} dto.DocumentNumberResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to read document number"
// @Security BearerAuth
// @Router /document-numbers/{series}/{entityType} [get]
func (h *documentNumberHandler) peekDocumentNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.PeekDocumentNumberParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	number, err := h.sequenceService.PeekDocumentNumber(c.Request.Context(), c.Param("series"), domain.EntityType(c.Param("entityType")), params.Year)
	if err != nil {
		respondWithError(c, logger, err, "Failed to read document number")
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentNumberResponse(number))
}
