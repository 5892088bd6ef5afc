package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	portssvc "github.com/SscSPs/clinic_cash_register/internal/core/ports/services"
	"github.com/SscSPs/clinic_cash_register/internal/dto"
	"github.com/SscSPs/clinic_cash_register/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cashRegisterHandler handles HTTP requests related to daily cash registers.
type cashRegisterHandler struct {
	registerService portssvc.CashRegisterSvcFacade
}

// newCashRegisterHandler creates a new cashRegisterHandler.
func newCashRegisterHandler(rs portssvc.CashRegisterSvcFacade) *cashRegisterHandler {
	return &cashRegisterHandler{
		registerService: rs,
	}
}

// registerCashRegisterRoutes registers routes related to cash registers.
func registerCashRegisterRoutes(rg *gin.RouterGroup, registerService portssvc.CashRegisterSvcFacade) {
	h := newCashRegisterHandler(registerService)

	registers := rg.Group("/cash-registers")
	{
		registers.POST("", h.openCashRegister)
		registers.GET("", h.listCashRegisters)
		registers.GET("/:registerID", h.getCashRegister)
		registers.POST("/:registerID/movements", h.recordMovement)
		registers.POST("/:registerID/close", h.closeCashRegister)
	}
	rg.GET("/cash-register-days/:date", h.getCashRegisterForDate)
	rg.GET("/cash-register-statistics", h.getStatistics)
}

// openCashRegister godoc
// @Summary Open the cash register of a day
// @Description Opens the register of the given business day (today in the clinic timezone when omitted). A day can be opened only once.
// @Tags cash-registers
// @Accept  json
// @Produce  json
// @Param   register body dto.OpenCashRegisterRequest true "Opening details"
// @Success 201 {object} dto.CashRegisterResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "A register already exists for the date"
// @Failure 500 {object} dto.ErrorResponse "Failed to open cash register"
// @Security BearerAuth
// @Router /cash-registers [post]
func (h *cashRegisterHandler) openCashRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.OpenCashRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(dto.DateFormat, req.Date)
		if err != nil {
			respondWithError(c, logger, apperrors.NewValidationError("date", "must be a date in YYYY-MM-DD format"), "Failed to open cash register")
			return
		}
		date = parsed
	}

	logger.Info("Received request to open cash register", slog.String("date", req.Date), slog.String("initial_float", req.InitialFloat.StringFixed(2)))

	reg, err := h.registerService.OpenCashRegister(c.Request.Context(), date, userID, req.InitialFloat, req.Notes)
	if err != nil {
		respondWithError(c, logger, err, "Failed to open cash register")
		return
	}

	logger.Info("Cash register opened successfully", slog.String("register_id", reg.RegisterID))
	c.JSON(http.StatusCreated, dto.ToCashRegisterResponse(reg, time.Now()))
}

// recordMovement godoc
// @Summary Record a movement
// @Description Appends an income or expense to an open cash register
// @Tags cash-registers
// @Accept  json
// @Produce  json
// @Param   registerID path string true "Cash register ID"
// @Param   movement body dto.RecordMovementRequest true "Movement details"
// @Success 201 {object} dto.CashRegisterResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Cash register not found"
// @Failure 409 {object} dto.ErrorResponse "Cash register is not open"
// @Failure 500 {object} dto.ErrorResponse "Failed to record movement"
// @Security BearerAuth
// @Router /cash-registers/{registerID}/movements [post]
func (h *cashRegisterHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	registerID := c.Param("registerID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	logger = logger.With(slog.String("register_id", registerID))
	logger.Info("Received request to record movement", slog.String("kind", string(req.Kind)), slog.String("payment_method", string(req.PaymentMethod)))

	reg, err := h.registerService.RecordMovement(c.Request.Context(), registerID, userID, req.ToMovementInput())
	if err != nil {
		respondWithError(c, logger, err, "Failed to record movement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCashRegisterResponse(reg, time.Now()))
}

// closeCashRegister godoc
// @Summary Close a cash register
// @Description Reconciles the physical count against the theoretical balance and closes the register. Without a denomination count the drawer is assumed to match.
// @Tags cash-registers
// @Accept  json
// @Produce  json
// @Param   registerID path string true "Cash register ID"
// @Param   closing body dto.CloseCashRegisterRequest true "Denomination count and notes"
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Cash register not found"
// @Failure 409 {object} dto.ErrorResponse "Cash register is not open"
// @Failure 500 {object} dto.ErrorResponse "Failed to close cash register"
// @Security BearerAuth
// @Router /cash-registers/{registerID}/close [post]
func (h *cashRegisterHandler) closeCashRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	registerID := c.Param("registerID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CloseCashRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}
	count, err := req.ToDenominationCount()
	if err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	logger = logger.With(slog.String("register_id", registerID))
	logger.Info("Received request to close cash register", slog.Bool("with_count", count != nil))

	reg, err := h.registerService.CloseCashRegister(c.Request.Context(), registerID, userID, count, req.Notes)
	if err != nil {
		respondWithError(c, logger, err, "Failed to close cash register")
		return
	}

	if reg.Closing != nil {
		logger.Info("Cash register closed successfully", slog.String("classification", string(reg.Closing.Classification)))
	}
	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(reg, time.Now()))
}

// getCashRegister godoc
// @Summary Get a cash register by ID
// @Description Retrieves a register with its movements and running balances
// @Tags cash-registers
// @Produce  json
// @Param   registerID path string true "Cash register ID"
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Cash register not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve cash register"
// @Security BearerAuth
// @Router /cash-registers/{registerID} [get]
func (h *cashRegisterHandler) getCashRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	registerID := c.Param("registerID")

	reg, err := h.registerService.GetCashRegisterByID(c.Request.Context(), registerID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve cash register")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(reg, time.Now()))
}

// getCashRegisterForDate godoc
// @Summary Get the cash register of a day
// @Tags cash-registers
// @Produce  json
// @Param   date path string true "Business day (YYYY-MM-DD)"
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No cash register for the date"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve cash register"
// @Security BearerAuth
// @Router /cash-register-days/{date} [get]
func (h *cashRegisterHandler) getCashRegisterForDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, err := time.Parse(dto.DateFormat, c.Param("date"))
	if err != nil {
		respondWithError(c, logger, apperrors.NewValidationError("date", "must be a date in YYYY-MM-DD format"), "Failed to retrieve cash register")
		return
	}

	reg, err := h.registerService.GetCashRegisterForDate(c.Request.Context(), date)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve cash register")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(reg, time.Now()))
}

// listCashRegisters godoc
// @Summary List cash registers
// @Description Lists registers newest day first, with cursor pagination
// @Tags cash-registers
// @Produce  json
// @Param   from query string false "First business day (YYYY-MM-DD)"
// @Param   to query string false "Last business day (YYYY-MM-DD)"
// @Param   state query string false "Register state" Enums(OPEN, CLOSED, AUDITED)
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListCashRegistersResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list cash registers"
// @Security BearerAuth
// @Router /cash-registers [get]
func (h *cashRegisterHandler) listCashRegisters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCashRegistersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	resp, err := h.registerService.ListCashRegisters(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list cash registers")
		return
	}

	logger.Info("Cash registers listed successfully", slog.Int("count", len(resp.Registers)))
	c.JSON(http.StatusOK, resp)
}

// getStatistics godoc
// @Summary Cash register statistics
// @Description Aggregates the persisted totals of registers that are no longer open in a date range
// @Tags cash-registers
// @Produce  json
// @Param   from query string true "First business day (YYYY-MM-DD)"
// @Param   to query string true "Last business day (YYYY-MM-DD)"
// @Success 200 {object} dto.StatisticsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to compute statistics"
// @Security BearerAuth
// @Router /cash-register-statistics [get]
func (h *cashRegisterHandler) getStatistics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.StatisticsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, logger, err)
		return
	}
	from, err := time.Parse(dto.DateFormat, params.From)
	if err != nil {
		respondWithError(c, logger, apperrors.NewValidationError("from", "must be a date in YYYY-MM-DD format"), "Failed to compute statistics")
		return
	}
	to, err := time.Parse(dto.DateFormat, params.To)
	if err != nil {
		respondWithError(c, logger, apperrors.NewValidationError("to", "must be a date in YYYY-MM-DD format"), "Failed to compute statistics")
		return
	}

	stats, err := h.registerService.GetStatistics(c.Request.Context(), from, to)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, dto.ToStatisticsResponse(stats))
}
