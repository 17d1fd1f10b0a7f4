package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	portssvc "github.com/plancompta/ohada_chart_app/internal/core/ports/services"
	"github.com/plancompta/ohada_chart_app/internal/dto"
	"github.com/plancompta/ohada_chart_app/internal/middleware"
)

// fiscalYearHandler handles HTTP requests for fiscal years and periods.
type fiscalYearHandler struct {
	fiscalYearService portssvc.FiscalYearSvcFacade
}

// newFiscalYearHandler creates a new fiscalYearHandler.
func newFiscalYearHandler(fs portssvc.FiscalYearSvcFacade) *fiscalYearHandler {
	return &fiscalYearHandler{fiscalYearService: fs}
}

// registerFiscalYearRoutes registers routes for fiscal years.
func registerFiscalYearRoutes(rg *gin.RouterGroup, fiscalYearService portssvc.FiscalYearSvcFacade) {
	h := newFiscalYearHandler(fiscalYearService)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/:fiscalYearID", h.getFiscalYearByID)
		years.PUT("/:fiscalYearID", h.updateFiscalYear)
		years.POST("/:fiscalYearID/close", h.closeFiscalYear)
		years.POST("/:fiscalYearID/periods", h.generatePeriods)
		years.GET("/:fiscalYearID/periods", h.listPeriods)
	}
}

// createFiscalYear godoc
// @Summary Create a fiscal year
// @Description Creates a fiscal year; dates must be ordered and must not overlap another year of the tenant
// @Tags fiscal-years
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param fiscalYear body dto.CreateFiscalYearRequest true "Fiscal year details"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 400 {object} map[string]string "Invalid input or overlapping year"
// @Failure 409 {object} map[string]string "Fiscal year code already exists"
// @Router /fiscal-years [post]
func (h *fiscalYearHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFiscalYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	year, err := h.fiscalYearService.CreateFiscalYear(c.Request.Context(), tenantID(c), req)
	if err != nil {
		respondChartError(c, err, "Failed to create fiscal year")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(year))
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Description Retrieves the tenant's fiscal years, most recent first
// @Tags fiscal-years
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Success 200 {array} dto.FiscalYearResponse
// @Failure 500 {object} map[string]string "Failed to list fiscal years"
// @Router /fiscal-years [get]
func (h *fiscalYearHandler) listFiscalYears(c *gin.Context) {
	years, err := h.fiscalYearService.ListFiscalYears(c.Request.Context(), tenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fiscal years"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListFiscalYearResponse(years))
}

// getFiscalYearByID godoc
// @Summary Get a fiscal year
// @Description Retrieves one fiscal year by its identifier
// @Tags fiscal-years
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param fiscalYearID path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Router /fiscal-years/{fiscalYearID} [get]
func (h *fiscalYearHandler) getFiscalYearByID(c *gin.Context) {
	year, err := h.fiscalYearService.GetFiscalYearByID(c.Request.Context(), tenantID(c), c.Param("fiscalYearID"))
	if err != nil {
		respondChartError(c, err, "Failed to get fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// updateFiscalYear godoc
// @Summary Update a fiscal year
// @Description Updates name, active or locked flags of an open fiscal year
// @Tags fiscal-years
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param fiscalYearID path string true "Fiscal year ID"
// @Param fiscalYear body dto.UpdateFiscalYearRequest true "Fields to update"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 400 {object} map[string]string "Fiscal year closed"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Router /fiscal-years/{fiscalYearID} [put]
func (h *fiscalYearHandler) updateFiscalYear(c *gin.Context) {
	var req dto.UpdateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	year, err := h.fiscalYearService.UpdateFiscalYear(c.Request.Context(), tenantID(c), c.Param("fiscalYearID"), req)
	if err != nil {
		respondChartError(c, err, "Failed to update fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Closes a fiscal year; a closed year rejects further changes
// @Tags fiscal-years
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param fiscalYearID path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 400 {object} map[string]string "Fiscal year already closed"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Router /fiscal-years/{fiscalYearID}/close [post]
func (h *fiscalYearHandler) closeFiscalYear(c *gin.Context) {
	year, err := h.fiscalYearService.CloseFiscalYear(c.Request.Context(), tenantID(c), c.Param("fiscalYearID"))
	if err != nil {
		respondChartError(c, err, "Failed to close fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// generatePeriods godoc
// @Summary Generate fiscal periods
// @Description Generates monthly (default) or quarterly periods, replacing any previous set
// @Tags fiscal-years
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param fiscalYearID path string true "Fiscal year ID"
// @Param options body dto.GeneratePeriodsRequest false "Period granularity"
// @Success 201 {array} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Fiscal year closed or locked"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Router /fiscal-years/{fiscalYearID}/periods [post]
func (h *fiscalYearHandler) generatePeriods(c *gin.Context) {
	var req dto.GeneratePeriodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	periodType := req.PeriodType
	if periodType == "" {
		periodType = domain.PeriodMonthly
	}
	periods, err := h.fiscalYearService.GeneratePeriods(c.Request.Context(), tenantID(c), c.Param("fiscalYearID"), periodType)
	if err != nil {
		respondChartError(c, err, "Failed to generate periods")
		return
	}
	c.JSON(http.StatusCreated, dto.ToListFiscalPeriodResponse(periods))
}

// listPeriods godoc
// @Summary List fiscal periods
// @Description Retrieves the periods of a fiscal year ordered by number
// @Tags fiscal-years
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param fiscalYearID path string true "Fiscal year ID"
// @Success 200 {array} dto.FiscalPeriodResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Router /fiscal-years/{fiscalYearID}/periods [get]
func (h *fiscalYearHandler) listPeriods(c *gin.Context) {
	periods, err := h.fiscalYearService.ListPeriods(c.Request.Context(), tenantID(c), c.Param("fiscalYearID"))
	if err != nil {
		respondChartError(c, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFiscalPeriodResponse(periods))
}
