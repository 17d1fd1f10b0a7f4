package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/plancompta/ohada_chart_app/internal/apperrors"
	portssvc "github.com/plancompta/ohada_chart_app/internal/core/ports/services"
	"github.com/plancompta/ohada_chart_app/internal/dto"
	"github.com/plancompta/ohada_chart_app/internal/middleware"
)

// chartHandler handles HTTP requests for classes, categories and accounts.
type chartHandler struct {
	chartService    portssvc.ChartSvcFacade
	importerService portssvc.ChartImporterSvc
}

// newChartHandler creates a new chartHandler.
func newChartHandler(cs portssvc.ChartSvcFacade, is portssvc.ChartImporterSvc) *chartHandler {
	return &chartHandler{
		chartService:    cs,
		importerService: is,
	}
}

// registerChartRoutes registers routes for the chart of accounts.
func registerChartRoutes(rg *gin.RouterGroup, chartService portssvc.ChartSvcFacade, importerService portssvc.ChartImporterSvc) {
	h := newChartHandler(chartService, importerService)

	classes := rg.Group("/account-classes")
	{
		classes.GET("", h.listClasses)
		classes.GET("/:number", h.getClassByNumber)
	}

	categories := rg.Group("/account-categories")
	{
		categories.GET("", h.listCategories)
		categories.GET("/:code", h.getCategoryByCode)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccountByID)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
		accounts.GET("/classify/:code", h.classifyCode)
		accounts.POST("/import", h.importChart)
		accounts.POST("/import-nested", h.importNestedChart)
		accounts.DELETE("/purge", h.purgeChart)
	}
}

// tenantID pulls the tenant resolved by the middleware; registration order
// guarantees it is present.
func tenantID(c *gin.Context) string {
	id, _ := middleware.GetTenantIDFromContext(c)
	return id
}

// listClasses godoc
// @Summary List account classes
// @Description Retrieves the OHADA account classes (1-9) of the tenant
// @Tags chart
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Success 200 {array} dto.ClassResponse
// @Failure 500 {object} map[string]string "Failed to list classes"
// @Router /account-classes [get]
func (h *chartHandler) listClasses(c *gin.Context) {
	classes, err := h.chartService.ListClasses(c.Request.Context(), tenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list account classes"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListClassResponse(classes))
}

// getClassByNumber godoc
// @Summary Get an account class
// @Description Retrieves one account class by its OHADA number
// @Tags chart
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param number path int true "Class number (1-9)"
// @Success 200 {object} dto.ClassResponse
// @Failure 400 {object} map[string]string "Invalid class number"
// @Failure 404 {object} map[string]string "Class not found"
// @Router /account-classes/{number} [get]
func (h *chartHandler) getClassByNumber(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Class number must be an integer"})
		return
	}
	class, err := h.chartService.GetClassByNumber(c.Request.Context(), tenantID(c), number)
	if err != nil {
		respondChartError(c, err, "Failed to get account class")
		return
	}
	c.JSON(http.StatusOK, dto.ToClassResponse(class))
}

// listCategories godoc
// @Summary List account categories
// @Description Retrieves the two-digit account categories, optionally for one class
// @Tags chart
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param classID query string false "Filter by class ID"
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} map[string]string "Failed to list categories"
// @Router /account-categories [get]
func (h *chartHandler) listCategories(c *gin.Context) {
	categories, err := h.chartService.ListCategories(c.Request.Context(), tenantID(c), c.Query("classID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list account categories"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

// getCategoryByCode godoc
// @Summary Get an account category
// @Description Retrieves one category by its two-digit code
// @Tags chart
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param code path string true "Two-digit category code"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} map[string]string "Category not found"
// @Router /account-categories/{code} [get]
func (h *chartHandler) getCategoryByCode(c *gin.Context) {
	category, err := h.chartService.GetCategoryByCode(c.Request.Context(), tenantID(c), c.Param("code"))
	if err != nil {
		respondChartError(c, err, "Failed to get account category")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// createAccount godoc
// @Summary Create an account
// @Description Creates one account; type, balance side, statement reference and hierarchy are derived from the code
// @Tags chart
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Router /accounts [post]
func (h *chartHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.chartService.CreateAccount(c.Request.Context(), tenantID(c), req)
	if err != nil {
		respondChartError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves a filtered, paginated list of accounts ordered by code
// @Tags chart
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param classID query string false "Filter by class ID"
// @Param categoryID query string false "Filter by category ID"
// @Param type query string false "Filter by account type"
// @Param parent query string false "Parent account ID, or 'null' for root accounts"
// @Param isActive query bool false "Filter by active flag"
// @Param q query string false "Free text over code, name and description"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /accounts [get]
func (h *chartHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	accounts, err := h.chartService.ListAccounts(c.Request.Context(), tenantID(c), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getAccountByID godoc
// @Summary Get an account
// @Description Retrieves one account by its identifier
// @Tags chart
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [get]
func (h *chartHandler) getAccountByID(c *gin.Context) {
	account, err := h.chartService.GetAccountByID(c.Request.Context(), tenantID(c), c.Param("accountID"))
	if err != nil {
		respondChartError(c, err, "Failed to get account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates name, description or active flag. Code and classification are immutable.
// @Tags chart
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param accountID path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [put]
func (h *chartHandler) updateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	account, err := h.chartService.UpdateAccount(c.Request.Context(), tenantID(c), c.Param("accountID"), req)
	if err != nil {
		respondChartError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks an account inactive; purge is the only hard delete
// @Tags chart
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param accountID path string true "Account ID"
// @Success 204 "Account deactivated"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [delete]
func (h *chartHandler) deactivateAccount(c *gin.Context) {
	if err := h.chartService.DeactivateAccount(c.Request.Context(), tenantID(c), c.Param("accountID")); err != nil {
		respondChartError(c, err, "Failed to deactivate account")
		return
	}
	c.Status(http.StatusNoContent)
}

// classifyCode godoc
// @Summary Preview a code classification
// @Description Returns the type, balance side, statement reference, level and parent code the engine derives for a code, without persisting anything
// @Tags chart
// @Produce json
// @Param code path string true "Account code (1-8 digits)"
// @Success 200 {object} dto.ClassificationResponse
// @Failure 400 {object} map[string]string "Invalid code"
// @Router /accounts/classify/{code} [get]
func (h *chartHandler) classifyCode(c *gin.Context) {
	resp, err := h.chartService.ClassifyCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondChartError(c, err, "Failed to classify code")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// importChart godoc
// @Summary Import a chart of accounts
// @Description Imports flat (code, libelle) seed records in one transaction. Optional purge/replace deletes the existing chart first.
// @Tags chart
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param import body dto.ImportChartRequest true "Seed records and options"
// @Success 200 {object} dto.ImportSummaryResponse
// @Failure 400 {object} map[string]string "Invalid records"
// @Failure 500 {object} map[string]string "Import failed"
// @Router /accounts/import [post]
func (h *chartHandler) importChart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImportChart", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	summary, err := h.importerService.ImportChart(c.Request.Context(), tenantID(c), req.Records, req.ImportOptions)
	if err != nil {
		respondChartError(c, err, "Failed to import chart")
		return
	}
	c.JSON(http.StatusOK, dto.ToImportSummaryResponse(summary))
}

// importNestedChart godoc
// @Summary Import a nested chart of accounts
// @Description Imports the legacy nested chart format, where keys encode "<code> <name>" and nesting encodes the parent relationship
// @Tags chart
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param import body dto.ImportNestedChartRequest true "Nested chart and options"
// @Success 200 {object} dto.ImportSummaryResponse
// @Failure 400 {object} map[string]string "Invalid chart"
// @Failure 500 {object} map[string]string "Import failed"
// @Router /accounts/import-nested [post]
func (h *chartHandler) importNestedChart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportNestedChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImportNestedChart", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	summary, err := h.importerService.ImportNestedChart(c.Request.Context(), tenantID(c), req.Chart, req.ImportOptions)
	if err != nil {
		respondChartError(c, err, "Failed to import nested chart")
		return
	}
	c.JSON(http.StatusOK, dto.ToImportSummaryResponse(summary))
}

// purgeChart godoc
// @Summary Purge the chart of accounts
// @Description Hard-deletes all accounts, categories and classes of the tenant in one transaction
// @Tags chart
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Success 200 {object} dto.PurgeCountsResponse
// @Failure 500 {object} map[string]string "Purge failed"
// @Router /accounts/purge [delete]
func (h *chartHandler) purgeChart(c *gin.Context) {
	result, err := h.importerService.PurgeChart(c.Request.Context(), tenantID(c))
	if err != nil {
		respondChartError(c, err, "Failed to purge chart")
		return
	}
	c.JSON(http.StatusOK, dto.PurgeCountsResponse{
		Accounts:   result.Accounts,
		Categories: result.Categories,
		Classes:    result.Classes,
	})
}

// respondChartError maps service errors to HTTP status codes.
func respondChartError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidRecord),
		errors.Is(err, apperrors.ErrInvalidTenant):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
