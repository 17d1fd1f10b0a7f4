package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/plancompta/ohada_chart_app/internal/core/ports/services"
	"github.com/plancompta/ohada_chart_app/internal/dto"
	"github.com/plancompta/ohada_chart_app/internal/middleware"
)

// tiersHandler handles HTTP requests for third parties.
type tiersHandler struct {
	tiersService portssvc.TiersSvcFacade
}

// newTiersHandler creates a new tiersHandler.
func newTiersHandler(ts portssvc.TiersSvcFacade) *tiersHandler {
	return &tiersHandler{tiersService: ts}
}

// registerTiersRoutes registers routes for third parties.
func registerTiersRoutes(rg *gin.RouterGroup, tiersService portssvc.TiersSvcFacade) {
	h := newTiersHandler(tiersService)

	tiers := rg.Group("/tiers")
	{
		tiers.POST("", h.createTiers)
		tiers.GET("", h.listTiers)
		tiers.GET("/:tiersID", h.getTiersByID)
		tiers.PUT("/:tiersID", h.updateTiers)
		tiers.DELETE("/:tiersID", h.deactivateTiers)
		tiers.POST("/defaults", h.createDefaultTiers)
	}
}

// createTiers godoc
// @Summary Create a third party
// @Description Creates a customer, supplier or employee linked to a class-4 account. The code is formatted with the account prefix and padded to 6 characters.
// @Tags tiers
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param tiers body dto.CreateTiersRequest true "Third party details"
// @Success 201 {object} dto.TiersResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Tiers code already exists"
// @Router /tiers [post]
func (h *tiersHandler) createTiers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTiers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tiers, err := h.tiersService.CreateTiers(c.Request.Context(), tenantID(c), req)
	if err != nil {
		respondChartError(c, err, "Failed to create tiers")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTiersResponse(tiers))
}

// listTiers godoc
// @Summary List third parties
// @Description Retrieves the tenant's third parties, optionally filtered by type
// @Tags tiers
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param type query string false "Filter by type (CUSTOMER, SUPPLIER, EMPLOYEE, OTHER)"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.TiersResponse
// @Failure 500 {object} map[string]string "Failed to list tiers"
// @Router /tiers [get]
func (h *tiersHandler) listTiers(c *gin.Context) {
	var params dto.ListTiersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	tiers, err := h.tiersService.ListTiers(c.Request.Context(), tenantID(c), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tiers"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListTiersResponse(tiers))
}

// getTiersByID godoc
// @Summary Get a third party
// @Description Retrieves one third party by its identifier
// @Tags tiers
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param tiersID path string true "Tiers ID"
// @Success 200 {object} dto.TiersResponse
// @Failure 404 {object} map[string]string "Tiers not found"
// @Router /tiers/{tiersID} [get]
func (h *tiersHandler) getTiersByID(c *gin.Context) {
	tiers, err := h.tiersService.GetTiersByID(c.Request.Context(), tenantID(c), c.Param("tiersID"))
	if err != nil {
		respondChartError(c, err, "Failed to get tiers")
		return
	}
	c.JSON(http.StatusOK, dto.ToTiersResponse(tiers))
}

// updateTiers godoc
// @Summary Update a third party
// @Description Updates contact details of a third party. Code, account and type are fixed at creation.
// @Tags tiers
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param tiersID path string true "Tiers ID"
// @Param tiers body dto.UpdateTiersRequest true "Fields to update"
// @Success 200 {object} dto.TiersResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Tiers not found"
// @Router /tiers/{tiersID} [put]
func (h *tiersHandler) updateTiers(c *gin.Context) {
	var req dto.UpdateTiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	tiers, err := h.tiersService.UpdateTiers(c.Request.Context(), tenantID(c), c.Param("tiersID"), req)
	if err != nil {
		respondChartError(c, err, "Failed to update tiers")
		return
	}
	c.JSON(http.StatusOK, dto.ToTiersResponse(tiers))
}

// deactivateTiers godoc
// @Summary Deactivate a third party
// @Description Marks a third party inactive
// @Tags tiers
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Param tiersID path string true "Tiers ID"
// @Success 204 "Tiers deactivated"
// @Failure 404 {object} map[string]string "Tiers not found"
// @Router /tiers/{tiersID} [delete]
func (h *tiersHandler) deactivateTiers(c *gin.Context) {
	if err := h.tiersService.DeactivateTiers(c.Request.Context(), tenantID(c), c.Param("tiersID")); err != nil {
		respondChartError(c, err, "Failed to deactivate tiers")
		return
	}
	c.Status(http.StatusNoContent)
}

// createDefaultTiers godoc
// @Summary Create default third parties
// @Description Bootstraps the generic customer, supplier and employee tiers against the tenant's 411/401/421 accounts. Idempotent.
// @Tags tiers
// @Produce json
// @Param X-Tenant-ID header string true "Tenant UUID"
// @Success 201 {array} dto.TiersResponse
// @Failure 400 {object} map[string]string "Chart of accounts incomplete"
// @Router /tiers/defaults [post]
func (h *tiersHandler) createDefaultTiers(c *gin.Context) {
	tiers, err := h.tiersService.CreateDefaultTiers(c.Request.Context(), tenantID(c))
	if err != nil {
		respondChartError(c, err, "Failed to create default tiers")
		return
	}
	c.JSON(http.StatusCreated, dto.ToListTiersResponse(tiers))
}
