package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/dto"
	"github.com/craftbooks/craft_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// challanHandler handles HTTP requests related to delivery challans.
// Challans are created through the invoice conversion endpoint; this handler
// only reads, amends delivery details, and deletes.
type challanHandler struct {
	challanService portssvc.ChallanSvcFacade
}

func newChallanHandler(cs portssvc.ChallanSvcFacade) *challanHandler {
	return &challanHandler{challanService: cs}
}

// registerChallanRoutes registers routes related to delivery challans.
func registerChallanRoutes(rg *gin.RouterGroup, challanService portssvc.ChallanSvcFacade) {
	h := newChallanHandler(challanService)

	challans := rg.Group("/challans")
	{
		challans.GET("", h.listChallans)
		challans.GET("/:id", h.getChallan)
		challans.PUT("/:id", h.updateChallan)
		challans.DELETE("/:id", h.deleteChallan)
	}
}

func (h *challanHandler) getChallan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	challanID := c.Param("id")

	challan, err := h.challanService.GetChallanByID(c.Request.Context(), challanID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve challan")
		return
	}

	c.JSON(http.StatusOK, dto.ToChallanResponse(challan))
}

func (h *challanHandler) listChallans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	challans, err := h.challanService.ListChallans(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list challans")
		return
	}

	c.JSON(http.StatusOK, dto.ListChallansResponse{Challans: dto.ToChallanResponses(challans)})
}

func (h *challanHandler) updateChallan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	challanID := c.Param("id")

	var req dto.UpdateChallanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateChallan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("challan_id", challanID))
	logger.Info("Received request to update challan")

	challan, err := h.challanService.UpdateChallan(c.Request.Context(), challanID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update challan")
		return
	}

	logger.Info("Challan updated successfully")
	c.JSON(http.StatusOK, dto.ToChallanResponse(challan))
}

func (h *challanHandler) deleteChallan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	challanID := c.Param("id")

	logger = logger.With(slog.String("challan_id", challanID))
	logger.Info("Received request to delete challan")

	if err := h.challanService.DeleteChallan(c.Request.Context(), challanID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete challan")
		return
	}

	logger.Info("Challan deleted successfully")
	c.Status(http.StatusNoContent)
}
