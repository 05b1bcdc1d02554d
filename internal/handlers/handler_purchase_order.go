package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/dto"
	"github.com/craftbooks/craft_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// purchaseOrderHandler handles HTTP requests related to purchase orders.
type purchaseOrderHandler struct {
	purchaseOrderService portssvc.PurchaseOrderSvcFacade
	paymentService       portssvc.PaymentSvcFacade
}

func newPurchaseOrderHandler(pos portssvc.PurchaseOrderSvcFacade, ps portssvc.PaymentSvcFacade) *purchaseOrderHandler {
	return &purchaseOrderHandler{purchaseOrderService: pos, paymentService: ps}
}

// registerPurchaseOrderRoutes registers routes related to purchase orders.
func registerPurchaseOrderRoutes(rg *gin.RouterGroup, purchaseOrderService portssvc.PurchaseOrderSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := newPurchaseOrderHandler(purchaseOrderService, paymentService)

	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", h.createPurchaseOrder)
		orders.GET("", h.listPurchaseOrders)
		orders.GET("/:id", h.getPurchaseOrder)
		orders.PUT("/:id", h.updatePurchaseOrder)
		orders.DELETE("/:id", h.deletePurchaseOrder)
		orders.POST("/:id/payments", h.addPayment)
	}
}

func (h *purchaseOrderHandler) createPurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePurchaseOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create purchase order", slog.String("order_number", req.OrderNumber), slog.String("supplier_id", req.SupplierID))

	order, err := h.purchaseOrderService.CreatePurchaseOrder(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create purchase order")
		return
	}

	logger.Info("Purchase order created successfully", slog.String("purchase_order_id", order.PurchaseOrderID))
	c.JSON(http.StatusCreated, dto.ToPurchaseOrderResponse(order))
}

func (h *purchaseOrderHandler) getPurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseOrderID := c.Param("id")

	order, err := h.purchaseOrderService.GetPurchaseOrderByID(c.Request.Context(), purchaseOrderID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve purchase order")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(order))
}

func (h *purchaseOrderHandler) listPurchaseOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplierID := c.Query("supplierID")

	orders, err := h.purchaseOrderService.ListPurchaseOrders(c.Request.Context(), supplierID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list purchase orders")
		return
	}

	c.JSON(http.StatusOK, dto.ListPurchaseOrdersResponse{PurchaseOrders: dto.ToPurchaseOrderResponses(orders)})
}

func (h *purchaseOrderHandler) updatePurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseOrderID := c.Param("id")

	var req dto.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePurchaseOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("purchase_order_id", purchaseOrderID))
	logger.Info("Received request to update purchase order")

	order, err := h.purchaseOrderService.UpdatePurchaseOrder(c.Request.Context(), purchaseOrderID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update purchase order")
		return
	}

	logger.Info("Purchase order updated successfully")
	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(order))
}

func (h *purchaseOrderHandler) deletePurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseOrderID := c.Param("id")

	logger = logger.With(slog.String("purchase_order_id", purchaseOrderID))
	logger.Info("Received request to delete purchase order")

	if err := h.purchaseOrderService.DeletePurchaseOrder(c.Request.Context(), purchaseOrderID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete purchase order")
		return
	}

	logger.Info("Purchase order deleted successfully")
	c.Status(http.StatusNoContent)
}

func (h *purchaseOrderHandler) addPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseOrderID := c.Param("id")

	var req dto.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddPaymentToPurchaseOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("purchase_order_id", purchaseOrderID))
	logger.Info("Received request to add payment to purchase order", slog.String("amount", req.Amount.String()))

	order, journal, err := h.paymentService.AddPaymentToPurchaseOrder(c.Request.Context(), purchaseOrderID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add payment to purchase order")
		return
	}

	logger.Info("Payment added to purchase order", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, gin.H{
		"purchaseOrder": dto.ToPurchaseOrderResponse(order),
		"journal":       dto.ToJournalResponse(journal),
	})
}
