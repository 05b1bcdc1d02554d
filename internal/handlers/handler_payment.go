package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/dto"
	"github.com/craftbooks/craft_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles lump payments that are allocated across a party's
// outstanding documents.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers the allocation endpoints.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("/customer", h.receiveCustomerPayment)
		payments.POST("/supplier", h.makeSupplierPayment)
	}
}

func (h *paymentHandler) receiveCustomerPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReceiveCustomerPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReceiveCustomerPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("customer_id", req.CustomerID))
	logger.Info("Received request to allocate customer payment", slog.String("amount", req.Amount.String()))

	result, err := h.paymentService.ReceiveCustomerPayment(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to allocate customer payment")
		return
	}

	logger.Info("Customer payment allocated",
		slog.Int("invoices_touched", len(result.UpdatedInvoices)),
		slog.String("journal_id", result.Journal.JournalID),
	)
	c.JSON(http.StatusCreated, dto.CustomerAllocationResponse{
		UpdatedInvoices: dto.ToInvoiceResponses(result.UpdatedInvoices),
		Journal:         dto.ToJournalResponse(result.Journal),
	})
}

func (h *paymentHandler) makeSupplierPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MakeSupplierPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MakeSupplierPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("supplier_id", req.SupplierID))
	logger.Info("Received request to allocate supplier payment", slog.String("amount", req.Amount.String()))

	result, err := h.paymentService.MakeSupplierPayment(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to allocate supplier payment")
		return
	}

	logger.Info("Supplier payment allocated",
		slog.Int("orders_touched", len(result.UpdatedOrders)),
		slog.String("journal_id", result.Journal.JournalID),
	)
	c.JSON(http.StatusCreated, dto.SupplierAllocationResponse{
		UpdatedOrders: dto.ToPurchaseOrderResponses(result.UpdatedOrders),
		Journal:       dto.ToJournalResponse(result.Journal),
	})
}
