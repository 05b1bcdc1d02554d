package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/dto"
	"github.com/craftbooks/craft_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// creditNoteHandler handles HTTP requests related to credit notes.
type creditNoteHandler struct {
	creditNoteService portssvc.CreditNoteSvcFacade
}

func newCreditNoteHandler(cns portssvc.CreditNoteSvcFacade) *creditNoteHandler {
	return &creditNoteHandler{creditNoteService: cns}
}

// registerCreditNoteRoutes registers routes related to credit notes.
func registerCreditNoteRoutes(rg *gin.RouterGroup, creditNoteService portssvc.CreditNoteSvcFacade) {
	h := newCreditNoteHandler(creditNoteService)

	notes := rg.Group("/credit-notes")
	{
		notes.POST("", h.createCreditNote)
		notes.GET("", h.listCreditNotes)
		notes.GET("/:id", h.getCreditNote)
		notes.PUT("/:id", h.updateCreditNote)
		notes.DELETE("/:id", h.deleteCreditNote)
		notes.POST("/:id/finalize", h.finalizeCreditNote)
	}
}

func (h *creditNoteHandler) createCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCreditNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create credit note",
		slog.String("credit_note_number", req.CreditNoteNumber),
		slog.String("original_invoice_id", req.OriginalInvoiceID),
	)

	note, err := h.creditNoteService.CreateCreditNote(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create credit note")
		return
	}

	logger.Info("Credit note created successfully", slog.String("credit_note_id", note.CreditNoteID))
	c.JSON(http.StatusCreated, dto.ToCreditNoteResponse(note))
}

func (h *creditNoteHandler) getCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditNoteID := c.Param("id")

	note, err := h.creditNoteService.GetCreditNoteByID(c.Request.Context(), creditNoteID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve credit note")
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditNoteResponse(note))
}

func (h *creditNoteHandler) listCreditNotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Query("customerID")

	notes, err := h.creditNoteService.ListCreditNotes(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list credit notes")
		return
	}

	c.JSON(http.StatusOK, dto.ListCreditNotesResponse{CreditNotes: dto.ToCreditNoteResponses(notes)})
}

func (h *creditNoteHandler) updateCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditNoteID := c.Param("id")

	var req dto.UpdateCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCreditNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("credit_note_id", creditNoteID))
	logger.Info("Received request to update credit note")

	note, err := h.creditNoteService.UpdateCreditNote(c.Request.Context(), creditNoteID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update credit note")
		return
	}

	logger.Info("Credit note updated successfully")
	c.JSON(http.StatusOK, dto.ToCreditNoteResponse(note))
}

func (h *creditNoteHandler) deleteCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditNoteID := c.Param("id")

	logger = logger.With(slog.String("credit_note_id", creditNoteID))
	logger.Info("Received request to delete credit note")

	if err := h.creditNoteService.DeleteCreditNote(c.Request.Context(), creditNoteID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete credit note")
		return
	}

	logger.Info("Credit note deleted successfully")
	c.Status(http.StatusNoContent)
}

func (h *creditNoteHandler) finalizeCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditNoteID := c.Param("id")

	logger = logger.With(slog.String("credit_note_id", creditNoteID))
	logger.Info("Received request to finalize credit note")

	note, err := h.creditNoteService.FinalizeCreditNote(c.Request.Context(), creditNoteID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to finalize credit note")
		return
	}

	logger.Info("Credit note finalized", slog.Any("journal_id", note.JournalID))
	c.JSON(http.StatusOK, dto.ToCreditNoteResponse(note))
}
