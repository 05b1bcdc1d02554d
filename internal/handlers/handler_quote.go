package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/dto"
	"github.com/craftbooks/craft_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// quoteHandler handles HTTP requests related to quotes and jobs.
type quoteHandler struct {
	quoteService portssvc.QuoteSvcFacade
}

func newQuoteHandler(qs portssvc.QuoteSvcFacade) *quoteHandler {
	return &quoteHandler{quoteService: qs}
}

// registerQuoteRoutes registers routes related to quotes, their conversions,
// and the jobs they produce.
func registerQuoteRoutes(rg *gin.RouterGroup, quoteService portssvc.QuoteSvcFacade) {
	h := newQuoteHandler(quoteService)

	quotes := rg.Group("/quotes")
	{
		quotes.POST("", h.createQuote)
		quotes.GET("", h.listQuotes)
		quotes.GET("/:id", h.getQuote)
		quotes.PUT("/:id", h.updateQuote)
		quotes.DELETE("/:id", h.deleteQuote)
		quotes.POST("/:id/convert-to-job", h.convertToJob)
		quotes.POST("/:id/convert-to-invoice", h.convertToInvoice)
	}

	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.listJobs)
		jobs.GET("/:id", h.getJob)
	}
}

func (h *quoteHandler) createQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create quote", slog.String("quote_number", req.QuoteNumber), slog.String("customer_id", req.CustomerID))

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create quote")
		return
	}

	logger.Info("Quote created successfully", slog.String("quote_id", quote.QuoteID))
	c.JSON(http.StatusCreated, dto.ToQuoteResponse(quote))
}

func (h *quoteHandler) getQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	quote, err := h.quoteService.GetQuoteByID(c.Request.Context(), quoteID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve quote")
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

func (h *quoteHandler) listQuotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Query("customerID")

	quotes, err := h.quoteService.ListQuotes(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list quotes")
		return
	}

	c.JSON(http.StatusOK, dto.ListQuotesResponse{Quotes: dto.ToQuoteResponses(quotes)})
}

func (h *quoteHandler) updateQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	var req dto.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("quote_id", quoteID))
	logger.Info("Received request to update quote")

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), quoteID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update quote")
		return
	}

	logger.Info("Quote updated successfully")
	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

func (h *quoteHandler) deleteQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	logger = logger.With(slog.String("quote_id", quoteID))
	logger.Info("Received request to delete quote")

	if err := h.quoteService.DeleteQuote(c.Request.Context(), quoteID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete quote")
		return
	}

	logger.Info("Quote deleted successfully")
	c.Status(http.StatusNoContent)
}

func (h *quoteHandler) convertToJob(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	var req dto.ConvertQuoteToJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertQuoteToJob", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("quote_id", quoteID))
	logger.Info("Received request to convert quote to job")

	job, err := h.quoteService.ConvertToJob(c.Request.Context(), quoteID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to convert quote to job")
		return
	}

	logger.Info("Quote converted to job", slog.String("job_id", job.JobID))
	c.JSON(http.StatusCreated, dto.ToJobResponse(job))
}

func (h *quoteHandler) convertToInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	var req dto.ConvertQuoteToInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertQuoteToInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("quote_id", quoteID))
	logger.Info("Received request to convert quote to invoice", slog.String("invoice_number", req.InvoiceNumber))

	invoice, err := h.quoteService.ConvertToInvoice(c.Request.Context(), quoteID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to convert quote to invoice")
		return
	}

	logger.Info("Quote converted to invoice", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

func (h *quoteHandler) getJob(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	jobID := c.Param("id")

	job, err := h.quoteService.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve job")
		return
	}

	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

func (h *quoteHandler) listJobs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	jobs, err := h.quoteService.ListJobs(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list jobs")
		return
	}

	responses := make([]dto.JobResponse, len(jobs))
	for i := range jobs {
		responses[i] = dto.ToJobResponse(&jobs[i])
	}
	c.JSON(http.StatusOK, gin.H{"jobs": responses})
}
