package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portssvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/dto"
	"github.com/craftbooks/craft_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

// reportingHandler handles HTTP requests related to financial reports.
// Every report endpoint returns JSON by default and an xlsx workbook when
// format=xlsx is passed.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to financial reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/general-ledger/:accountID", h.getGeneralLedger)
		reports.GET("/aged-receivables", h.getAgedReceivables)
		reports.GET("/aged-payables", h.getAgedPayables)
	}
}

// parseDateQuery reads a YYYY-MM-DD query parameter, defaulting when absent.
// It responds 400 and returns false on a malformed value.
func parseDateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.DefaultQuery(name, fallback.Format(dateLayout))
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid date parameter",
			slog.String("param", name), slog.String("value", raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s date. Use YYYY-MM-DD", name)})
		return time.Time{}, false
	}
	return parsed, true
}

func wantsXLSX(c *gin.Context) bool {
	return c.Query("format") == "xlsx"
}

// writeXLSX fills the default sheet with header and rows and streams the
// workbook as an attachment.
func writeXLSX(c *gin.Context, logger *slog.Logger, filename string, header []any, rows [][]any) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		logger.Error("Failed to write report header row", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report file"})
		return
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			logger.Error("Failed to write report row", slog.String("cell", cell), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report file"})
			return
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		logger.Error("Failed to stream report file", slog.String("error", err.Error()))
	}
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := parseDateQuery(c, "asOf", time.Now())
	if !ok {
		return
	}

	logger.Info("Received request to generate trial balance report", slog.String("asOf", asOf.Format(dateLayout)))

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate trial balance report")
		return
	}

	response := dto.ToTrialBalanceResponse(rows, asOf)

	if wantsXLSX(c) {
		xrows := make([][]any, len(rows))
		for i, row := range rows {
			xrows[i] = []any{row.AccountID, row.AccountName, string(row.AccountType), row.Debit.InexactFloat64(), row.Credit.InexactFloat64()}
		}
		xrows = append(xrows, []any{"", "Totals", "", response.Totals.Debit.InexactFloat64(), response.Totals.Credit.InexactFloat64()})
		writeXLSX(c, logger, fmt.Sprintf("trial-balance-%s.xlsx", response.AsOf),
			[]any{"Account ID", "Account", "Type", "Debit", "Credit"}, xrows)
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, response)
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := parseDateQuery(c, "asOf", time.Now())
	if !ok {
		return
	}

	logger.Info("Received request to generate balance sheet", slog.String("asOf", asOf.Format(dateLayout)))

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate balance sheet")
		return
	}

	response := dto.ToBalanceSheetResponse(report, asOf)

	if wantsXLSX(c) {
		var xrows [][]any
		appendSection := func(section string, amounts []dto.AccountAmountResponse) {
			for _, amt := range amounts {
				xrows = append(xrows, []any{section, amt.AccountID, amt.Name, amt.Amount.InexactFloat64()})
			}
		}
		appendSection("Assets", response.Assets)
		appendSection("Liabilities", response.Liabilities)
		appendSection("Equity", response.Equity)
		xrows = append(xrows,
			[]any{"Totals", "", "Total Assets", report.TotalAssets.InexactFloat64()},
			[]any{"Totals", "", "Total Liabilities", report.TotalLiabilities.InexactFloat64()},
			[]any{"Totals", "", "Total Equity", report.TotalEquity.InexactFloat64()},
		)
		writeXLSX(c, logger, fmt.Sprintf("balance-sheet-%s.xlsx", response.AsOf),
			[]any{"Section", "Account ID", "Account", "Amount"}, xrows)
		return
	}

	logger.Info("Balance sheet generated successfully")
	c.JSON(http.StatusOK, response)
}

func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from, ok := parseDateQuery(c, "fromDate", firstOfMonth)
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "toDate", now)
	if !ok {
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "toDate must not be before fromDate"})
		return
	}

	logger.Info("Received request to generate profit and loss report",
		slog.String("fromDate", from.Format(dateLayout)), slog.String("toDate", to.Format(dateLayout)))

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate profit and loss report")
		return
	}

	response := dto.ToProfitAndLossResponse(report, from, to)

	if wantsXLSX(c) {
		var xrows [][]any
		for _, rev := range response.Revenue {
			xrows = append(xrows, []any{"Revenue", rev.AccountID, rev.Name, rev.Amount.InexactFloat64()})
		}
		for _, exp := range response.Expenses {
			xrows = append(xrows, []any{"Expenses", exp.AccountID, exp.Name, exp.Amount.InexactFloat64()})
		}
		xrows = append(xrows, []any{"Summary", "", "Net Profit", report.NetProfit.InexactFloat64()})
		writeXLSX(c, logger, fmt.Sprintf("profit-and-loss-%s-%s.xlsx", response.FromDate, response.ToDate),
			[]any{"Section", "Account ID", "Account", "Amount"}, xrows)
		return
	}

	logger.Info("Profit and loss report generated successfully")
	c.JSON(http.StatusOK, response)
}

func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	now := time.Now()
	firstOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	from, ok := parseDateQuery(c, "fromDate", firstOfYear)
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "toDate", now)
	if !ok {
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request to generate general ledger report",
		slog.String("fromDate", from.Format(dateLayout)), slog.String("toDate", to.Format(dateLayout)))

	rows, err := h.reportingService.GeneralLedger(c.Request.Context(), accountID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate general ledger report")
		return
	}

	if wantsXLSX(c) {
		xrows := make([][]any, len(rows))
		for i, row := range rows {
			xrows[i] = []any{
				row.JournalDate.Format(dateLayout), row.JournalID, row.Memo,
				row.Debit.InexactFloat64(), row.Credit.InexactFloat64(), row.RunningBalance.InexactFloat64(),
			}
		}
		writeXLSX(c, logger, fmt.Sprintf("general-ledger-%s.xlsx", accountID),
			[]any{"Date", "Journal ID", "Memo", "Debit", "Credit", "Running Balance"}, xrows)
		return
	}

	logger.Info("General ledger report generated successfully", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(accountID, rows, from, to))
}

func (h *reportingHandler) getAgedReceivables(c *gin.Context) {
	h.getAgedReport(c, "receivables", h.reportingService.AgedReceivables)
}

func (h *reportingHandler) getAgedPayables(c *gin.Context) {
	h.getAgedReport(c, "payables", h.reportingService.AgedPayables)
}

func (h *reportingHandler) getAgedReport(c *gin.Context, kind string, generate func(ctx context.Context, asOf time.Time) (*domain.AgedReport, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := parseDateQuery(c, "asOf", time.Now())
	if !ok {
		return
	}

	logger.Info("Received request to generate aged report", slog.String("kind", kind), slog.String("asOf", asOf.Format(dateLayout)))

	report, err := generate(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate aged "+kind+" report")
		return
	}

	if wantsXLSX(c) {
		xrows := make([][]any, len(report.Rows))
		for i, row := range report.Rows {
			xrows[i] = []any{
				row.DocumentNumber, row.DocumentID, row.PartyID,
				row.DueDate.Format(dateLayout), row.BalanceDue.InexactFloat64(), string(row.Bucket),
			}
		}
		writeXLSX(c, logger, fmt.Sprintf("aged-%s-%s.xlsx", kind, asOf.Format(dateLayout)),
			[]any{"Document Number", "Document ID", "Party", "Due Date", "Balance Due", "Bucket"}, xrows)
		return
	}

	logger.Info("Aged report generated successfully", slog.String("kind", kind), slog.Int("row_count", len(report.Rows)))
	c.JSON(http.StatusOK, report)
}
