package handlers

import (
	portssvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	pool *pgxpool.Pool,
) {
	registerHomeRoutes(r, pool, cfg.EnableDBCheck)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	RegisterAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal)
	registerInvoiceRoutes(v1, services.Invoice, services.Payment)
	registerPurchaseOrderRoutes(v1, services.PurchaseOrder, services.Payment)
	registerPaymentRoutes(v1, services.Payment)
	registerQuoteRoutes(v1, services.Quote)
	registerChallanRoutes(v1, services.Challan)
	registerCreditNoteRoutes(v1, services.CreditNote)
	registerExpenseRoutes(v1, services.Expense)
	registerReportingRoutes(v1, services.Reporting)
	registerSnapshotRoutes(v1, services.Snapshot)
}
