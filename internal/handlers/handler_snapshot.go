package handlers

import (
	"log/slog"
	"net/http"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portssvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// snapshotHandler handles full-state export and import.
type snapshotHandler struct {
	snapshotService portssvc.SnapshotService
}

func newSnapshotHandler(ss portssvc.SnapshotService) *snapshotHandler {
	return &snapshotHandler{snapshotService: ss}
}

// registerSnapshotRoutes registers the snapshot endpoints.
func registerSnapshotRoutes(rg *gin.RouterGroup, snapshotService portssvc.SnapshotService) {
	h := newSnapshotHandler(snapshotService)

	snapshot := rg.Group("/snapshot")
	{
		snapshot.GET("", h.exportSnapshot)
		snapshot.POST("", h.importSnapshot)
	}
}

func (h *snapshotHandler) exportSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to export snapshot")

	snapshot, err := h.snapshotService.Export(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export snapshot")
		return
	}

	logger.Info("Snapshot exported successfully",
		slog.Int("accounts", len(snapshot.Accounts)),
		slog.Int("journals", len(snapshot.Journals)),
	)
	c.Header("Content-Disposition", `attachment; filename="craftbooks-snapshot.json"`)
	c.JSON(http.StatusOK, snapshot)
}

// importSnapshot replaces the entire persisted state. The payload is
// validated before anything is deleted; a rejected snapshot leaves the
// current state untouched.
func (h *snapshotHandler) importSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var snapshot domain.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		logger.Warn("Failed to bind JSON for ImportSnapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid snapshot format: " + err.Error()})
		return
	}

	logger.Info("Received request to import snapshot",
		slog.Int("accounts", len(snapshot.Accounts)),
		slog.Int("journals", len(snapshot.Journals)),
	)

	if err := h.snapshotService.Import(c.Request.Context(), snapshot); err != nil {
		respondServiceError(c, logger, err, "Failed to import snapshot")
		return
	}

	logger.Info("Snapshot imported successfully")
	c.JSON(http.StatusOK, gin.H{"message": "Snapshot imported"})
}
