package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/store"
	"github.com/mobilite-mtl/mobilite-backend-go/pkg/response"
)

// DatasetHandler serves dataset diagnostics: row counts, date bounds and
// the anchor date each analysis windows against.
type DatasetHandler struct {
	store *store.Store
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(st *store.Store) *DatasetHandler {
	return &DatasetHandler{store: st}
}

// Summary handles GET /api/v1/datasets.
func (h *DatasetHandler) Summary(c *gin.Context) {
	response.Success(c, h.store.Summary())
}
