// README: System impact report handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridelink/internal/modules/registry"
)

type ReportHandler struct {
	registry *registry.Registry
}

func NewReportHandler(reg *registry.Registry) *ReportHandler {
	return &ReportHandler{registry: reg}
}

func (h *ReportHandler) Get(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.registry.Report())
}
