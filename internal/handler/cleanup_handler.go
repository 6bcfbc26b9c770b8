package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/junyours/occ-admission-sub001/internal/upstream"
	"github.com/junyours/occ-admission-sub001/pkg/response"
)

type cleanupService interface {
	Preview(ctx context.Context) (*upstream.StaleSummary, error)
	Purge(ctx context.Context) (*upstream.PurgeOutcome, error)
}

// CleanupHandler manages retention cleanup HTTP endpoints.
type CleanupHandler struct {
	service cleanupService
}

// NewCleanupHandler constructs the handler.
func NewCleanupHandler(service cleanupService) *CleanupHandler {
	return &CleanupHandler{service: service}
}

// Preview godoc
// @Summary Preview the stale-data purge
// @Tags Cleanup
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cleanup/preview [get]
func (h *CleanupHandler) Preview(c *gin.Context) {
	summary, err := h.service.Preview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Purge godoc
// @Summary Purge stale registrations and exam data
// @Tags Cleanup
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cleanup/purge [post]
func (h *CleanupHandler) Purge(c *gin.Context) {
	outcome, err := h.service.Purge(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outcome, nil)
}
