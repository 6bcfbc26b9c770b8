package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/junyours/occ-admission-sub001/internal/dto"
	"github.com/junyours/occ-admission-sub001/internal/models"
	appErrors "github.com/junyours/occ-admission-sub001/pkg/errors"
	"github.com/junyours/occ-admission-sub001/pkg/response"
)

type preferenceService interface {
	Browse(ctx context.Context, userID, feature string) models.BrowsePreference
	SaveBrowse(ctx context.Context, userID, feature string, pref models.BrowsePreference) error
	Reset(ctx context.Context, userID, feature string) error
}

// PreferenceHandler manages view preference HTTP endpoints.
type PreferenceHandler struct {
	service preferenceService
}

// NewPreferenceHandler constructs the handler.
func NewPreferenceHandler(service preferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: service}
}

// Get godoc
// @Summary Get a view preference
// @Tags Preferences
// @Produce json
// @Param feature path string true "Feature key"
// @Success 200 {object} response.Envelope
// @Router /preferences/{feature} [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	pref := h.service.Browse(c.Request.Context(), claims.UserID, c.Param("feature"))
	response.JSON(c, http.StatusOK, pref, nil)
}

// Save godoc
// @Summary Save a view preference
// @Tags Preferences
// @Accept json
// @Produce json
// @Param feature path string true "Feature key"
// @Param payload body dto.SavePreferenceRequest true "Preference"
// @Success 204
// @Router /preferences/{feature} [put]
func (h *PreferenceHandler) Save(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SavePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid preference payload"))
		return
	}

	err := h.service.SaveBrowse(c.Request.Context(), claims.UserID, c.Param("feature"), models.BrowsePreference{
		Filters:  req.Filters,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reset godoc
// @Summary Reset a view preference to defaults
// @Tags Preferences
// @Produce json
// @Param feature path string true "Feature key"
// @Success 204
// @Router /preferences/{feature} [delete]
func (h *PreferenceHandler) Reset(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Reset(c.Request.Context(), claims.UserID, c.Param("feature")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
