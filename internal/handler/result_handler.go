package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/junyours/occ-admission-sub001/internal/dto"
	"github.com/junyours/occ-admission-sub001/internal/models"
	"github.com/junyours/occ-admission-sub001/internal/service"
	appErrors "github.com/junyours/occ-admission-sub001/pkg/errors"
	"github.com/junyours/occ-admission-sub001/pkg/response"
)

type resultService interface {
	Browse(ctx context.Context, userID string, filter models.ResultFilter) (*service.ResultPage, error)
	Delete(ctx context.Context, id string) error
}

// ResultHandler manages exam result HTTP endpoints.
type ResultHandler struct {
	service resultService
}

// NewResultHandler constructs the handler.
func NewResultHandler(service resultService) *ResultHandler {
	return &ResultHandler{service: service}
}

// List godoc
// @Summary Browse exam results
// @Tags Results
// @Produce json
// @Param exam_ref query string false "Exam reference"
// @Param date_from query string false "Finished after"
// @Param date_to query string false "Finished before"
// @Param search query string false "Examinee name or number"
// @Param min_score query number false "Minimum score"
// @Param max_score query number false "Maximum score"
// @Param outcome query string false "passed or failed"
// @Param page query int false "Page"
// @Param page_size query int false "Page size, -1 for all"
// @Success 200 {object} response.Envelope
// @Router /results [get]
func (h *ResultHandler) List(c *gin.Context) {
	var req dto.ResultListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid result list query"))
		return
	}

	filter, err := resultFilterFromRequest(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	page, err := h.service.Browse(c.Request.Context(), claims.UserID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, page.Items, page.Pagination, browseMeta(page.Facets, page.Stale, page.StaleError, page.PageReset))
}

// Delete godoc
// @Summary Delete an exam result
// @Tags Results
// @Produce json
// @Param id path string true "Result ID"
// @Success 204
// @Router /results/{id} [delete]
func (h *ResultHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func resultFilterFromRequest(req dto.ResultListRequest) (models.ResultFilter, error) {
	filter := models.ResultFilter{
		ExamRef: req.ExamRef,
		Search:  req.Search,
		Outcome: req.Outcome,
		Window:  models.PageWindow{Page: req.Page, PageSize: req.PageSize},
	}

	var err error
	if filter.DateFrom, err = dto.ParseOptionalDate(req.DateFrom, "date_from"); err != nil {
		return filter, err
	}
	if filter.DateTo, err = dto.ParseOptionalDate(req.DateTo, "date_to"); err != nil {
		return filter, err
	}
	if filter.MinScore, err = dto.ParseOptionalFloat(req.MinScore, "min_score"); err != nil {
		return filter, err
	}
	if filter.MaxScore, err = dto.ParseOptionalFloat(req.MaxScore, "max_score"); err != nil {
		return filter, err
	}
	return filter, nil
}
