package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/junyours/occ-admission-sub001/internal/dto"
	"github.com/junyours/occ-admission-sub001/internal/models"
	"github.com/junyours/occ-admission-sub001/internal/service"
	"github.com/junyours/occ-admission-sub001/internal/upstream"
	appErrors "github.com/junyours/occ-admission-sub001/pkg/errors"
	"github.com/junyours/occ-admission-sub001/pkg/response"
)

type examService interface {
	Browse(ctx context.Context, userID string, filter models.ExamFilter) (*service.ExamPage, error)
	Create(ctx context.Context, payload upstream.CreateExamPayload) (*models.Exam, error)
	SetStatus(ctx context.Context, id string, status models.ExamStatus) error
	Archive(ctx context.Context, id string) error
}

// ExamHandler manages exam HTTP endpoints.
type ExamHandler struct {
	service examService
}

// NewExamHandler constructs the handler.
func NewExamHandler(service examService) *ExamHandler {
	return &ExamHandler{service: service}
}

// List godoc
// @Summary List exams
// @Tags Exams
// @Produce json
// @Param status query string false "Lifecycle status"
// @Param subject query string false "Subject"
// @Param search query string false "Title search"
// @Param page query int false "Page"
// @Param page_size query int false "Page size, -1 for all"
// @Success 200 {object} response.Envelope
// @Router /exams [get]
func (h *ExamHandler) List(c *gin.Context) {
	var req dto.ExamListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid exam list query"))
		return
	}

	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	page, err := h.service.Browse(c.Request.Context(), claims.UserID, models.ExamFilter{
		Status:  req.Status,
		Subject: req.Subject,
		Search:  req.Search,
		Window:  models.PageWindow{Page: req.Page, PageSize: req.PageSize},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, page.Items, page.Pagination, browseMeta(page.Facets, page.Stale, page.StaleError, page.PageReset))
}

// Create godoc
// @Summary Create an exam
// @Tags Exams
// @Accept json
// @Produce json
// @Param payload body dto.CreateExamRequest true "Exam"
// @Success 201 {object} response.Envelope
// @Router /exams [post]
func (h *ExamHandler) Create(c *gin.Context) {
	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid exam payload"))
		return
	}

	exam, err := h.service.Create(c.Request.Context(), upstream.CreateExamPayload{
		Title:         req.Title,
		Subject:       req.Subject,
		QuestionCount: req.QuestionCount,
		DurationMins:  req.DurationMins,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exam)
}

// SetStatus godoc
// @Summary Set exam status
// @Tags Exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param payload body dto.SetExamStatusRequest true "Status"
// @Success 204
// @Router /exams/{id}/status [patch]
func (h *ExamHandler) SetStatus(c *gin.Context) {
	var req dto.SetExamStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid status payload"))
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), c.Param("id"), models.ExamStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Archive godoc
// @Summary Archive an exam
// @Tags Exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 204
// @Router /exams/{id}/archive [post]
func (h *ExamHandler) Archive(c *gin.Context) {
	if err := h.service.Archive(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func browseMeta(facets models.Facets, stale bool, staleError string, pageReset bool) map[string]interface{} {
	meta := map[string]interface{}{
		"facets": facets,
		"stale":  stale,
	}
	if staleError != "" {
		meta["stale_error"] = staleError
	}
	if pageReset {
		meta["page_reset"] = true
	}
	return meta
}
