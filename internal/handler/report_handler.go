package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/junyours/occ-admission-sub001/internal/dto"
	"github.com/junyours/occ-admission-sub001/internal/models"
	"github.com/junyours/occ-admission-sub001/internal/service"
	appErrors "github.com/junyours/occ-admission-sub001/pkg/errors"
	"github.com/junyours/occ-admission-sub001/pkg/response"
)

type reportService interface {
	Render(ctx context.Context, filter models.ResultFilter, format service.ReportFormat, title string) (*service.Report, error)
	RenderQuestions(ctx context.Context, filter models.QuestionFilter, format service.ReportFormat, title string) (*service.Report, error)
	ResolveDownload(token string) (*service.Download, error)
}

// ReportHandler manages report HTTP endpoints.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Render godoc
// @Summary Render a result report
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.RenderReportRequest true "Report request"
// @Success 200 {object} response.Envelope
// @Router /reports [post]
func (h *ReportHandler) Render(c *gin.Context) {
	var req dto.RenderReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid report payload"))
		return
	}

	filter := models.ResultFilter{
		ExamRef: req.ExamRef,
		Search:  req.Search,
		Outcome: req.Outcome,
	}
	var err error
	if filter.DateFrom, err = dto.ParseOptionalDate(req.DateFrom, "date_from"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.DateTo, err = dto.ParseOptionalDate(req.DateTo, "date_to"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.MinScore, err = dto.ParseOptionalFloat(req.MinScore, "min_score"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.MaxScore, err = dto.ParseOptionalFloat(req.MaxScore, "max_score"); err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.service.Render(c.Request.Context(), filter, service.ReportFormat(req.Format), req.Title)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, report)
}

// RenderQuestions godoc
// @Summary Render a question analysis report
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.RenderQuestionReportRequest true "Report request"
// @Success 200 {object} response.Envelope
// @Router /reports/questions [post]
func (h *ReportHandler) RenderQuestions(c *gin.Context) {
	var req dto.RenderQuestionReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid report payload"))
		return
	}

	filter := models.QuestionFilter{
		ExamRef:       req.ExamRef,
		MinAttempts:   req.MinAttempts,
		Category:      req.Category,
		Search:        req.Search,
		Speed:         req.Speed,
		Difficulty:    req.Difficulty,
		TimeThreshold: req.TimeThreshold,
	}
	var err error
	if filter.MinWrongPct, err = dto.ParseOptionalFloat(req.MinWrongPct, "min_wrong_pct"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.MaxWrongPct, err = dto.ParseOptionalFloat(req.MaxWrongPct, "max_wrong_pct"); err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.service.RenderQuestions(c.Request.Context(), filter, service.ReportFormat(req.Format), req.Title)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, report)
}

func (h *ReportHandler) respond(c *gin.Context, report *service.Report) {
	if report.Format == service.FormatHTML {
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Download godoc
// @Summary Download a stored report
// @Tags Reports
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200
// @Router /reports/download [get]
func (h *ReportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}

	dl, err := h.service.ResolveDownload(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer dl.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.Filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, -1, dl.ContentType, dl.File, nil)
}
