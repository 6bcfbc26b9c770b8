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

type questionService interface {
	Browse(ctx context.Context, userID string, filter models.QuestionFilter) (*service.QuestionPage, error)
}

// QuestionHandler manages question statistics HTTP endpoints.
type QuestionHandler struct {
	service questionService
}

// NewQuestionHandler constructs the handler.
func NewQuestionHandler(service questionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// List godoc
// @Summary Browse question statistics
// @Tags Questions
// @Produce json
// @Param exam_ref query string false "Exam reference"
// @Param min_attempts query int false "Minimum attempts"
// @Param category query string false "Category"
// @Param search query string false "Question ID or category search"
// @Param min_wrong_pct query number false "Minimum wrong percentage"
// @Param max_wrong_pct query number false "Maximum wrong percentage"
// @Param speed query string false "normal, slow or very_slow"
// @Param difficulty query string false "easy, moderate or hard"
// @Param time_threshold query number false "Slow cut-off in seconds"
// @Param page query int false "Page"
// @Param page_size query int false "Page size, -1 for all"
// @Success 200 {object} response.Envelope
// @Router /questions [get]
func (h *QuestionHandler) List(c *gin.Context) {
	var req dto.QuestionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid question list query"))
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
		Window:        models.PageWindow{Page: req.Page, PageSize: req.PageSize},
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

	meta := browseMeta(page.Facets, page.Stale, page.StaleError, page.PageReset)
	meta["time_threshold"] = page.TimeThreshold
	response.JSON(c, http.StatusOK, page.Items, page.Pagination, meta)
}
