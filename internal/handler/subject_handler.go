package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/equipo46/horarios-api/internal/middleware"
	"github.com/equipo46/horarios-api/internal/models"
	apperrors "github.com/equipo46/horarios-api/pkg/errors"
	"github.com/equipo46/horarios-api/pkg/response"
)

type subjectService interface {
	List(ctx context.Context, q models.PageQuery, token string) (*models.Page[models.Subject], error)
	Get(ctx context.Context, id, token string) (*models.Subject, error)
	Create(ctx context.Context, req models.SubjectCreate, token string) (*models.Subject, error)
	Update(ctx context.Context, id string, req models.SubjectUpdate, token string) (*models.Subject, error)
	Delete(ctx context.Context, id, token string) error
}

// SubjectHandler handles subject endpoints.
type SubjectHandler struct {
	service subjectService
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(svc subjectService) *SubjectHandler {
	return &SubjectHandler{service: svc}
}

// List godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Param pageSize query int false "Page size (1-100, default 50)"
// @Param offset query int false "Offset (default 0)"
// @Param code query string false "Filter by exact subject code"
// @Success 200 {object} models.Page[models.Subject]
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	q, err := parsePageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), q, middleware.TokenFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, page)
}

// Get godoc
// @Summary Get subject by id
// @Tags Subjects
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /subjects/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	subject, err := h.service.Get(c.Request.Context(), c.Param("id"), middleware.TokenFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject)
}

// Create godoc
// @Summary Create subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body models.SubjectCreate true "Subject payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req models.SubjectCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject payload"))
		return
	}

	subject, err := h.service.Create(c.Request.Context(), req, middleware.TokenFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// Update godoc
// @Summary Update subject
// @Description Partial update: only supplied fields change
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path string true "Subject ID"
// @Param payload body models.SubjectUpdate true "Subject patch"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /subjects/{id} [put]
func (h *SubjectHandler) Update(c *gin.Context) {
	var req models.SubjectUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject payload"))
		return
	}

	subject, err := h.service.Update(c.Request.Context(), c.Param("id"), req, middleware.TokenFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject)
}

// Delete godoc
// @Summary Delete subject
// @Tags Subjects
// @Param id path string true "Subject ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.TokenFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// parsePageQuery reads pagination parameters strictly: non-numeric values
// are rejected here, out-of-range values are clamped downstream.
func parsePageQuery(c *gin.Context) (models.PageQuery, error) {
	q := models.PageQuery{Code: strings.TrimSpace(c.Query("code"))}

	if raw := c.Query("pageSize"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return q, apperrors.Clone(apperrors.ErrValidation, "pageSize must be an integer")
		}
		q.PageSize = v
	}
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return q, apperrors.Clone(apperrors.ErrValidation, "offset must be an integer")
		}
		q.Offset = v
	}
	return q, nil
}
