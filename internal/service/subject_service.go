package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/equipo46/horarios-api/internal/backendless"
	"github.com/equipo46/horarios-api/internal/models"
	apperrors "github.com/equipo46/horarios-api/pkg/errors"
)

// subjectsTable is the remote table holding subject records.
const subjectsTable = "Subjects"

type subjectStore interface {
	FindByID(ctx context.Context, table, id, token string, out interface{}) error
	List(ctx context.Context, table string, q backendless.ListQuery, token string, out interface{}) error
	Count(ctx context.Context, table, where, token string) (int, error)
	Create(ctx context.Context, table string, payload interface{}, token string, out interface{}) error
	Update(ctx context.Context, table, id string, payload interface{}, token string, out interface{}) error
	Delete(ctx context.Context, table, id, token string) error
}

// SubjectService owns subject validation, default substitution and page
// assembly. Validation failures never reach the remote store.
type SubjectService struct {
	store     subjectStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService creates a new subject service.
func NewSubjectService(store subjectStore, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{store: store, validator: validate, logger: logger}
}

// List returns one page of subjects plus the total matching the filter.
// The total comes from a separate count call so it ignores pagination.
func (s *SubjectService) List(ctx context.Context, q models.PageQuery, token string) (*models.Page[models.Subject], error) {
	if q.PageSize <= 0 {
		q.PageSize = models.DefaultPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	var where string
	if q.Code != "" {
		where = backendless.WhereEqual("code", q.Code)
	}

	total, err := s.store.Count(ctx, subjectsTable, where, token)
	if err != nil {
		return nil, err
	}

	subjects := []models.Subject{}
	listQuery := backendless.ListQuery{PageSize: q.PageSize, Offset: q.Offset, Where: where}
	if err := s.store.List(ctx, subjectsTable, listQuery, token, &subjects); err != nil {
		return nil, err
	}
	if subjects == nil {
		// a remote "null" body resets the slice; results must stay an array
		subjects = []models.Subject{}
	}

	return &models.Page[models.Subject]{
		Total:   total,
		Count:   len(subjects),
		Offset:  q.Offset,
		Results: subjects,
	}, nil
}

// Get returns a subject by its remote identifier.
func (s *SubjectService) Get(ctx context.Context, id, token string) (*models.Subject, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.Clone(apperrors.ErrValidation, "subject id is required")
	}

	subject := &models.Subject{}
	if err := s.store.FindByID(ctx, subjectsTable, id, token, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// subjectPayload is the exact field set forwarded on create.
type subjectPayload struct {
	Name            string `json:"name"`
	Code            string `json:"code"`
	Kind            string `json:"kind"`
	WeeklyLoadHours int    `json:"weeklyLoadHours"`
}

// Create stores a new subject, applying the kind and weekly-load defaults.
// Code uniqueness is enforced remotely and surfaces as a conflict.
func (s *SubjectService) Create(ctx context.Context, req models.SubjectCreate, token string) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid subject payload")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.TrimSpace(req.Code)
	if req.Name == "" || req.Code == "" {
		return nil, apperrors.Clone(apperrors.ErrValidation, "name and code must not be blank")
	}

	payload := subjectPayload{
		Name:            req.Name,
		Code:            req.Code,
		Kind:            req.Kind,
		WeeklyLoadHours: models.DefaultWeeklyLoadHours,
	}
	if payload.Kind == "" {
		payload.Kind = models.KindClass
	}
	if req.WeeklyLoadHours != nil {
		payload.WeeklyLoadHours = *req.WeeklyLoadHours
	}

	subject := &models.Subject{}
	if err := s.store.Create(ctx, subjectsTable, payload, token, subject); err != nil {
		return nil, err
	}

	s.logger.Info("subject created", zap.String("object_id", subject.ObjectID), zap.String("code", subject.Code))
	return subject, nil
}

// Update applies a partial patch; only supplied fields are forwarded, so
// omitted fields keep their remote values.
func (s *SubjectService) Update(ctx context.Context, id string, req models.SubjectUpdate, token string) (*models.Subject, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.Clone(apperrors.ErrValidation, "subject id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid subject payload")
	}

	patch := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Clone(apperrors.ErrValidation, "name must not be blank")
		}
		patch["name"] = name
	}
	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return nil, apperrors.Clone(apperrors.ErrValidation, "code must not be blank")
		}
		patch["code"] = code
	}
	if req.Kind != nil {
		patch["kind"] = *req.Kind
	}
	if req.WeeklyLoadHours != nil {
		patch["weeklyLoadHours"] = *req.WeeklyLoadHours
	}

	subject := &models.Subject{}
	if err := s.store.Update(ctx, subjectsTable, id, patch, token, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Delete removes a subject. A second delete of the same id surfaces the
// remote NotFound.
func (s *SubjectService) Delete(ctx context.Context, id, token string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.Clone(apperrors.ErrValidation, "subject id is required")
	}
	return s.store.Delete(ctx, subjectsTable, id, token)
}

// validationError converts validator output into the API taxonomy, keeping
// the offending field name as detail.
func validationError(err error, message string) *apperrors.Error {
	appErr := apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, message)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		appErr.Details = fmt.Sprintf("field '%s' failed on '%s'", first.Field(), first.Tag())
	}
	return appErr
}
