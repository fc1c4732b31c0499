package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/equipo46/horarios-api/internal/backendless"
	"github.com/equipo46/horarios-api/internal/models"
	apperrors "github.com/equipo46/horarios-api/pkg/errors"
)

type mockSubjectStore struct {
	calls int

	listSubjects []models.Subject
	listQuery    backendless.ListQuery
	listWhere    string
	listErr      error

	countTotal int
	countWhere string
	countErr   error

	findSubject *models.Subject
	findErr     error

	createdPayload interface{}
	createResult   *models.Subject
	createErr      error

	updatedPatch map[string]interface{}
	updateResult *models.Subject
	updateErr    error

	deletedID string
	deleteErr error
}

func assign(out interface{}, value interface{}) {
	raw, _ := json.Marshal(value)
	_ = json.Unmarshal(raw, out)
}

func (m *mockSubjectStore) FindByID(ctx context.Context, table, id, token string, out interface{}) error {
	m.calls++
	if m.findErr != nil {
		return m.findErr
	}
	assign(out, m.findSubject)
	return nil
}

func (m *mockSubjectStore) List(ctx context.Context, table string, q backendless.ListQuery, token string, out interface{}) error {
	m.calls++
	m.listQuery = q
	m.listWhere = q.Where
	if m.listErr != nil {
		return m.listErr
	}
	assign(out, m.listSubjects)
	return nil
}

func (m *mockSubjectStore) Count(ctx context.Context, table, where, token string) (int, error) {
	m.calls++
	m.countWhere = where
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.countTotal, nil
}

func (m *mockSubjectStore) Create(ctx context.Context, table string, payload interface{}, token string, out interface{}) error {
	m.calls++
	m.createdPayload = payload
	if m.createErr != nil {
		return m.createErr
	}
	assign(out, m.createResult)
	return nil
}

func (m *mockSubjectStore) Update(ctx context.Context, table, id string, payload interface{}, token string, out interface{}) error {
	m.calls++
	if patch, ok := payload.(map[string]interface{}); ok {
		m.updatedPatch = patch
	}
	if m.updateErr != nil {
		return m.updateErr
	}
	assign(out, m.updateResult)
	return nil
}

func (m *mockSubjectStore) Delete(ctx context.Context, table, id, token string) error {
	m.calls++
	m.deletedID = id
	return m.deleteErr
}

func newSubjectService(store *mockSubjectStore) *SubjectService {
	return NewSubjectService(store, validator.New(), zap.NewNop())
}

func TestSubjectListAssemblesPage(t *testing.T) {
	store := &mockSubjectStore{
		countTotal: 50,
		listSubjects: []models.Subject{
			{ObjectID: "1", Name: "Cálculo I", Code: "CALC1"},
			{ObjectID: "2", Name: "Física I", Code: "FIS1"},
		},
	}
	svc := newSubjectService(store)

	page, err := svc.List(context.Background(), models.PageQuery{PageSize: 10, Offset: 20}, "T1")
	require.NoError(t, err)
	assert.Equal(t, 50, page.Total)
	assert.Equal(t, 2, page.Count)
	assert.Equal(t, 20, page.Offset)
	assert.Len(t, page.Results, 2)
	assert.Equal(t, 10, store.listQuery.PageSize)
	assert.Equal(t, 20, store.listQuery.Offset)
	assert.Empty(t, store.listWhere)
}

func TestSubjectListDefaultsAndCodeFilter(t *testing.T) {
	store := &mockSubjectStore{countTotal: 1, listSubjects: []models.Subject{{ObjectID: "1", Code: "CALC1"}}}
	svc := newSubjectService(store)

	page, err := svc.List(context.Background(), models.PageQuery{Code: "CALC1"}, "T1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPageSize, store.listQuery.PageSize)
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, "code = 'CALC1'", store.listWhere)
	assert.Equal(t, "code = 'CALC1'", store.countWhere)
}

func TestSubjectListFilterValueWithQuoteStaysLiteral(t *testing.T) {
	store := &mockSubjectStore{}
	svc := newSubjectService(store)

	_, err := svc.List(context.Background(), models.PageQuery{Code: "CALC'1"}, "T1")
	require.NoError(t, err)
	assert.Equal(t, "code = 'CALC''1'", store.countWhere)
}

func TestSubjectListEmptyRemoteResult(t *testing.T) {
	store := &mockSubjectStore{countTotal: 0}
	svc := newSubjectService(store)

	page, err := svc.List(context.Background(), models.PageQuery{}, "T1")
	require.NoError(t, err)
	assert.Equal(t, 0, page.Count)
	assert.NotNil(t, page.Results)
}

func TestSubjectCreateAppliesDefaults(t *testing.T) {
	store := &mockSubjectStore{createResult: &models.Subject{ObjectID: "ABC123", Name: "Cálculo I", Code: "CALC1", Kind: "class", WeeklyLoadHours: 4}}
	svc := newSubjectService(store)

	subject, err := svc.Create(context.Background(), models.SubjectCreate{Name: " Cálculo I ", Code: " CALC1 "}, "T1")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", subject.ObjectID)

	payload, ok := store.createdPayload.(subjectPayload)
	require.True(t, ok)
	assert.Equal(t, "Cálculo I", payload.Name)
	assert.Equal(t, "CALC1", payload.Code)
	assert.Equal(t, models.KindClass, payload.Kind)
	assert.Equal(t, models.DefaultWeeklyLoadHours, payload.WeeklyLoadHours)
}

func TestSubjectCreateMissingFieldsNeverReachesStore(t *testing.T) {
	store := &mockSubjectStore{}
	svc := newSubjectService(store)

	_, err := svc.Create(context.Background(), models.SubjectCreate{Name: "Cálculo I"}, "T1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation.Code, apperrors.FromError(err).Code)
	assert.Zero(t, store.calls)
}

func TestSubjectCreateBlankNameRejectedBeforeStore(t *testing.T) {
	store := &mockSubjectStore{}
	svc := newSubjectService(store)

	_, err := svc.Create(context.Background(), models.SubjectCreate{Name: "   ", Code: "CALC1"}, "T1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation.Code, apperrors.FromError(err).Code)
	assert.Zero(t, store.calls)
}

func TestSubjectCreateInvalidKindRejected(t *testing.T) {
	store := &mockSubjectStore{}
	svc := newSubjectService(store)

	_, err := svc.Create(context.Background(), models.SubjectCreate{Name: "Cálculo I", Code: "CALC1", Kind: "seminar"}, "T1")
	require.Error(t, err)
	assert.Zero(t, store.calls)
}

func TestSubjectCreateNegativeHoursRejected(t *testing.T) {
	store := &mockSubjectStore{}
	svc := newSubjectService(store)

	hours := -1
	_, err := svc.Create(context.Background(), models.SubjectCreate{Name: "Cálculo I", Code: "CALC1", WeeklyLoadHours: &hours}, "T1")
	require.Error(t, err)
	assert.Zero(t, store.calls)
}

func TestSubjectCreateConflictPassesThrough(t *testing.T) {
	store := &mockSubjectStore{createErr: apperrors.Clone(apperrors.ErrConflict, "duplicate code")}
	svc := newSubjectService(store)

	_, err := svc.Create(context.Background(), models.SubjectCreate{Name: "Cálculo I", Code: "CALC1"}, "T1")
	assert.Equal(t, apperrors.ErrConflict.Code, apperrors.FromError(err).Code)
}

func TestSubjectUpdateForwardsOnlySuppliedFields(t *testing.T) {
	store := &mockSubjectStore{updateResult: &models.Subject{ObjectID: "ABC123", Name: "Cálculo II"}}
	svc := newSubjectService(store)

	name := "Cálculo II"
	_, err := svc.Update(context.Background(), "ABC123", models.SubjectUpdate{Name: &name}, "T1")
	require.NoError(t, err)
	require.Len(t, store.updatedPatch, 1)
	assert.Equal(t, "Cálculo II", store.updatedPatch["name"])
}

func TestSubjectUpdateBlankCodeRejectedBeforeStore(t *testing.T) {
	store := &mockSubjectStore{}
	svc := newSubjectService(store)

	code := "  "
	_, err := svc.Update(context.Background(), "ABC123", models.SubjectUpdate{Code: &code}, "T1")
	require.Error(t, err)
	assert.Zero(t, store.calls)
}

func TestSubjectGetRequiresID(t *testing.T) {
	store := &mockSubjectStore{}
	svc := newSubjectService(store)

	_, err := svc.Get(context.Background(), "  ", "T1")
	require.Error(t, err)
	assert.Zero(t, store.calls)
}

func TestSubjectDeleteForwardsID(t *testing.T) {
	store := &mockSubjectStore{}
	svc := newSubjectService(store)

	require.NoError(t, svc.Delete(context.Background(), "ABC123", "T1"))
	assert.Equal(t, "ABC123", store.deletedID)
}
