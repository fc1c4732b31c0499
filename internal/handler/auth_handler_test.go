package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equipo46/horarios-api/internal/models"
	apperrors "github.com/equipo46/horarios-api/pkg/errors"
)

type authServiceMock struct {
	calls   int
	session *models.Session
	err     error
	lastReq models.LoginRequest
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

func TestLoginReturnsSessionEnvelope(t *testing.T) {
	mock := &authServiceMock{session: &models.Session{Token: "T1", ObjectID: "U1", Email: "test@example.com"}}
	h := NewAuthHandler(mock)
	body, _ := json.Marshal(models.LoginRequest{Login: "test@example.com", Password: "Test123!"})
	c, w := testContext(t, http.MethodPost, "/auth/login", body)

	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data models.Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "T1", resp.Data.Token)
	assert.Equal(t, "U1", resp.Data.ObjectID)
	assert.Equal(t, "test@example.com", resp.Data.Email)
	assert.Equal(t, "test@example.com", mock.lastReq.Login)
}

func TestLoginSerialisesTokenUnderDashedKey(t *testing.T) {
	mock := &authServiceMock{session: &models.Session{Token: "T1", ObjectID: "U1", Email: "test@example.com"}}
	h := NewAuthHandler(mock)
	body, _ := json.Marshal(models.LoginRequest{Login: "test@example.com", Password: "Test123!"})
	c, w := testContext(t, http.MethodPost, "/auth/login", body)

	h.Login(c)

	var resp map[string]map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "T1", resp["data"]["user-token"])
}

func TestLoginInvalidBodyNeverReachesService(t *testing.T) {
	mock := &authServiceMock{}
	h := NewAuthHandler(mock)
	c, w := testContext(t, http.MethodPost, "/auth/login", []byte(`not json`))

	h.Login(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mock.calls)
}

func TestLoginBadCredentialsMapTo401(t *testing.T) {
	mock := &authServiceMock{err: apperrors.Clone(apperrors.ErrInvalidCredentials, "")}
	h := NewAuthHandler(mock)
	body, _ := json.Marshal(models.LoginRequest{Login: "test@example.com", Password: "wrong"})
	c, w := testContext(t, http.MethodPost, "/auth/login", body)

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}
