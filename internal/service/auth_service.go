package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/equipo46/horarios-api/internal/models"
)

type loginStore interface {
	Login(ctx context.Context, login, password string) (*models.Session, error)
}

// AuthService validates credentials locally and delegates authentication to
// the remote store. No session state is held here.
type AuthService struct {
	store     loginStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store loginStore, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{store: store, validator: validate, logger: logger}
}

// Login authenticates the user remotely and returns the issued session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid login payload")
	}

	session, err := s.store.Login(ctx, req.Login, req.Password)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("object_id", session.ObjectID))
	return session, nil
}
