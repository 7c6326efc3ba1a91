package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/zerohunger/portal/internal/backend"
	"github.com/zerohunger/portal/internal/domain"
	"github.com/zerohunger/portal/internal/geo"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

// User-facing messages of the auth flows.
const (
	MsgAllFieldsMandatory   = "All fields are mandatory"
	MsgRegistrationFailed   = "Registration failed"
	MsgRegistrationComplete = "Registration successful. Please login."
	MsgLoginFailed          = "Login failed"
)

// SessionWriter is the only path that changes a session's credential and role.
type SessionWriter interface {
	SignIn(ctx context.Context, sess *domain.Session, credential string, role domain.Role) error
	SignOut(sess *domain.Session)
}

// AuthService coordinates registration, login and logout.
type AuthService struct {
	backend  *backend.Client
	sessions SessionWriter
	logger   *zap.Logger
}

// AuthDependencies bundles collaborators of the auth service.
type AuthDependencies struct {
	Backend  *backend.Client
	Sessions SessionWriter
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{backend: deps.Backend, sessions: deps.Sessions, logger: logger}
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     domain.Role
	Address  string
	Lat      string
	Lng      string
	GeoError int
}

// Register validates the form locally and creates the account. Nothing is sent
// to the backend unless every field, coordinates included, is present.
func (s *AuthService) Register(ctx context.Context, sess *domain.Session, in RegisterInput) error {
	if in.GeoError != 0 {
		s.logger.Debug("registration geolocation failed", zap.String("status", geo.StatusMessage(in.GeoError)))
	}
	fields := []string{in.Name, in.Email, in.Password, in.Phone, in.Address, in.Lat, in.Lng}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return apperrors.NewValidationError(MsgAllFieldsMandatory, nil)
		}
	}
	loc, err := geo.ParseCoordinates(in.Lat, in.Lng)
	if err != nil {
		return apperrors.NewValidationError(MsgAllFieldsMandatory, map[string]any{"location": err.Error()})
	}
	role := in.Role
	if role == "" {
		role = domain.RoleDonor
	}

	_, err = s.backend.Register(ctx, backend.CallerFor(sess), backend.RegisterRequest{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
		Role:     role,
		Address:  in.Address,
		Location: loc,
	})
	return withFallback(err, MsgRegistrationFailed)
}

// Login exchanges credentials for a backend token and stores it with the role.
func (s *AuthService) Login(ctx context.Context, sess *domain.Session, email, password string) (domain.Role, error) {
	resp, err := s.backend.Login(ctx, backend.CallerFor(sess), backend.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", withFallback(err, MsgLoginFailed)
	}
	if resp.AccessToken == "" || !resp.Role.Valid() {
		s.logger.Warn("login response missing token or role", zap.String("role", string(resp.Role)))
		return "", apperrors.NewBackendError(0, MsgLoginFailed)
	}
	if err := s.sessions.SignIn(ctx, sess, resp.AccessToken, resp.Role); err != nil {
		return "", apperrors.NewBackendError(0, MsgLoginFailed)
	}
	s.logger.Info("signed in", zap.String("session_id", sess.ID), zap.String("role", string(resp.Role)))
	return resp.Role, nil
}

// Logout clears the credential and role together.
func (s *AuthService) Logout(sess *domain.Session) {
	s.sessions.SignOut(sess)
	s.logger.Info("signed out", zap.String("session_id", sess.ID))
}
