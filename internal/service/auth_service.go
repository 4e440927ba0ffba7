package service

import (
	"context"
	"crypto/subtle"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
)

// AdminCredentials is the single credential pair that unlocks admin mode.
type AdminCredentials struct {
	Username string
	Password string
}

// AuthService checks admin credentials. It never consults stored users.
type AuthService struct {
	creds   AdminCredentials
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(creds AdminCredentials, metrics *MetricsService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{creds: creds, metrics: metrics, logger: logger}
}

// Login succeeds only on an exact match of both fields.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.LoginResult, error) {
	if s.creds.Username == "" || s.creds.Password == "" {
		s.logger.Warn("admin login attempted without configured credentials")
		return nil, appErrors.ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.creds.Username))
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.creds.Password))
	if userOK&passOK != 1 {
		s.metrics.RecordLogin(false)
		s.logger.Info("admin login rejected", zap.String("username", req.Username))
		return nil, appErrors.ErrInvalidCredentials
	}
	s.metrics.RecordLogin(true)
	s.logger.Info("admin login accepted")
	return &models.LoginResult{Success: true, IsAdmin: true}, nil
}

// Status reports the admin flag of the current principal.
func (s *AuthService) Status(actor *models.Principal) models.AuthStatus {
	return models.AuthStatus{IsAdmin: actor.Admin()}
}
