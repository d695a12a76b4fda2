// Package auth provides the application layer for accounts and
// credentials.
package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/culinamind/backend/internal/domain/user"
	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/infrastructure/security"
	"github.com/culinamind/backend/internal/ports/inbound"
	"github.com/culinamind/backend/internal/ports/outbound"
	apperrors "github.com/culinamind/backend/pkg/errors"
	"go.uber.org/zap"
)

// Service implements the auth use cases.
type Service struct {
	users   outbound.UserRepository
	tokens  *security.TokenService
	google  outbound.GoogleVerifier
	otps    outbound.OTPStore
	email   outbound.EmailService
	authCfg config.AuthConfig
	logger  *zap.Logger
}

// NewService creates the auth application service.
func NewService(
	users outbound.UserRepository,
	tokens *security.TokenService,
	google outbound.GoogleVerifier,
	otps outbound.OTPStore,
	email outbound.EmailService,
	authCfg config.AuthConfig,
	logger *zap.Logger,
) inbound.AuthService {
	return &Service{
		users:   users,
		tokens:  tokens,
		google:  google,
		otps:    otps,
		email:   email,
		authCfg: authCfg,
		logger:  logger.Named("auth-service"),
	}
}

// Signup registers a new account.
func (s *Service) Signup(ctx context.Context, cmd inbound.SignupCommand) (*user.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.New(apperrors.CodeEmailAlreadyExists, "Email already registered", "")
	}

	u, err := user.New(cmd.FirstName, cmd.LastName, cmd.Email, cmd.Password)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", u.ID))
	return u, nil
}

// Login authenticates with email and password; invalid email and invalid
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*inbound.AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "Invalid credentials", "")
	}
	if !u.CheckPassword(password) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "Invalid credentials", "")
	}

	token, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token").WithCause(err)
	}
	return &inbound.AuthResult{AccessToken: token, User: u}, nil
}

// LoginWithGoogle verifies a Google ID token, creating the account on
// first login.
func (s *Service) LoginWithGoogle(ctx context.Context, idToken string) (*inbound.AuthResult, error) {
	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	u, err := s.users.FindByEmail(ctx, identity.Email)
	if err != nil {
		u = user.NewFromGoogle(identity.FirstName, identity.LastName, identity.Email, identity.Subject)
		if u.FirstName == "" {
			u.FirstName = strings.Split(identity.Email, "@")[0]
		}
		if createErr := s.users.Create(ctx, u); createErr != nil {
			return nil, createErr
		}
		s.logger.Info("google user created", zap.Uint("user_id", u.ID))
	} else if u.GoogleID == "" {
		u.GoogleID = identity.Subject
		if updateErr := s.users.Update(ctx, u); updateErr != nil {
			s.logger.Warn("failed to link google id", zap.Error(updateErr))
		}
	}

	token, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token").WithCause(err)
	}
	return &inbound.AuthResult{AccessToken: token, User: u}, nil
}

// GetProfile returns the account for a user id.
func (s *Service) GetProfile(ctx context.Context, userID uint) (*user.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile changes the account's display names.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, firstName, lastName string) (*user.User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, apperrors.NewValidationError("first name and last name are required")
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.FirstName = firstName
	u.LastName = lastName
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RequestPasswordReset generates a 6-digit code, stores it with expiry,
// and emails it to the account.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return apperrors.New(apperrors.CodeUserNotFound, "Email not found", "")
	}

	code, err := generateOTP()
	if err != nil {
		return apperrors.NewInternalError("failed to generate reset code").WithCause(err)
	}
	if err := s.otps.Put(ctx, u.Email, code, s.authCfg.OTPExpiration); err != nil {
		return apperrors.NewInternalError("failed to store reset code").WithCause(err)
	}
	if err := s.email.SendOTP(ctx, u.Email, code); err != nil {
		return err
	}

	s.logger.Info("password reset requested", zap.Uint("user_id", u.ID))
	return nil
}

// VerifyOTP checks a reset code without consuming it.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	ok, err := s.otps.Verify(ctx, strings.ToLower(strings.TrimSpace(email)), code)
	if err != nil {
		return apperrors.NewInternalError("failed to verify reset code").WithCause(err)
	}
	if !ok {
		return apperrors.New(apperrors.CodeInvalidOTP, "Invalid or expired OTP", "")
	}
	return nil
}

// ConfirmPasswordReset sets a new password after a final code check and
// consumes the code.
func (s *Service) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.VerifyOTP(ctx, email, code); err != nil {
		return err
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return apperrors.New(apperrors.CodeUserNotFound, "Email not found", "")
	}
	if err := u.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	if err := s.otps.Clear(ctx, email); err != nil {
		s.logger.Warn("failed to clear reset code", zap.Error(err))
	}
	s.logger.Info("password reset completed", zap.Uint("user_id", u.ID))
	return nil
}

// generateOTP returns a 6-digit code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
