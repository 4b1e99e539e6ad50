package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"time"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/domain/repository"
	"airtrip-service/pkg/logger"
	"airtrip-service/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

const (
	// PasswordHashCost is the bcrypt work factor for stored passwords
	PasswordHashCost = 10
	// ResetTokenTTL is how long a password reset token is accepted
	ResetTokenTTL    = 10 * time.Minute
	resetTokenBytes  = 32
)

// AuthService manages accounts and password resets. Every operation answers with a
// plain success flag so callers cannot tell a missing account from a wrong secret.
type AuthService struct {
	credentialRepo repository.CredentialRepository
	mailRepo       repository.MailRepository
	resetURLBase   string
	now            func() time.Time
	logger         logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(credentialRepo repository.CredentialRepository, mailRepo repository.MailRepository, resetURLBase string, logger logger.Logger) *AuthService {
	return &AuthService{
		credentialRepo: credentialRepo,
		mailRepo:       mailRepo,
		resetURLBase:   resetURLBase,
		now:            time.Now,
		logger:         logger,
	}
}

// Login checks an email and password pair
func (s *AuthService) Login(ctx context.Context, email, password string) (bool, error) {
	credential, err := s.find(ctx, email)
	if err != nil || credential == nil {
		return false, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("Login rejected", "email", credential.Email)
		return false, nil
	}
	return true, nil
}

// Signup creates an account unless the email is already taken
func (s *AuthService) Signup(ctx context.Context, email, password string) (bool, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}

	existing, err := s.find(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	credential := &entity.Credential{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.credentialRepo.Save(ctx, credential); err != nil {
		return false, fmt.Errorf("failed to save credential: %w", err)
	}

	s.logger.Info("Account created", "email", email)
	return true, nil
}

// SubmitForgotPassword issues a reset token and mails the reset link
func (s *AuthService) SubmitForgotPassword(ctx context.Context, email string) (bool, error) {
	credential, err := s.find(ctx, email)
	if err != nil || credential == nil {
		return false, err
	}

	token, err := utils.GenerateToken(resetTokenBytes)
	if err != nil {
		return false, fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiry := s.now().Add(ResetTokenTTL)
	credential.ResetToken = token
	credential.ResetExpiry = &expiry

	if err := s.credentialRepo.Save(ctx, credential); err != nil {
		return false, fmt.Errorf("failed to save reset token: %w", err)
	}

	if err := s.mailRepo.SendPasswordReset(ctx, credential.Email, s.resetLink(credential.Email, token)); err != nil {
		return false, fmt.Errorf("failed to send reset email: %w", err)
	}

	s.logger.Info("Password reset requested", "email", credential.Email)
	return true, nil
}

// ResetPassword replaces the password when the token matches and has not expired.
// A successful reset consumes the token.
func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) (bool, error) {
	credential, err := s.find(ctx, email)
	if err != nil || credential == nil {
		return false, err
	}

	if credential.ResetToken == "" || token == "" || newPassword == "" {
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(credential.ResetToken), []byte(token)) != 1 {
		s.logger.Info("Reset token mismatch", "email", credential.Email)
		return false, nil
	}
	if credential.ResetExpiry == nil || s.now().After(*credential.ResetExpiry) {
		s.logger.Info("Reset token expired", "email", credential.Email)
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), PasswordHashCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	credential.PasswordHash = string(hash)
	credential.ResetToken = ""
	credential.ResetExpiry = nil

	if err := s.credentialRepo.Save(ctx, credential); err != nil {
		return false, fmt.Errorf("failed to save credential: %w", err)
	}

	s.logger.Info("Password reset", "email", credential.Email)
	return true, nil
}

// find returns nil without error when the account does not exist
func (s *AuthService) find(ctx context.Context, email string) (*entity.Credential, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	credential, err := s.credentialRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find credential: %w", err)
	}
	return credential, nil
}

func (s *AuthService) resetLink(email, token string) string {
	query := url.Values{}
	query.Set("email", email)
	query.Set("token", token)
	return s.resetURLBase + "?" + query.Encode()
}
