package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/backend/domain"
	appLogger "github.com/taskdeck/backend/pkg/logger"
	"github.com/taskdeck/backend/repository"
	"github.com/taskdeck/backend/usecase"
)

// Config carries the auth-flow settings.
type Config struct {
	TokenSecret   string
	RevocationTTL time.Duration
	ResetTokenTTL time.Duration
	PublicBaseURL string
}

type UseCase struct {
	users       repository.UserRepository
	revocations repository.RevocationRepository
	mail        usecase.MailEnqueuer
	logger      *zap.Logger
	cfg         Config
}

func New(users repository.UserRepository, revocations repository.RevocationRepository, mail usecase.MailEnqueuer, cfg Config, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = time.Hour
	}
	if cfg.RevocationTTL <= 0 {
		cfg.RevocationTTL = 720 * time.Hour
	}
	return &UseCase{
		users:       users,
		revocations: revocations,
		mail:        mail,
		logger:      logger,
		cfg:         cfg,
	}
}

// Register creates a new account. Username and email uniqueness is enforced by
// explicit pre-checks rather than a database constraint.
func (uc *UseCase) Register(ctx context.Context, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return domain.ErrInvalidPayload
	}

	if _, err := uc.users.GetByUsername(ctx, username); err == nil {
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("user registered", zap.String("user_id", user.ID))
	return nil
}

// Login verifies credentials and issues a signed session token.
func (uc *UseCase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrBadCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrBadCredentials
	}

	token, err := signToken(uc.cfg.TokenSecret, user.ID, user.Username)
	if err != nil {
		return "", err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("user logged in", zap.String("user_id", user.ID))
	return token, nil
}

// Logout adds the presented token to the revocation set. The set is consulted
// on every verification, so a logged-out token stops working immediately.
func (uc *UseCase) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	return uc.revocations.Revoke(ctx, TokenID(rawToken), uc.cfg.RevocationTTL)
}

// RequestPasswordReset stores a fresh single-use token on the account and
// enqueues the reset email. Delivery is asynchronous; the caller never waits
// on SMTP.
func (uc *UseCase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(uc.cfg.ResetTokenTTL)
	if err := uc.users.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", uc.cfg.PublicBaseURL, token)
	mail := usecase.Mail{
		To:      user.Email,
		Subject: "Password Reset For TaskDeck",
		HTMLBody: fmt.Sprintf(
			`<html><body><p>Click <a href="%s">here</a> to reset your password.</p></body></html>`,
			resetLink,
		),
	}
	if err := uc.mail.EnqueueMail(ctx, mail); err != nil {
		return err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("password reset requested", zap.String("user_id", user.ID))
	return nil
}

// ResetPassword redeems a reset token. The token must match and be unexpired;
// storing the new hash clears the token so it cannot be replayed.
func (uc *UseCase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return domain.ErrBadResetToken
	}

	user, err := uc.users.GetByResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrBadResetToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("password reset completed", zap.String("user_id", user.ID))
	return nil
}

// UserInfo resolves the account behind a verified session.
func (uc *UseCase) UserInfo(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
