package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	verifySubject = "Verify Your Email - OTP Code"
	resendSubject = "Resend OTP Code"
)

type RegisterInput struct {
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8,max=72"`
	Profile  domain.Profile `json:"profile"`
}

type LoginResult struct {
	Tokens *TokenPair
	User   *domain.User
}

type AuthDeps struct {
	Users        repository.UserRepository
	OTP          *OTPIssuer
	Tokens       *TokenService
	Mailer       MailSender
	Events       EventPublisher
	Denylist     repository.TokenDenylist
	StoreTimeout time.Duration
	MailTimeout  time.Duration
	Logger       *logger.Logger
}

// AuthService drives the account lifecycle: registration, email
// verification by OTP, login and token rotation.
type AuthService struct {
	users        repository.UserRepository
	otp          *OTPIssuer
	tokens       *TokenService
	mailer       MailSender
	events       EventPublisher
	denylist     repository.TokenDenylist
	storeTimeout time.Duration
	mailTimeout  time.Duration
	logger       *logger.Logger
	now          func() time.Time

	// dummyHash keeps unknown-email logins as slow as wrong-password ones.
	dummyHash []byte
}

func NewAuthService(deps AuthDeps) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("campus-dummy-password"), bcrypt.DefaultCost)
	return &AuthService{
		users:        deps.Users,
		otp:          deps.OTP,
		tokens:       deps.Tokens,
		mailer:       deps.Mailer,
		events:       deps.Events,
		denylist:     deps.Denylist,
		storeTimeout: deps.StoreTimeout,
		mailTimeout:  deps.MailTimeout,
		logger:       deps.Logger.Named("AuthService"),
		now:          time.Now,
		dummyHash:    dummy,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	storeCtx, cancel := withTimeout(ctx, s.storeTimeout)
	defer cancel()

	_, err := s.users.GetUserByEmail(storeCtx, in.Email)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateUser
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(storeCtx, &domain.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Profile:      in.Profile,
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", user.ID))
	s.logger.Info("User registered", zap.String("userID", user.ID), zap.String("email", user.Email))

	if err := s.dispatchOTP(ctx, user.Email, verifySubject, "Your OTP code is %s. It will expire in %d minutes."); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.SubjectUserRegistered, domain.UserEvent{UserID: user.ID, Email: user.Email, OccurredAt: s.now().UTC()})
	return user, nil
}

// ResendOTP replaces the pending code of an unverified user and mails it again.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	ctx, span := tracer.Start(ctx, "AuthService.ResendOTP")
	defer span.End()

	email = normalizeEmail(email)
	if email == "" {
		return domain.NewValidationError(domain.FieldError{Field: "email", Message: "email is required"})
	}

	storeCtx, cancel := withTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.users.GetUserByEmail(storeCtx, email)
	if err != nil {
		return err
	}
	if user.Verified {
		return domain.ErrAlreadyVerified
	}

	return s.dispatchOTP(ctx, email, resendSubject, "Your new OTP code is %s. It will expire in %d minutes.")
}

func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	ctx, span := tracer.Start(ctx, "AuthService.VerifyOTP")
	defer span.End()

	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	var missing []domain.FieldError
	if email == "" {
		missing = append(missing, domain.FieldError{Field: "email", Message: "email is required"})
	}
	if code == "" {
		missing = append(missing, domain.FieldError{Field: "otp", Message: "otp is required"})
	}
	if len(missing) > 0 {
		return domain.NewValidationError(missing...)
	}

	storeCtx, cancel := withTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.users.GetUserByEmail(storeCtx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrOTPNotFound
		}
		return err
	}

	if err := s.otp.Verify(storeCtx, email, code); err != nil {
		return err
	}
	if err := s.users.MarkEmailAsVerified(storeCtx, email); err != nil {
		// The account is still pending, so the consumed code goes back.
		s.logger.Error("Failed to mark email verified after consuming OTP", zap.String("userID", user.ID), zap.Error(err))
		restoreCtx, cancelRestore := withTimeout(context.WithoutCancel(ctx), s.storeTimeout)
		defer cancelRestore()
		if restoreErr := s.otp.Restore(restoreCtx, email, code); restoreErr != nil {
			s.logger.Error("Failed to restore OTP, user must request a new one", zap.String("userID", user.ID), zap.Error(restoreErr))
		}
		return err
	}
	s.logger.Info("Email verified", zap.String("userID", user.ID))

	s.publish(ctx, domain.SubjectUserVerified, domain.UserEvent{UserID: user.ID, Email: email, OccurredAt: s.now().UTC()})
	return nil
}

// Login never tells the caller whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError(domain.FieldError{Field: "credentials", Message: "email and password are required"})
	}

	storeCtx, cancel := withTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.users.GetUserByEmail(storeCtx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Verified {
		return nil, domain.ErrNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("Password mismatch", zap.String("userID", user.ID))
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.ID, false)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User logged in", zap.String("userID", user.ID))
	return &LoginResult{Tokens: pair, User: user}, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token
// is revoked so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Refresh")
	defer span.End()

	if strings.TrimSpace(refreshToken) == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.tokens.Verify(refreshToken, RefreshToken)
	if err != nil {
		return nil, err
	}

	storeCtx, cancel := withTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.users.GetUserByID(storeCtx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if s.denylist != nil {
		fresh, err := s.denylist.Revoke(storeCtx, claims.ID, claims.ExpiresAt.Time)
		if err != nil {
			return nil, err
		}
		if !fresh {
			s.logger.Warn("Replayed refresh token rejected", zap.String("userID", user.ID))
			return nil, domain.ErrTokenInvalid
		}
	}

	return s.tokens.IssuePair(user.ID, true)
}

// Logout revokes the caller's access token and, when given, the refresh
// token that belongs to the same user.
func (s *AuthService) Logout(ctx context.Context, access *Claims, refreshToken string) error {
	ctx, span := tracer.Start(ctx, "AuthService.Logout")
	defer span.End()

	if s.denylist == nil {
		return nil
	}

	storeCtx, cancel := withTimeout(ctx, s.storeTimeout)
	defer cancel()

	if refreshToken != "" {
		claims, err := s.tokens.Verify(refreshToken, RefreshToken)
		if err != nil {
			return err
		}
		if claims.UserID != access.UserID {
			return domain.ErrTokenInvalid
		}
		if _, err := s.denylist.Revoke(storeCtx, claims.ID, claims.ExpiresAt.Time); err != nil {
			return err
		}
	}

	if _, err := s.denylist.Revoke(storeCtx, access.ID, access.ExpiresAt.Time); err != nil {
		return err
	}
	s.logger.Info("User logged out", zap.String("userID", access.UserID))
	return nil
}

func (s *AuthService) dispatchOTP(ctx context.Context, email, subject, bodyFormat string) error {
	storeCtx, cancelStore := withTimeout(ctx, s.storeTimeout)
	defer cancelStore()

	code, err := s.otp.Issue(storeCtx, email)
	if err != nil {
		return err
	}

	mailCtx, cancelMail := withTimeout(ctx, s.mailTimeout)
	defer cancelMail()

	body := fmt.Sprintf(bodyFormat, code, int(s.otp.TTL().Minutes()))
	if err := s.mailer.Send(mailCtx, email, subject, body); err != nil {
		s.logger.Error("Failed to deliver OTP email", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrMailDeliveryFailed, err)
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, subject string, event any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, event); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
