package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"deliverypartner/internal/devbackend/otp"
	"deliverypartner/internal/devbackend/store"
	"deliverypartner/internal/pkg/authtoken"
	"deliverypartner/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// SignedIn is a successful sign-in.
type SignedIn struct {
	Token     string
	ExpiresAt time.Time
	Partner   store.PartnerDTO
}

type AuthService struct {
	partners *store.PartnerRepository
	codes    *otp.Service
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

func NewAuthService(
	partners *store.PartnerRepository,
	codes *otp.Service,
	secret []byte,
	tokenTTL time.Duration,
	logger *slog.Logger,
) (*AuthService, error) {
	if len(secret) == 0 {
		return nil, authtoken.ErrSecretIsRequired
	}
	return &AuthService{
		partners: partners,
		codes:    codes,
		secret:   secret,
		tokenTTL: tokenTTL,
		now:      time.Now,
		logger:   logger.With("component", "AuthService"),
	}, nil
}

// RequestOTP issues a code for a registered partner. No mail goes out, the
// code is written to the log instead.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	partner, err := s.partners.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := s.codes.Issue(ctx, partner.Email)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "OTP requested", "email", partner.Email, "otp", code)
	return nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (SignedIn, error) {
	if strings.TrimSpace(code) == "" {
		return SignedIn{}, errs.NewValueIsRequiredError("otp")
	}
	partner, err := s.partners.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return SignedIn{}, otp.ErrCodeIsInvalid
		}
		return SignedIn{}, err
	}
	if err := s.codes.Verify(ctx, partner.Email, code); err != nil {
		return SignedIn{}, err
	}
	return s.signIn(ctx, partner)
}

func (s *AuthService) PasswordLogin(ctx context.Context, email, password string) (SignedIn, error) {
	partner, err := s.partners.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return SignedIn{}, ErrInvalidCredentials
		}
		return SignedIn{}, err
	}
	if err := bcrypt.CompareHashAndPassword(partner.PasswordHash, []byte(password)); err != nil {
		return SignedIn{}, ErrInvalidCredentials
	}
	return s.signIn(ctx, partner)
}

// Authenticate checks a bearer token and returns its subject.
func (s *AuthService) Authenticate(token string) (*authtoken.Claims, error) {
	return authtoken.Verify(s.secret, token)
}

func (s *AuthService) signIn(ctx context.Context, partner store.PartnerDTO) (SignedIn, error) {
	token, expiresAt, err := authtoken.Issue(s.secret, partner.ID, partner.Email, s.tokenTTL, s.now())
	if err != nil {
		return SignedIn{}, fmt.Errorf("issue token: %w", err)
	}
	s.logger.InfoContext(ctx, "partner signed in", "partnerId", partner.ID)
	return SignedIn{Token: token, ExpiresAt: expiresAt, Partner: partner}, nil
}
