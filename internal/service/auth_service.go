package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"internhub/internal/auth"
	"internhub/internal/cache"
	apperrors "internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/repository"
)

const bcryptCost = 10

// emailPattern accepts local@domain.tld with a 2-6 letter top-level label.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

// GoogleLoginResult is the outcome of a federated login attempt.
// When the verified email has no intern record yet, IsNewUser is true,
// Email carries the verified address, and Token is empty.
type GoogleLoginResult struct {
	Token     string
	IsNewUser bool
	Email     string
}

// AuthService handles signup, login, federated login, and profile
// reconciliation.
type AuthService interface {
	Signup(ctx context.Context, internID, firstName, lastName, email, password string) error
	Login(ctx context.Context, email, password string) (token string, err error)
	GoogleLogin(ctx context.Context, externalToken string) (*GoogleLoginResult, error)
	ReconcileProfile(ctx context.Context, email, internID, firstName, lastName string) (token string, err error)
}

type authService struct {
	internRepo repository.InternRepository
	jwtService *auth.JWTService
	verifier   auth.GoogleVerifier
	cache      cache.Store
}

// NewAuthService creates a new authentication service.
func NewAuthService(internRepo repository.InternRepository, jwtService *auth.JWTService, verifier auth.GoogleVerifier, cache cache.Store) AuthService {
	return &authService{
		internRepo: internRepo,
		jwtService: jwtService,
		verifier:   verifier,
		cache:      cache,
	}
}

// normalizeEmail trims surrounding whitespace and lower-cases the address.
// Applied before every lookup and write so the unique key is stable.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new intern with a hashed password.
func (s *authService) Signup(ctx context.Context, internID, firstName, lastName, email, password string) error {
	if internID == "" || firstName == "" || lastName == "" || email == "" || password == "" {
		return apperrors.ErrMissingFields
	}

	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return apperrors.ErrInvalidEmail
	}

	existing, err := s.internRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check intern existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	intern := &model.Intern{
		InternID:     strings.TrimSpace(internID),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.internRepo.Create(ctx, intern); err != nil {
		// The existence pre-check races with concurrent signups; the unique
		// index on email is authoritative.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("create intern: %w", err)
	}

	_ = s.cache.Delete(ctx, internListCacheKey)
	return nil
}

// Login authenticates an intern by email and password and returns a signed
// token. A missing account, a Google-only account (no stored hash), and a
// wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperrors.ErrMissingFields
	}

	intern, err := s.internRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find intern: %w", err)
	}

	if intern.PasswordHash == "" {
		return "", apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(intern.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(intern.ID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// GoogleLogin verifies a Google-issued ID token and either logs the intern
// in or signals that profile completion is needed. No record is created for
// an unknown email.
func (s *authService) GoogleLogin(ctx context.Context, externalToken string) (*GoogleLoginResult, error) {
	payload, err := s.verifier.VerifyIDToken(ctx, externalToken)
	if err != nil {
		return nil, fmt.Errorf("verify google token: %w", err)
	}

	email := normalizeEmail(payload.Email)
	intern, err := s.internRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &GoogleLoginResult{IsNewUser: true, Email: email}, nil
		}
		return nil, fmt.Errorf("find intern: %w", err)
	}

	token, err := s.jwtService.GenerateToken(intern.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &GoogleLoginResult{Token: token}, nil
}

// ReconcileProfile creates or updates the intern record for an email and
// returns a fresh token. Existing identity fields are overwritten
// last-write-wins; the password is never touched here.
func (s *authService) ReconcileProfile(ctx context.Context, email, internID, firstName, lastName string) (string, error) {
	if email == "" || internID == "" || firstName == "" || lastName == "" {
		return "", apperrors.ErrMissingFields
	}

	normalized := normalizeEmail(email)
	intern, err := s.internRepo.FindByEmail(ctx, normalized)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Google-only account: no password until the intern sets one.
		intern = &model.Intern{
			InternID:  strings.TrimSpace(internID),
			FirstName: strings.TrimSpace(firstName),
			LastName:  strings.TrimSpace(lastName),
			Email:     normalized,
		}
		if err := s.internRepo.Create(ctx, intern); err != nil {
			return "", fmt.Errorf("create intern: %w", err)
		}
	case err != nil:
		return "", fmt.Errorf("find intern: %w", err)
	default:
		intern.InternID = strings.TrimSpace(internID)
		intern.FirstName = strings.TrimSpace(firstName)
		intern.LastName = strings.TrimSpace(lastName)
		if err := s.internRepo.Save(ctx, intern); err != nil {
			return "", fmt.Errorf("update intern: %w", err)
		}
	}

	_ = s.cache.Delete(ctx, internListCacheKey)

	token, err := s.jwtService.GenerateToken(intern.ID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}
