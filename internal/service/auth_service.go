package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"jandervidros/internal/apperror"
	"jandervidros/internal/config"
	"jandervidros/internal/dto"
	"jandervidros/internal/repository"
)

// Login seeded on first migration.
const (
	DefaultUsername = "admin"
	DefaultPassword = "123"
)

// MinPasswordLength is the shortest secret ChangeCredentials accepts.
const MinPasswordLength = 3

const hashCost = 12

// ErrInvalidCredentials is returned for any failed login, whatever the cause.
var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	ChangeCredentials(ctx context.Context, req dto.ChangeCredentialsRequest) error
	// EnsureDefaultCredential seeds admin/123 when no login exists yet.
	EnsureDefaultCredential(ctx context.Context) (bool, error)
}

type authService struct {
	repo repository.CredentialRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.CredentialRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	cred, err := s.repo.Get(ctx)
	if apperror.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if cred.Username != req.Username {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expires := time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)
	token, err := s.generateToken(cred.Username, expires)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		TokenType: "bearer",
		ExpiresAt: expires,
		Username:  cred.Username,
	}, nil
}

func (s *authService) ChangeCredentials(ctx context.Context, req dto.ChangeCredentialsRequest) error {
	username, err := requireText("username", req.Username)
	if err != nil {
		return err
	}
	if len(req.Password) < MinPasswordLength {
		return apperror.Invalid("password", "must have at least 3 characters")
	}
	if req.Password != req.ConfirmPassword {
		return apperror.Invalid("confirmPassword", "does not match password")
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, username, hash)
}

func (s *authService) EnsureDefaultCredential(ctx context.Context) (bool, error) {
	hash, err := HashPassword(DefaultPassword)
	if err != nil {
		return false, err
	}
	return s.repo.EnsureDefault(ctx, DefaultUsername, hash)
}

func (s *authService) generateToken(username string, expires time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":      username,
		"username": username,
		"exp":      expires.Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword returns the bcrypt hash stored for a secret.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
