package service

import (
	"context"
	"strings"

	"github.com/campus-housing-api/internal/config"
	"github.com/campus-housing-api/internal/models"
	"github.com/campus-housing-api/internal/repository"
	"github.com/campus-housing-api/internal/validation"
	"github.com/campus-housing-api/pkg/jwt"
	"github.com/campus-housing-api/pkg/password"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// uniqueViolation is the Postgres SQLSTATE for a unique index conflict
const uniqueViolation = "23505"

// authService is the concrete implementation of AuthService
type authService struct {
	users  repository.UserRepository
	tokens *jwt.Manager
	cfg    *config.AuthConfig
	log    zerolog.Logger
}

// newAuthService creates a new AuthService
func newAuthService(users repository.UserRepository, cfg *config.AuthConfig, log zerolog.Logger) *authService {
	return &authService{
		users:  users,
		tokens: jwt.NewManager(cfg.JWTSecret, cfg.TokenTTL),
		cfg:    cfg,
		log:    log.With().Str("service", "auth").Logger(),
	}
}

// Register creates an account. The stored password is a bcrypt hash.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserProfile, error) {
	req.Email = strings.TrimSpace(req.Email)
	if errs := validation.ValidateRegistration(req); len(errs) > 0 {
		return nil, errors.WithStack(&FieldErrors{Fields: validation.Messages(errs)})
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, errors.Wrap(err, "check email")
	}
	if exists {
		return nil, errors.WithStack(ErrDuplicateUser)
	}

	hash, err := password.Hash(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two concurrent registrations can both pass the pre-check
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, errors.WithStack(ErrDuplicateUser)
		}
		return nil, errors.Wrap(err, "create user")
	}

	s.log.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("User registered")

	return &models.UserProfile{Name: user.Name, Email: user.Email}, nil
}

// Login verifies credentials and issues a session token.
// Unknown email and wrong password fail identically.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.Session, error) {
	if errs := validation.ValidateLogin(req); len(errs) > 0 {
		return nil, errors.WithStack(&FieldErrors{Fields: validation.Messages(errs)})
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	if user == nil || !password.Verify(req.Password, user.Password) {
		s.log.Warn().Str("email", req.Email).Msg("Login rejected")
		return nil, errors.WithStack(ErrInvalidCredentials)
	}

	token, expires, err := s.tokens.GenerateToken(user.ID, user.Name, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}

	s.log.Info().Int64("user_id", user.ID).Msg("User logged in")

	return &models.Session{
		Token:     token,
		ExpiresAt: expires,
		User:      models.UserProfile{Name: user.Name, Email: user.Email},
	}, nil
}

// Authenticate verifies a session token, expiry included
func (s *authService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, errors.WithStack(ErrUnauthenticated)
	}

	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &models.Identity{ID: claims.UserID, Name: claims.Name, Email: claims.Email}, nil
}
