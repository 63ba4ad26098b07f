package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/campus-housing-api/internal/models"
	"github.com/campus-housing-api/internal/service"
	"github.com/campus-housing-api/pkg/jwt"
)

func register(t *testing.T, svc *service.Services, email, password string) {
	t.Helper()
	_, err := svc.Auth.Register(context.Background(), &models.RegisterRequest{Name: "Marie", Email: email, Password: password})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func TestAuthService_Register(t *testing.T) {
	f := newFixture()
	svc := f.services()

	profile, err := svc.Auth.Register(context.Background(), &models.RegisterRequest{
		Name:     "Marie Dupont",
		Email:    "marie@example.com",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if profile.Name != "Marie Dupont" || profile.Email != "marie@example.com" {
		t.Errorf("Unexpected profile: %+v", profile)
	}

	stored, _ := f.users.GetByEmail(context.Background(), "marie@example.com")
	if stored == nil {
		t.Fatal("User should be stored")
	}
	if stored.Password == "s3cretpass" || !strings.HasPrefix(stored.Password, "$2") {
		t.Errorf("Expected a bcrypt hash, got %q", stored.Password)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	f := newFixture()
	svc := f.services()

	register(t, svc, "marie@example.com", "s3cretpass")

	_, err := svc.Auth.Register(context.Background(), &models.RegisterRequest{
		Name:     "Other",
		Email:    "marie@example.com",
		Password: "anotherpass",
	})
	if !errors.Is(err, service.ErrDuplicateUser) {
		t.Errorf("Expected ErrDuplicateUser, got %v", err)
	}
	if f.users.Count() != 1 {
		t.Errorf("Expected exactly one user, got %d", f.users.Count())
	}
}

func TestAuthService_Register_ConstraintIsAuthoritative(t *testing.T) {
	f := newFixture()
	// Simulate a concurrent registration that slipped past the pre-check
	f.users.EmailExistsFunc = func(ctx context.Context, email string) (bool, error) {
		return false, nil
	}
	svc := f.services()

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Auth.Register(context.Background(), &models.RegisterRequest{
				Name:     "Marie",
				Email:    "race@example.com",
				Password: "s3cretpass",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case !errors.Is(err, service.ErrDuplicateUser):
			t.Errorf("Expected ErrDuplicateUser, got %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("Expected exactly one successful registration, got %d", succeeded)
	}
	if f.users.Count() != 1 {
		t.Errorf("Expected exactly one user, got %d", f.users.Count())
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	f := newFixture()
	svc := f.services()

	_, err := svc.Auth.Register(context.Background(), &models.RegisterRequest{Name: "", Email: "bad", Password: "short"})
	if !errors.Is(err, service.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
	var fe *service.FieldErrors
	if !errors.As(err, &fe) || len(fe.Fields) != 3 {
		t.Errorf("Expected 3 field errors, got %v", err)
	}
	if f.users.CreateCalls != 0 {
		t.Errorf("Expected no insert, got %d", f.users.CreateCalls)
	}
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	f := newFixture()
	svc := f.services()

	_, err := svc.Auth.Register(context.Background(), &models.RegisterRequest{
		Name:     "Marie",
		Email:    "marie@example.com",
		Password: strings.Repeat("x", 80),
	})
	if !errors.Is(err, service.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
	if f.users.CreateCalls != 0 {
		t.Errorf("Expected no insert, got %d", f.users.CreateCalls)
	}
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture()
	svc := f.services()
	register(t, svc, "marie@example.com", "s3cretpass")

	session, err := svc.Auth.Login(context.Background(), &models.LoginRequest{Email: "marie@example.com", Password: "s3cretpass"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if session.Token == "" {
		t.Fatal("Expected a token")
	}
	if session.User.Email != "marie@example.com" {
		t.Errorf("Unexpected user: %+v", session.User)
	}
	if ttl := time.Until(session.ExpiresAt); ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("Expected token valid for about a day, got %v", ttl)
	}

	identity, err := svc.Auth.Authenticate(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if identity.Email != "marie@example.com" || identity.Name != "Marie" || identity.ID == 0 {
		t.Errorf("Unexpected identity: %+v", identity)
	}
}

func TestAuthService_Login_InvalidCredentialsIndistinguishable(t *testing.T) {
	f := newFixture()
	svc := f.services()
	register(t, svc, "marie@example.com", "s3cretpass")

	_, wrongPassword := svc.Auth.Login(context.Background(), &models.LoginRequest{Email: "marie@example.com", Password: "wrongpass"})
	_, unknownUser := svc.Auth.Login(context.Background(), &models.LoginRequest{Email: "nobody@example.com", Password: "s3cretpass"})

	if !errors.Is(wrongPassword, service.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownUser, service.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Errorf("Expected identical messages, got %q and %q", wrongPassword.Error(), unknownUser.Error())
	}
}

func TestAuthService_Login_EmptyPassword(t *testing.T) {
	f := newFixture()
	svc := f.services()
	register(t, svc, "marie@example.com", "s3cretpass")

	_, known := svc.Auth.Login(context.Background(), &models.LoginRequest{Email: "marie@example.com"})
	_, unknown := svc.Auth.Login(context.Background(), &models.LoginRequest{Email: "nobody@example.com"})

	if !errors.Is(known, service.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for known email, got %v", known)
	}
	if !errors.Is(unknown, service.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", unknown)
	}

	_, missingEmail := svc.Auth.Login(context.Background(), &models.LoginRequest{Password: "s3cretpass"})
	if !errors.Is(missingEmail, service.ErrValidation) {
		t.Errorf("Expected ErrValidation for missing email, got %v", missingEmail)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	f := newFixture()
	svc := f.services()

	if _, err := svc.Auth.Authenticate(context.Background(), ""); !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Auth.Authenticate(context.Background(), "garbage"); !errors.Is(err, jwt.ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}

	expired, _, _ := jwt.NewManager(f.cfg.Auth.JWTSecret, -time.Minute).GenerateToken(1, "Marie", "marie@example.com")
	if _, err := svc.Auth.Authenticate(context.Background(), expired); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}
