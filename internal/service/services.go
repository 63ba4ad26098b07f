package service

import (
	"context"
	"io"

	"github.com/campus-housing-api/internal/config"
	"github.com/campus-housing-api/internal/models"
	"github.com/campus-housing-api/internal/repository"
	"github.com/rs/zerolog"
)

// ImportService defines the interface for bulk import operations
type ImportService interface {
	Import(ctx context.Context, table string, src io.Reader, skip int) (*models.ImportResult, error)
	ImportFile(ctx context.Context, name string, skip int) (*models.ImportResult, error)
}

// HousingService defines the read-side aggregations over rooms and occupants
type HousingService interface {
	Stats(ctx context.Context) (*models.Stats, error)
	RoomDetails(ctx context.Context) ([]models.RoomDetail, error)
	RoomCounts(ctx context.Context) (*models.RoomCounts, error)
}

// AuthService defines registration, login and session verification
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserProfile, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.Session, error)
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

// Services holds all service interfaces
type Services struct {
	Import  ImportService
	Housing HousingService
	Auth    AuthService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Import:  newImportService(repos, &cfg.Import, log),
		Housing: newHousingService(repos.Housing, log),
		Auth:    newAuthService(repos.User, &cfg.Auth, log),
	}
}
