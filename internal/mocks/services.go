package mocks

import (
	"context"
	"io"

	"github.com/campus-housing-api/internal/models"
	"github.com/campus-housing-api/internal/service"
)

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	ImportFunc     func(ctx context.Context, table string, src io.Reader, skip int) (*models.ImportResult, error)
	ImportFileFunc func(ctx context.Context, name string, skip int) (*models.ImportResult, error)
	Files          []string
	Skips          []int
	LastCtx        context.Context
}

// Verify interface compliance
var _ service.ImportService = (*MockImportService)(nil)

func NewMockImportService() *MockImportService {
	return &MockImportService{}
}

func (m *MockImportService) Import(ctx context.Context, table string, src io.Reader, skip int) (*models.ImportResult, error) {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, table, src, skip)
	}
	return &models.ImportResult{Table: table}, nil
}

func (m *MockImportService) ImportFile(ctx context.Context, name string, skip int) (*models.ImportResult, error) {
	m.Files = append(m.Files, name)
	m.Skips = append(m.Skips, skip)
	m.LastCtx = ctx
	if m.ImportFileFunc != nil {
		return m.ImportFileFunc(ctx, name, skip)
	}
	return &models.ImportResult{Table: name}, nil
}

// MockHousingService is a mock implementation of HousingService
type MockHousingService struct {
	StatsResult *models.Stats
	Details     []models.RoomDetail
	Counts      *models.RoomCounts
	Err         error
}

// Verify interface compliance
var _ service.HousingService = (*MockHousingService)(nil)

func NewMockHousingService() *MockHousingService {
	return &MockHousingService{
		StatsResult: &models.Stats{ByBuilding: map[string]*models.BuildingStats{}},
		Details:     []models.RoomDetail{},
		Counts:      &models.RoomCounts{},
	}
}

func (m *MockHousingService) Stats(ctx context.Context) (*models.Stats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.StatsResult, nil
}

func (m *MockHousingService) RoomDetails(ctx context.Context) ([]models.RoomDetail, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Details, nil
}

func (m *MockHousingService) RoomCounts(ctx context.Context) (*models.RoomCounts, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Counts, nil
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	RegisterFunc     func(ctx context.Context, req *models.RegisterRequest) (*models.UserProfile, error)
	LoginFunc        func(ctx context.Context, req *models.LoginRequest) (*models.Session, error)
	AuthenticateFunc func(ctx context.Context, token string) (*models.Identity, error)

	// Tokens maps accepted tokens to their identity when AuthenticateFunc is nil
	Tokens map[string]*models.Identity
}

// Verify interface compliance
var _ service.AuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{
		Tokens: make(map[string]*models.Identity),
	}
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserProfile, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return &models.UserProfile{Name: req.Name, Email: req.Email}, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &models.Session{Token: "test-token", User: models.UserProfile{Email: req.Email}}, nil
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, token)
	}
	if id, ok := m.Tokens[token]; ok {
		return id, nil
	}
	return nil, service.ErrUnauthenticated
}
