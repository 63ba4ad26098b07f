package mocks

import (
	"context"
	"sync"

	"github.com/campus-housing-api/internal/models"
	"github.com/campus-housing-api/internal/repository"
	"github.com/lib/pq"
)

// Verify interface compliance
var (
	_ repository.TableRepository   = (*MockTableRepository)(nil)
	_ repository.HousingRepository = (*MockHousingRepository)(nil)
	_ repository.UserRepository    = (*MockUserRepository)(nil)
)

// MockTableRepository is a mock implementation of TableRepository
type MockTableRepository struct {
	mu               sync.Mutex
	Rows             map[string][]models.Record
	Batches          [][]models.Record
	InsertError      error
	BatchInsertFunc  func(ctx context.Context, table string, records []models.Record) (int, error)
	BatchInsertCalls int
}

func NewMockTableRepository() *MockTableRepository {
	return &MockTableRepository{
		Rows: make(map[string][]models.Record),
	}
}

func (m *MockTableRepository) BatchInsert(ctx context.Context, table string, records []models.Record) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.BatchInsertCalls++
	m.Batches = append(m.Batches, records)
	if m.BatchInsertFunc != nil {
		return m.BatchInsertFunc(ctx, table, records)
	}
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	m.Rows[table] = append(m.Rows[table], records...)
	return len(records), nil
}

// MockHousingRepository is a mock implementation of HousingRepository
type MockHousingRepository struct {
	Rooms       []models.Room
	Occupancies []models.Occupancy

	// Total overrides CountOccupancies when set
	Total *int

	ListRoomsErr       error
	ListOccupanciesErr error
	ListPairsErr       error
	CountErr           error
	CountByStateErr    error
}

func NewMockHousingRepository() *MockHousingRepository {
	return &MockHousingRepository{}
}

func (m *MockHousingRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	if m.ListRoomsErr != nil {
		return nil, m.ListRoomsErr
	}
	return m.Rooms, nil
}

func (m *MockHousingRepository) ListOccupancies(ctx context.Context) ([]models.Occupancy, error) {
	if m.ListOccupanciesErr != nil {
		return nil, m.ListOccupanciesErr
	}
	return m.Occupancies, nil
}

func (m *MockHousingRepository) ListBuildingFloors(ctx context.Context) ([]models.BuildingFloor, error) {
	if m.ListPairsErr != nil {
		return nil, m.ListPairsErr
	}
	pairs := make([]models.BuildingFloor, 0, len(m.Occupancies))
	for _, o := range m.Occupancies {
		pairs = append(pairs, models.BuildingFloor{Building: o.Building, Floor: o.Floor})
	}
	return pairs, nil
}

func (m *MockHousingRepository) CountOccupancies(ctx context.Context) (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	if m.Total != nil {
		return *m.Total, nil
	}
	return len(m.Occupancies), nil
}

func (m *MockHousingRepository) CountRoomsByState(ctx context.Context, state string) (int, error) {
	if m.CountByStateErr != nil {
		return 0, m.CountByStateErr
	}
	count := 0
	for _, r := range m.Rooms {
		if r.State != nil && *r.State == state {
			count++
		}
	}
	return count, nil
}

// MockUserRepository is a mock implementation of UserRepository.
// Like the users_email_key index, Create rejects a duplicate email with SQLSTATE 23505.
type MockUserRepository struct {
	mu              sync.Mutex
	EmailToUser     map[string]*models.User
	nextID          int64
	InsertError     error
	CreateCalls     int
	EmailExistsFunc func(ctx context.Context, email string) (bool, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.InsertError != nil {
		return m.InsertError
	}
	if _, exists := m.EmailToUser[user.Email]; exists {
		return &pq.Error{Code: "23505", Message: `duplicate key value violates unique constraint "users_email_key"`}
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.EmailToUser[user.Email] = &stored
	return nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.EmailToUser[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.EmailExistsFunc != nil {
		return m.EmailExistsFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.EmailToUser[email]
	return exists, nil
}

// Count returns the number of stored users
func (m *MockUserRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.EmailToUser)
}
