package repository

import (
	"context"

	"github.com/campus-housing-api/internal/database"
	"github.com/campus-housing-api/internal/models"
)

// TableRepository writes import records into arbitrary tables
type TableRepository interface {
	BatchInsert(ctx context.Context, table string, records []models.Record) (int, error)
}

// HousingRepository defines the read operations over chambres and etudiants_logement
type HousingRepository interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListOccupancies(ctx context.Context) ([]models.Occupancy, error)
	ListBuildingFloors(ctx context.Context) ([]models.BuildingFloor, error)
	CountOccupancies(ctx context.Context) (int, error)
	CountRoomsByState(ctx context.Context, state string) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Table   TableRepository
	Housing HousingRepository
	User    UserRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Table:   NewTableRepo(db),
		Housing: NewHousingRepo(db),
		User:    NewUserRepo(db),
	}
}
