package repository

import (
	"context"
	"database/sql"

	"github.com/campus-housing-api/internal/database"
	"github.com/campus-housing-api/internal/models"
)

// housingRepo is the concrete implementation of HousingRepository
type housingRepo struct {
	db *database.DB
}

// NewHousingRepo creates a new housing repository
func NewHousingRepo(db *database.DB) HousingRepository {
	return &housingRepo{db: db}
}

// ListRooms returns every row of chambres in store order
func (r *housingRepo) ListRooms(ctx context.Context) ([]models.Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT numero_chambre, etat, surface_m2 FROM chambres`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var (
			room    models.Room
			state   sql.NullString
			surface sql.NullFloat64
		)
		if err := rows.Scan(&room.Number, &state, &surface); err != nil {
			return nil, err
		}
		room.State = nullString(state)
		if surface.Valid {
			s := surface.Float64
			room.SurfaceArea = &s
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// ListOccupancies returns every row of etudiants_logement in store order
func (r *housingRepo) ListOccupancies(ctx context.Context) ([]models.Occupancy, error) {
	query := `SELECT numero_chambre, nom, prenom, batiment, etage, type_chambre FROM etudiants_logement`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Occupancy
	for rows.Next() {
		var (
			room                                   sql.NullString
			nom, prenom, batiment, etage, roomType sql.NullString
		)
		if err := rows.Scan(&room, &nom, &prenom, &batiment, &etage, &roomType); err != nil {
			return nil, err
		}
		out = append(out, models.Occupancy{
			RoomNumber: room.String,
			LastName:   nullString(nom),
			FirstName:  nullString(prenom),
			Building:   nullString(batiment),
			Floor:      nullString(etage),
			RoomType:   nullString(roomType),
		})
	}
	return out, rows.Err()
}

// ListBuildingFloors returns the (batiment, etage) pair of every occupancy row
func (r *housingRepo) ListBuildingFloors(ctx context.Context) ([]models.BuildingFloor, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT batiment, etage FROM etudiants_logement`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BuildingFloor
	for rows.Next() {
		var batiment, etage sql.NullString
		if err := rows.Scan(&batiment, &etage); err != nil {
			return nil, err
		}
		out = append(out, models.BuildingFloor{
			Building: nullString(batiment),
			Floor:    nullString(etage),
		})
	}
	return out, rows.Err()
}

// CountOccupancies returns the number of rows in etudiants_logement
func (r *housingRepo) CountOccupancies(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM etudiants_logement").Scan(&count)
	return count, err
}

// CountRoomsByState returns the number of rooms whose etat equals state
func (r *housingRepo) CountRoomsByState(ctx context.Context, state string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chambres WHERE etat = $1", state).Scan(&count)
	return count, err
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
