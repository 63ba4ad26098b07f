package service

import (
	"context"

	"github.com/campus-housing-api/internal/models"
	"github.com/campus-housing-api/internal/repository"
	"github.com/rs/zerolog"
)

// housingService is the concrete implementation of HousingService
type housingService struct {
	repo repository.HousingRepository
	log  zerolog.Logger
}

// newHousingService creates a new HousingService
func newHousingService(repo repository.HousingRepository, log zerolog.Logger) *housingService {
	return &housingService{
		repo: repo,
		log:  log.With().Str("service", "housing").Logger(),
	}
}

// Stats counts occupancy rows per building and per floor.
// The total comes from its own count query and is not the sum of the groups.
func (s *housingService) Stats(ctx context.Context) (*models.Stats, error) {
	total, err := s.repo.CountOccupancies(ctx)
	if err != nil {
		return nil, queryError("count occupancies", err)
	}

	pairs, err := s.repo.ListBuildingFloors(ctx)
	if err != nil {
		return nil, queryError("list building floors", err)
	}

	stats := &models.Stats{
		Total:      total,
		ByBuilding: make(map[string]*models.BuildingStats),
	}
	for _, p := range pairs {
		building := labelOf(p.Building)
		floor := labelOf(p.Floor)

		b, ok := stats.ByBuilding[building]
		if !ok {
			b = &models.BuildingStats{ByFloor: make(map[string]int)}
			stats.ByBuilding[building] = b
		}
		b.ByFloor[floor]++
		b.Total++
	}

	s.log.Debug().
		Int("total", total).
		Int("buildings", len(stats.ByBuilding)).
		Msg("Stats computed")

	return stats, nil
}

// RoomDetails joins every room with the first occupancy row referencing it.
// Output follows room fetch order.
func (s *housingService) RoomDetails(ctx context.Context) ([]models.RoomDetail, error) {
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, queryError("list rooms", err)
	}

	occupancies, err := s.repo.ListOccupancies(ctx)
	if err != nil {
		return nil, queryError("list occupancies", err)
	}

	byRoom := make(map[string]*models.Occupancy, len(occupancies))
	for i := range occupancies {
		o := &occupancies[i]
		if _, seen := byRoom[o.RoomNumber]; !seen {
			byRoom[o.RoomNumber] = o
		}
	}

	details := make([]models.RoomDetail, 0, len(rooms))
	for _, room := range rooms {
		d := models.RoomDetail{
			RoomNumber:  room.Number,
			State:       room.State,
			SurfaceArea: room.SurfaceArea,
			StudentName: models.NoOccupantName,
			RoomType:    models.UnknownRoomType,
			Floor:       models.UnknownLocation,
			Building:    models.UnknownLocation,
		}
		if o, ok := byRoom[room.Number]; ok {
			d.StudentName = studentName(o)
			d.RoomType = valueOr(o.RoomType, models.UnknownRoomType)
			d.Floor = valueOr(o.Floor, models.UnknownLocation)
			d.Building = valueOr(o.Building, models.UnknownLocation)
		}
		details = append(details, d)
	}

	return details, nil
}

// RoomCounts returns how many rooms are occupied and how many are available
func (s *housingService) RoomCounts(ctx context.Context) (*models.RoomCounts, error) {
	occupied, err := s.repo.CountRoomsByState(ctx, models.RoomStateOccupied)
	if err != nil {
		return nil, queryError("count occupied rooms", err)
	}

	available, err := s.repo.CountRoomsByState(ctx, models.RoomStateAvailable)
	if err != nil {
		return nil, queryError("count available rooms", err)
	}

	return &models.RoomCounts{Occupied: occupied, Available: available}, nil
}

func labelOf(v *string) string {
	if v == nil {
		return models.NullLabel
	}
	return *v
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

// studentName renders "nom prenom", dropping whichever part is NULL
func studentName(o *models.Occupancy) string {
	switch {
	case o.LastName != nil && o.FirstName != nil:
		return *o.LastName + " " + *o.FirstName
	case o.LastName != nil:
		return *o.LastName
	case o.FirstName != nil:
		return *o.FirstName
	default:
		return models.NoOccupantName
	}
}
