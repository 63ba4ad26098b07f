package models

// Room states stored in chambres.etat
const (
	RoomStateOccupied  = "Occupée"
	RoomStateAvailable = "Disponible"
)

// Sentinels used in room details when no occupant row matches
const (
	NoOccupantName  = "Aucun"
	UnknownRoomType = "Inconnu (Donnée manquante)"
	UnknownLocation = "Inconnu"
)

// NullLabel groups occupancy rows whose building or floor is NULL
const NullLabel = "null"

// Room represents a row of chambres
type Room struct {
	Number      string   `json:"numero_chambre" db:"numero_chambre"`
	State       *string  `json:"etat" db:"etat"`
	SurfaceArea *float64 `json:"surface_m2" db:"surface_m2"`
}

// Occupancy represents a row of etudiants_logement
type Occupancy struct {
	RoomNumber string  `json:"numero_chambre" db:"numero_chambre"`
	LastName   *string `json:"nom" db:"nom"`
	FirstName  *string `json:"prenom" db:"prenom"`
	Building   *string `json:"batiment" db:"batiment"`
	Floor      *string `json:"etage" db:"etage"`
	RoomType   *string `json:"type_chambre" db:"type_chambre"`
}

// BuildingFloor is the (batiment, etage) projection used by stats
type BuildingFloor struct {
	Building *string
	Floor    *string
}

// RoomDetail is a room joined with its first matching occupant
type RoomDetail struct {
	RoomNumber  string   `json:"numero_chambre"`
	State       *string  `json:"etat"`
	SurfaceArea *float64 `json:"surface"`
	StudentName string   `json:"etudiant_nom"`
	RoomType    string   `json:"type_chambre"`
	Floor       string   `json:"etage"`
	Building    string   `json:"batiment"`
}

// BuildingStats holds per-floor counts for one building
type BuildingStats struct {
	Total   int            `json:"total"`
	ByFloor map[string]int `json:"byFloor"`
}

// Stats is the occupancy breakdown by building and floor
type Stats struct {
	Total      int                       `json:"total"`
	ByBuilding map[string]*BuildingStats `json:"byBuilding"`
}

// RoomCounts holds the number of occupied and available rooms
type RoomCounts struct {
	Occupied  int `json:"Occupée"`
	Available int `json:"Disponible"`
}
