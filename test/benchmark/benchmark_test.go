package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/campus-housing-api/internal/config"
	"github.com/campus-housing-api/internal/mocks"
	"github.com/campus-housing-api/internal/models"
	"github.com/campus-housing-api/internal/repository"
	"github.com/campus-housing-api/internal/service"
	"github.com/rs/zerolog"
)

func occupancyDocument(n int) string {
	var b strings.Builder
	b.WriteString(`[{"type":"header"},{"type":"table","name":"etudiants_logement","data":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `{"numero_chambre":"R%05d","nom":"Nom%d","prenom":"","batiment":"B%d","etage":"%d","date_entree":"0000-00-00"}`,
			i, i, i%4, i%6)
	}
	b.WriteString(`]}]`)
	return b.String()
}

func newServices(table *mocks.MockTableRepository, housing *mocks.MockHousingRepository) *service.Services {
	cfg := &config.Config{
		Import: config.ImportConfig{BatchSize: 100, BatchTimeout: time.Second},
		Auth:   config.AuthConfig{JWTSecret: "bench", TokenTTL: time.Hour},
	}
	repos := &repository.Repositories{
		Table:   table,
		Housing: housing,
		User:    mocks.NewMockUserRepository(),
	}
	return service.NewServices(repos, cfg, zerolog.Nop())
}

// BenchmarkNormalizeRecord benchmarks per-record normalization
func BenchmarkNormalizeRecord(b *testing.B) {
	rec := models.Record{
		"numero_chambre": "A101",
		"nom":            "Dupont",
		"prenom":         "",
		"date_entree":    "0000-00-00 00:00:00",
		"surface_m2":     json.Number("18.50"),
		"actif":          true,
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		service.NormalizeRecord(rec)
	}
}

// BenchmarkImport benchmarks parsing, normalization and batching of 10k records
func BenchmarkImport(b *testing.B) {
	doc := occupancyDocument(10000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		svc := newServices(mocks.NewMockTableRepository(), mocks.NewMockHousingRepository())
		result, err := svc.Import.Import(context.Background(), "etudiants_logement", strings.NewReader(doc), 0)
		if err != nil {
			b.Fatalf("Import failed: %v", err)
		}
		if result.Imported != 10000 {
			b.Fatalf("Expected 10000 imported, got %d", result.Imported)
		}
	}

	b.ReportMetric(float64(10000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkRoomDetails benchmarks the room/occupant join
func BenchmarkRoomDetails(b *testing.B) {
	housing := mocks.NewMockHousingRepository()
	for i := 0; i < 5000; i++ {
		number := fmt.Sprintf("R%05d", i)
		housing.Rooms = append(housing.Rooms, models.Room{Number: number})
		if i%3 != 0 {
			nom := "Nom"
			housing.Occupancies = append(housing.Occupancies, models.Occupancy{RoomNumber: number, LastName: &nom})
		}
	}
	svc := newServices(mocks.NewMockTableRepository(), housing)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := svc.Housing.RoomDetails(context.Background()); err != nil {
			b.Fatalf("RoomDetails failed: %v", err)
		}
	}
}

// BenchmarkStats benchmarks the building/floor fold
func BenchmarkStats(b *testing.B) {
	housing := mocks.NewMockHousingRepository()
	for i := 0; i < 5000; i++ {
		building := fmt.Sprintf("B%d", i%8)
		floor := fmt.Sprintf("%d", i%5)
		housing.Occupancies = append(housing.Occupancies, models.Occupancy{Building: &building, Floor: &floor})
	}
	svc := newServices(mocks.NewMockTableRepository(), housing)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := svc.Housing.Stats(context.Background()); err != nil {
			b.Fatalf("Stats failed: %v", err)
		}
	}
}
