package service_test

import (
	"time"

	"github.com/campus-housing-api/internal/config"
	"github.com/campus-housing-api/internal/mocks"
	"github.com/campus-housing-api/internal/repository"
	"github.com/campus-housing-api/internal/service"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	table   *mocks.MockTableRepository
	housing *mocks.MockHousingRepository
	users   *mocks.MockUserRepository
	cfg     *config.Config
}

func newFixture() *fixture {
	return &fixture{
		table:   mocks.NewMockTableRepository(),
		housing: mocks.NewMockHousingRepository(),
		users:   mocks.NewMockUserRepository(),
		cfg: &config.Config{
			Import: config.ImportConfig{
				BatchSize:    100,
				DataDir:      ".",
				RetryBackoff: time.Millisecond,
				BatchTimeout: time.Second,
			},
			Auth: config.AuthConfig{
				JWTSecret:  "test-secret",
				TokenTTL:   24 * time.Hour,
				BcryptCost: bcrypt.MinCost,
			},
		},
	}
}

func (f *fixture) services() *service.Services {
	repos := &repository.Repositories{
		Table:   f.table,
		Housing: f.housing,
		User:    f.users,
	}
	return service.NewServices(repos, f.cfg, zerolog.Nop())
}

func strPtr(s string) *string { return &s }
