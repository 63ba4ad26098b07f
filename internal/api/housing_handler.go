package api

import (
	"github.com/campus-housing-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HousingHandler serves the read-only housing aggregations
type HousingHandler struct {
	housing service.HousingService
	log     zerolog.Logger
}

// NewHousingHandler creates a new HousingHandler
func NewHousingHandler(services *service.Services, log zerolog.Logger) *HousingHandler {
	return &HousingHandler{
		housing: services.Housing,
		log:     log.With().Str("handler", "housing").Logger(),
	}
}

// Stats handles GET /api/v1/stats
func (h *HousingHandler) Stats(c *gin.Context) {
	stats, err := h.housing.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Stats retrieved successfully", stats)
}

// RoomCounts handles GET /api/v1/logements
func (h *HousingHandler) RoomCounts(c *gin.Context) {
	counts, err := h.housing.RoomCounts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Logements counts retrieved successfully", counts)
}

// RoomDetails handles GET /api/v1/logements/detail_chambre
func (h *HousingHandler) RoomDetails(c *gin.Context) {
	details, err := h.housing.RoomDetails(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	h.log.Debug().Int("rooms", len(details)).Msg("Room details served")
	respondOK(c, "Détails complets des chambres récupérés avec succès", details)
}
