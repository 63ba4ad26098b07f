package api

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/campus-housing-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxUploadSize bounds an uploaded import document
const maxUploadSize = 64 << 20

// ImportHandler handles bulk import endpoints
type ImportHandler struct {
	importer service.ImportService
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		importer: services.Import,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// FillTable handles GET /api/v1/fillTable/:filename?skip=N.
// It imports <data dir>/<filename>.json into the table of the same name.
func (h *ImportHandler) FillTable(c *gin.Context) {
	skip, ok := parseSkip(c)
	if !ok {
		return
	}
	filename := c.Param("filename")

	// A client disconnect must not leave the table half imported
	ctx := context.WithoutCancel(c.Request.Context())

	result, err := h.importer.ImportFile(ctx, filename, skip)
	if err != nil {
		c.Error(err)
		return
	}

	h.log.Info().
		Str("table", result.Table).
		Int("imported", result.Imported).
		Int("errors", result.Errors).
		Str("request_id", c.GetString(requestIDKey)).
		Msg("Import finished")

	respondOK(c, "Import completed", result)
}

// Upload handles POST /api/v1/import/:table?skip=N.
// The document is either the multipart field "file" or the raw request body.
func (h *ImportHandler) Upload(c *gin.Context) {
	skip, ok := parseSkip(c)
	if !ok {
		return
	}
	table := c.Param("table")

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	var src io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			c.Error(newAPIError(http.StatusBadRequest, "file field is required"))
			return
		}
		defer file.Close()
		src = file
	}

	ctx := context.WithoutCancel(c.Request.Context())

	result, err := h.importer.Import(ctx, table, src, skip)
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "Import completed", result)
}

func parseSkip(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("skip", "0")
	skip, err := strconv.Atoi(raw)
	if err != nil {
		c.Error(service.ErrInvalidSkip)
		return 0, false
	}
	return skip, true
}
