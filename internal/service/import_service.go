package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/campus-housing-api/internal/config"
	"github.com/campus-housing-api/internal/models"
	"github.com/campus-housing-api/internal/repository"
	"github.com/campus-housing-api/internal/validation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// importService is the concrete implementation of ImportService
type importService struct {
	repos *repository.Repositories
	cfg   *config.ImportConfig
	log   zerolog.Logger
	sleep func(ctx context.Context, d time.Duration) error
}

// newImportService creates a new ImportService
func newImportService(repos *repository.Repositories, cfg *config.ImportConfig, log zerolog.Logger) *importService {
	return &importService{
		repos: repos,
		cfg:   cfg,
		log:   log.With().Str("service", "import").Logger(),
		sleep: sleepContext,
	}
}

// ImportFile imports <DataDir>/<name>.json into the table <name>
func (s *importService) ImportFile(ctx context.Context, name string, skip int) (*models.ImportResult, error) {
	table := strings.TrimSuffix(name, ".json")
	if !validation.IsIdentifier(table) {
		return nil, errors.Wrapf(ErrInvalidTableName, "%q", name)
	}
	if skip < 0 {
		return nil, errors.WithStack(ErrInvalidSkip)
	}

	path := filepath.Join(s.cfg.DataDir, table+".json")
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrSourceNotFound, "%s.json", table)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	s.log.Info().
		Str("table", table).
		Str("file", path).
		Int("skip", skip).
		Msg("Starting import")

	return s.Import(ctx, table, file, skip)
}

// Import writes the records of the document's table block into table.
// The document is validated as a whole before the first write.
func (s *importService) Import(ctx context.Context, table string, src io.Reader, skip int) (*models.ImportResult, error) {
	if !validation.IsIdentifier(table) {
		return nil, errors.Wrapf(ErrInvalidTableName, "%q", table)
	}
	if skip < 0 {
		return nil, errors.WithStack(ErrInvalidSkip)
	}

	records, err := parseDocument(src)
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{Table: table}
	if skip >= len(records) {
		s.log.Info().
			Str("table", table).
			Int("records", len(records)).
			Int("skip", skip).
			Msg("Nothing to import")
		return result, nil
	}
	records = records[skip:]
	result.Total = len(records)

	for i := range records {
		records[i] = NormalizeRecord(records[i])
	}

	startTime := time.Now()
	batchSize := s.cfg.BatchSize
	batchNum := 0

	for offset := 0; offset < len(records); offset += batchSize {
		end := offset + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[offset:end]
		batchNum++

		if err := s.writeBatch(ctx, table, batch); err != nil {
			s.log.Error().Err(err).
				Str("table", table).
				Int("batch", batchNum).
				Int("batch_size", len(batch)).
				Msg("Batch insert failed")
			result.Errors += len(batch)
			result.Failures = append(result.Failures, models.BatchFailure{
				Batch:   batchNum,
				Offset:  offset,
				Size:    len(batch),
				Message: err.Error(),
			})
		} else {
			result.Imported += len(batch)
		}

		s.log.Debug().
			Str("table", table).
			Int("batch", batchNum).
			Int("imported", result.Imported).
			Int("errors", result.Errors).
			Int("total", result.Total).
			Msg("Batch processed")
	}

	duration := time.Since(startTime)
	var rowsPerSec float64
	if duration.Seconds() > 0 {
		rowsPerSec = float64(result.Total) / duration.Seconds()
	}

	s.log.Info().
		Str("table", table).
		Int("total", result.Total).
		Int("imported", result.Imported).
		Int("errors", result.Errors).
		Int("batches", batchNum).
		Int64("duration_ms", duration.Milliseconds()).
		Float64("rows_per_sec", rowsPerSec).
		Msg("Import completed")

	return result, nil
}

// writeBatch inserts one batch, retrying up to MaxRetries times with linear backoff
func (s *importService) writeBatch(ctx context.Context, table string, batch []models.Record) error {
	var err error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if serr := s.sleep(ctx, time.Duration(attempt)*s.cfg.RetryBackoff); serr != nil {
				return err
			}
		}

		err = s.insertOnce(ctx, table, batch)
		if err == nil {
			return nil
		}
	}
	return err
}

func (s *importService) insertOnce(ctx context.Context, table string, batch []models.Record) error {
	if s.cfg.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.BatchTimeout)
		defer cancel()
	}
	_, err := s.repos.Table.BatchInsert(ctx, table, batch)
	return err
}

// parseDocument extracts the records of the first "table" block
func parseDocument(src io.Reader) ([]models.Record, error) {
	dec := json.NewDecoder(src)
	dec.UseNumber()

	var blocks []models.Block
	if err := dec.Decode(&blocks); err != nil {
		return nil, errors.Wrapf(ErrDocumentFormat, "decode document: %v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.Wrap(ErrDocumentFormat, "trailing data after document")
	}

	// First table block wins
	var table *models.Block
	for i := range blocks {
		if blocks[i].Type == models.BlockTypeTable {
			table = &blocks[i]
			break
		}
	}
	if table == nil {
		return nil, errors.Wrap(ErrDocumentFormat, "no table block")
	}

	data := bytes.TrimSpace(table.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, errors.Wrap(ErrDocumentFormat, "table data is not an array")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(ErrDocumentFormat, "decode table data: %v", err)
	}

	records := make([]models.Record, 0, len(raw))
	for i, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, errors.Wrapf(ErrDocumentFormat, "record %d is not an object", i)
		}

		rdec := json.NewDecoder(bytes.NewReader(item))
		rdec.UseNumber()
		var rec models.Record
		if err := rdec.Decode(&rec); err != nil {
			return nil, errors.Wrapf(ErrDocumentFormat, "decode record %d: %v", i, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
