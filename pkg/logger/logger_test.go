package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/campus-housing-api/internal/config"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&config.LogConfig{Level: "info", Format: "json"}, &buf)

	log.Info().Str("table", "chambres").Msg("Import complete")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["service"] != serviceName {
		t.Errorf("Expected service %q, got %v", serviceName, entry["service"])
	}
	if entry["table"] != "chambres" {
		t.Errorf("Expected table field, got %v", entry["table"])
	}
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&config.LogConfig{Level: "warn"}, &buf)

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("Info should be filtered at warn level, got %q", buf.String())
	}

	log.Warn().Msg("shown")
	if buf.Len() == 0 {
		t.Error("Warn should be written at warn level")
	}
}

func TestNewWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&config.LogConfig{Level: "verbose"}, &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	if !bytes.Contains(buf.Bytes(), []byte("shown")) || bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Errorf("Expected info-level filtering, got %q", buf.String())
	}
}
