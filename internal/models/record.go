package models

import "encoding/json"

// Record is a single row of an import document, keyed by column name.
// Values are string, json.Number, bool, nil, or nested JSON values.
type Record map[string]interface{}

// BlockTypeTable tags the block holding the rows to import
const BlockTypeTable = "table"

// Block is one tagged entry of an import document (phpMyAdmin JSON export shape)
type Block struct {
	Type     string          `json:"type"`
	Name     string          `json:"name,omitempty"`
	Database string          `json:"database,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// BatchFailure describes one batch that could not be written
type BatchFailure struct {
	Batch   int    `json:"batch"`  // 1-based batch number
	Offset  int    `json:"offset"` // index of the first record after skipping
	Size    int    `json:"size"`
	Message string `json:"message"`
}

// ImportResult summarizes a bulk import.
// Imported + Errors == Total; records are counted at batch granularity.
type ImportResult struct {
	Table    string         `json:"table,omitempty"`
	Imported int            `json:"imported"`
	Errors   int            `json:"errors"`
	Total    int            `json:"total"`
	Failures []BatchFailure `json:"failures,omitempty"`
}
