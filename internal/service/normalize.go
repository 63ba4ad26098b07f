package service

import (
	"strings"

	"github.com/campus-housing-api/internal/models"
)

// zeroDatePrefix marks MySQL zero dates exported as strings
const zeroDatePrefix = "0000-00-00"

// NormalizeRecord maps empty strings and zero dates to nil.
// Every other value, nested ones included, is kept as is.
func NormalizeRecord(rec models.Record) models.Record {
	out := make(models.Record, len(rec))
	for k, v := range rec {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if s == "" || strings.HasPrefix(s, zeroDatePrefix) {
		return nil
	}
	return s
}
