package pdfgenie

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a UUIDv7 string (RFC 9562). Documents, chunks, and
// knowledge-base handles get v7 IDs so that ingestion order survives a
// lexicographic sort on the ID column.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NowUnix returns the current time as Unix seconds, the granularity
// Document.CreatedAt is persisted at.
func NowUnix() int64 {
	return time.Now().Unix()
}
