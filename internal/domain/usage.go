package domain

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-day format used on the wire and in storage
const DateLayout = "2006-01-02"

// UsageRecord is the token usage of a single calendar day
type UsageRecord struct {
	CacheReadTokens  int64
	CacheWriteTokens int64
	Date             time.Time // Midnight UTC, no time component
	InputTokens      int64
	LastUpdated      time.Time // Zero until the record has been written locally
	OutputTokens     int64
	TokenCount       int64
	TotalCost        float64
}

// DateString returns the record date as YYYY-MM-DD
func (r UsageRecord) DateString() string {
	return r.Date.Format(DateLayout)
}

// UsageSummary aggregates a set of usage records
type UsageSummary struct {
	Average int64
	Days    int
	Records []UsageRecord
	Total   int64
}

// StoreStatus describes the contents of the local usage store.
// Earliest and Latest are nil when the store is empty.
type StoreStatus struct {
	Count       int64
	Earliest    *time.Time
	Latest      *time.Time
	TotalTokens int64
}

// PersistFailure records a date that could not be written
type PersistFailure struct {
	Date time.Time
	Err  error
}

// PersistResult reports the outcome of persisting a batch of records
type PersistResult struct {
	Failed   []PersistFailure
	Inserted int
	Updated  int
}

// Written returns the number of records that were stored successfully
func (r PersistResult) Written() int {
	return r.Inserted + r.Updated
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar day
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// TruncateDay returns midnight UTC of the calendar day t falls on in its own location
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
