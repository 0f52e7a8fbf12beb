package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-26")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2026-2-26", "26/02/2026", "2026-02-30", "2026-02-26T10:00:00Z"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestTruncateDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2026, 2, 26, 23, 59, 59, 999, loc)

	got := TruncateDay(in)

	assert.Equal(t, time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC), got)
}

func TestUsageRecord_DateString(t *testing.T) {
	r := UsageRecord{Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2026-01-05", r.DateString())
}

func TestPersistResult_Written(t *testing.T) {
	r := PersistResult{Inserted: 2, Updated: 3, Failed: []PersistFailure{{}}}
	assert.Equal(t, 5, r.Written())
}
