package ui

import (
	"encoding/json"
	"io"
	"iter"
	"time"

	"github.com/renato0307/clawusage/internal/domain"
)

type dayJSON struct {
	CacheReadTokens      int64      `json:"cacheReadTokens"`
	CacheWriteTokens     int64      `json:"cacheWriteTokens"`
	Date                 string     `json:"date"`
	InputTokens          int64      `json:"inputTokens"`
	LastUpdated          *time.Time `json:"lastUpdated,omitempty"`
	OutputTokens         int64      `json:"outputTokens"`
	TotalCost            float64    `json:"totalCost"`
	TotalTokens          int64      `json:"totalTokens"`
	TotalTokensFormatted string     `json:"totalTokensFormatted"`
}

type summaryJSON struct {
	Average        int64     `json:"average"`
	Dates          []dayJSON `json:"dates"`
	Days           int       `json:"days"`
	Total          int64     `json:"total"`
	TotalFormatted string    `json:"totalFormatted"`
}

type statusJSON struct {
	Count       int64   `json:"count"`
	Database    string  `json:"database"`
	Earliest    *string `json:"earliest"`
	Latest      *string `json:"latest"`
	TotalTokens int64   `json:"totalTokens"`
}

func toDayJSON(r domain.UsageRecord) dayJSON {
	d := dayJSON{
		CacheReadTokens:      r.CacheReadTokens,
		CacheWriteTokens:     r.CacheWriteTokens,
		Date:                 r.DateString(),
		InputTokens:          r.InputTokens,
		OutputTokens:         r.OutputTokens,
		TotalCost:            r.TotalCost,
		TotalTokens:          r.TokenCount,
		TotalTokensFormatted: FormatTokens(r.TokenCount),
	}
	if !r.LastUpdated.IsZero() {
		lu := r.LastUpdated.UTC()
		d.LastUpdated = &lu
	}
	return d
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// SummaryJSON writes the summary as a JSON document
func SummaryJSON(w io.Writer, summary domain.UsageSummary, pretty bool) error {
	out := summaryJSON{
		Average:        summary.Average,
		Dates:          make([]dayJSON, 0, len(summary.Records)),
		Days:           summary.Days,
		Total:          summary.Total,
		TotalFormatted: FormatTokens(summary.Total),
	}
	for _, r := range summary.Records {
		out.Dates = append(out.Dates, toDayJSON(r))
	}
	return writeJSON(w, out, pretty)
}

// StatusJSON writes the store status as a JSON document
func StatusJSON(w io.Writer, status domain.StoreStatus, dbPath string, pretty bool) error {
	out := statusJSON{
		Count:       status.Count,
		Database:    dbPath,
		TotalTokens: status.TotalTokens,
	}
	if status.Earliest != nil {
		s := status.Earliest.Format(domain.DateLayout)
		out.Earliest = &s
	}
	if status.Latest != nil {
		s := status.Latest.Format(domain.DateLayout)
		out.Latest = &s
	}
	return writeJSON(w, out, pretty)
}

// ListJSON writes every record of seq as a JSON array. Nothing is written if the sequence fails.
func ListJSON(w io.Writer, seq iter.Seq2[domain.UsageRecord, error], pretty bool) (int, error) {
	days := []dayJSON{}
	for r, err := range seq {
		if err != nil {
			return 0, err
		}
		days = append(days, toDayJSON(r))
	}
	return len(days), writeJSON(w, days, pretty)
}
