package services

import "github.com/renato0307/clawusage/internal/domain"

// Summarize totals the records. The average is truncated to an integer; no records yields zeros.
func Summarize(records []domain.UsageRecord) domain.UsageSummary {
	summary := domain.UsageSummary{
		Days:    len(records),
		Records: records,
	}
	for _, r := range records {
		summary.Total += r.TokenCount
	}
	if summary.Days > 0 {
		summary.Average = summary.Total / int64(summary.Days)
	}
	return summary
}
