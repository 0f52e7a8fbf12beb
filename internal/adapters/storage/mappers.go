package storage

import (
	"fmt"

	"github.com/renato0307/clawusage/internal/domain"
)

// dailyUsageModelToDomain converts a DailyUsageModel (GORM) to domain.UsageRecord
func dailyUsageModelToDomain(m DailyUsageModel) (domain.UsageRecord, error) {
	date, err := domain.ParseDate(m.Date)
	if err != nil {
		return domain.UsageRecord{}, fmt.Errorf("corrupt row: %w", err)
	}
	return domain.UsageRecord{
		CacheReadTokens:  m.CacheReadTokens,
		CacheWriteTokens: m.CacheWriteTokens,
		Date:             date,
		InputTokens:      m.InputTokens,
		LastUpdated:      m.LastUpdated,
		OutputTokens:     m.OutputTokens,
		TokenCount:       m.TokenCount,
		TotalCost:        m.TotalCost,
	}, nil
}

// domainToDailyUsageModel converts a domain.UsageRecord to DailyUsageModel (GORM)
func domainToDailyUsageModel(r domain.UsageRecord) DailyUsageModel {
	return DailyUsageModel{
		CacheReadTokens:  r.CacheReadTokens,
		CacheWriteTokens: r.CacheWriteTokens,
		Date:             r.DateString(),
		InputTokens:      r.InputTokens,
		LastUpdated:      r.LastUpdated,
		OutputTokens:     r.OutputTokens,
		TokenCount:       r.TokenCount,
		TotalCost:        r.TotalCost,
	}
}
