package gateway

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/renato0307/clawusage/internal/domain"
)

// maxQuotedPayload bounds how much of a bad payload is echoed in errors
const maxQuotedPayload = 2048

// decodeDailyUsage converts a usage.cost payload into records.
// Any missing or invalid field fails the whole payload.
func decodeDailyUsage(payload json.RawMessage) ([]domain.UsageRecord, error) {
	var body usagePayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, protocolError("payload is not a usage object", payload, err)
	}
	if body.Daily == nil {
		return nil, protocolError(`payload has no "daily" field`, payload, nil)
	}

	records := make([]domain.UsageRecord, 0, len(*body.Daily))
	for i, entry := range *body.Daily {
		rec, err := entry.toRecord()
		if err != nil {
			return nil, protocolError(fmt.Sprintf("daily[%d]: %v", i, err), payload, nil)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (e dailyEntry) toRecord() (domain.UsageRecord, error) {
	if e.Date == nil {
		return domain.UsageRecord{}, fmt.Errorf(`missing "date"`)
	}
	date, err := domain.ParseDate(*e.Date)
	if err != nil {
		return domain.UsageRecord{}, err
	}

	rec := domain.UsageRecord{
		CacheReadTokens:  deref(e.CacheRead),
		CacheWriteTokens: deref(e.CacheWrite),
		Date:             date,
		InputTokens:      deref(e.Input),
		OutputTokens:     deref(e.Output),
	}
	if e.TotalCost != nil {
		rec.TotalCost = *e.TotalCost
	}

	switch {
	case e.TotalTokens != nil:
		rec.TokenCount = *e.TotalTokens
	case e.Input != nil || e.Output != nil || e.CacheRead != nil || e.CacheWrite != nil:
		rec.TokenCount = rec.InputTokens + rec.OutputTokens + rec.CacheReadTokens + rec.CacheWriteTokens
	default:
		return domain.UsageRecord{}, fmt.Errorf("no token counts for %s", *e.Date)
	}

	if rec.TokenCount < 0 || rec.InputTokens < 0 || rec.OutputTokens < 0 ||
		rec.CacheReadTokens < 0 || rec.CacheWriteTokens < 0 {
		return domain.UsageRecord{}, fmt.Errorf("negative token count for %s", *e.Date)
	}
	return rec, nil
}

func deref(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func protocolError(msg string, payload json.RawMessage, err error) error {
	quoted := string(payload)
	if len(quoted) > maxQuotedPayload {
		cut := maxQuotedPayload
		for cut > 0 && !utf8.RuneStart(quoted[cut]) {
			cut--
		}
		quoted = quoted[:cut] + "...(truncated)"
	}
	return domain.NewProtocolError("fetch usage", fmt.Sprintf("%s; payload: %s", msg, quoted), err)
}
