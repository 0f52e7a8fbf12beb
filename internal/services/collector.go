package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/renato0307/clawusage/internal/domain"
	"github.com/renato0307/clawusage/internal/logging"
	"github.com/renato0307/clawusage/internal/ports"
)

// errNoStore is returned by storage operations on a collector built without a repository
var errNoStore = errors.New("no usage store configured")

// CollectorService fetches daily usage from a gateway and keeps the local store in sync
type CollectorService struct {
	dialer ports.GatewayDialer
	now    func() time.Time
	repo   ports.UsageRepository
}

// NewCollectorService creates a new CollectorService.
// repo may be nil when only fetching.
func NewCollectorService(dialer ports.GatewayDialer, repo ports.UsageRepository) *CollectorService {
	return &CollectorService{
		dialer: dialer,
		now:    time.Now,
		repo:   repo,
	}
}

// WithClock returns the service using now to decide which calendar day is today
func (s *CollectorService) WithClock(now func() time.Time) *CollectorService {
	c := *s
	c.now = now
	return &c
}

// Connect opens an authenticated session. The caller must close it.
func (s *CollectorService) Connect(ctx context.Context, address string, creds ports.GatewayCredentials) (ports.GatewaySession, error) {
	logging.Logger.Debug("Connecting to gateway", "address", address, "auth_mode", creds.Mode)

	session, err := s.dialer.Connect(ctx, address, creds)
	if err != nil {
		logging.Logger.Warn("Gateway connection failed", "address", address, "error", err)
		return nil, err
	}
	return session, nil
}

// FetchUsage returns usage for the last days calendar days including today,
// newest first, one record per date
func (s *CollectorService) FetchUsage(ctx context.Context, session ports.GatewaySession, days int) ([]domain.UsageRecord, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	records, err := session.DailyUsage(ctx, days)
	if err != nil {
		return nil, err
	}

	records = mergeByDate(records)

	start := windowStart(s.now(), days)
	before := len(records)
	records = slices.DeleteFunc(records, func(r domain.UsageRecord) bool {
		return r.Date.Before(start)
	})
	if dropped := before - len(records); dropped > 0 {
		logging.Logger.Warn("Dropping usage older than the requested window",
			"dropped", dropped, "window_start", start.Format(domain.DateLayout))
	}

	slices.SortFunc(records, func(a, b domain.UsageRecord) int {
		return b.Date.Compare(a.Date)
	})
	if len(records) > days {
		logging.Logger.Debug("Trimming usage to requested window", "returned", len(records), "days", days)
		records = records[:days]
	}

	logging.Logger.Info("Usage fetched", "days", days, "records", len(records))
	return records, nil
}

// windowStart returns the oldest calendar day of a days-long window ending on the day of now
func windowStart(now time.Time, days int) time.Time {
	return domain.TruncateDay(now).AddDate(0, 0, -(days - 1))
}

// mergeByDate collapses records sharing a date by summing their counts
func mergeByDate(records []domain.UsageRecord) []domain.UsageRecord {
	index := make(map[string]int, len(records))
	merged := make([]domain.UsageRecord, 0, len(records))

	for _, r := range records {
		r.Date = domain.TruncateDay(r.Date)
		key := r.DateString()
		i, seen := index[key]
		if !seen {
			index[key] = len(merged)
			merged = append(merged, r)
			continue
		}

		logging.Logger.Warn("Gateway returned duplicate date, merging", "date", key)
		m := &merged[i]
		m.CacheReadTokens += r.CacheReadTokens
		m.CacheWriteTokens += r.CacheWriteTokens
		m.InputTokens += r.InputTokens
		m.OutputTokens += r.OutputTokens
		m.TokenCount += r.TokenCount
		m.TotalCost += r.TotalCost
	}
	return merged
}

// Persist upserts records keyed by date. Each record is written atomically;
// failures are collected and the batch continues. When any record fails the
// partial result is returned together with an ErrStorage error.
func (s *CollectorService) Persist(ctx context.Context, records []domain.UsageRecord) (domain.PersistResult, error) {
	var result domain.PersistResult
	if s.repo == nil {
		return result, domain.NewStorageError("persist", "", errNoStore)
	}
	if len(records) == 0 {
		return result, nil
	}

	unlock, err := s.repo.Lock(ctx)
	if err != nil {
		return result, err
	}
	defer func() {
		if err := unlock(); err != nil {
			logging.Logger.Warn("Failed to release usage store lock", "error", err)
		}
	}()

	var errs []error
	for _, record := range records {
		inserted, err := s.repo.Upsert(ctx, record)
		if err != nil {
			logging.Logger.Error("Failed to persist usage", "date", record.DateString(), "error", err)
			result.Failed = append(result.Failed, domain.PersistFailure{Date: record.Date, Err: err})
			errs = append(errs, err)
			continue
		}
		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
	}

	logging.Logger.Info("Usage persisted",
		"inserted", result.Inserted, "updated", result.Updated, "failed", len(result.Failed))

	if len(errs) > 0 {
		return result, domain.NewStorageError("persist",
			fmt.Sprintf("%d of %d records not saved", len(errs), len(records)), errors.Join(errs...))
	}
	return result, nil
}

// Status summarizes the local store
func (s *CollectorService) Status(ctx context.Context) (domain.StoreStatus, error) {
	if s.repo == nil {
		return domain.StoreStatus{}, domain.NewStorageError("status", "", errNoStore)
	}
	return s.repo.Status(ctx)
}

// ListAll returns every stored record, oldest first. The sequence can be ranged over repeatedly.
func (s *CollectorService) ListAll(ctx context.Context) iter.Seq2[domain.UsageRecord, error] {
	if s.repo == nil {
		return func(yield func(domain.UsageRecord, error) bool) {
			yield(domain.UsageRecord{}, domain.NewStorageError("list", "", errNoStore))
		}
	}
	return s.repo.All(ctx)
}
