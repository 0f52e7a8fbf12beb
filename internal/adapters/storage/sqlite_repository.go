package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/renato0307/clawusage/internal/domain"
	"github.com/renato0307/clawusage/internal/logging"
	"github.com/renato0307/clawusage/internal/ports"
)

const (
	lockPollInterval   = 50 * time.Millisecond
	lockTimeout        = 10 * time.Second
	maxBusyRetries     = 3
	slowQueryThreshold = 200 * time.Millisecond
)

// SQLiteRepository implements ports.UsageRepository using GORM
type SQLiteRepository struct {
	db       *gorm.DB
	lockPath string
	now      func() time.Time
}

// Verify interface compliance at compile time
var _ ports.UsageRepository = (*SQLiteRepository)(nil)

// Options configures how the usage database is opened
type Options struct {
	Path       string
	TraceQuery bool // Log every SQL statement at debug level
}

// queryLogger routes gorm output into the process logger. Failed and slow
// statements are always reported; the rest only when tracing is enabled.
type queryLogger struct {
	level logger.LogLevel
	slow  time.Duration
}

func newQueryLogger(trace bool) logger.Interface {
	l := queryLogger{level: logger.Warn, slow: slowQueryThreshold}
	if trace {
		l.level = logger.Info
	}
	return l
}

func (l queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	l.level = level
	return l
}

func (l queryLogger) Info(ctx context.Context, msg string, data ...any) {
	l.emit(ctx, logger.Info, slog.LevelInfo, msg, data)
}

func (l queryLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.emit(ctx, logger.Warn, slog.LevelWarn, msg, data)
}

func (l queryLogger) Error(ctx context.Context, msg string, data ...any) {
	l.emit(ctx, logger.Error, slog.LevelError, msg, data)
}

func (l queryLogger) emit(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, data []any) {
	if l.level < threshold {
		return
	}
	logging.Logger.Log(ctx, level, fmt.Sprintf(msg, data...), "component", "gorm")
}

func (l queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.slow > 0 && elapsed > l.slow
	if !failed && !slow && l.level < logger.Info {
		return
	}

	statement, rows := fc()
	attrs := []any{"component", "gorm", "duration", elapsed, "rows", rows, "sql", statement}
	switch {
	case failed:
		logging.Logger.ErrorContext(ctx, "gorm query failed", append(attrs, "error", err)...)
	case slow:
		logging.Logger.WarnContext(ctx, "gorm slow query", attrs...)
	default:
		logging.Logger.DebugContext(ctx, "gorm query", attrs...)
	}
}

// NewSQLiteRepository opens (creating if needed) the usage database at opts.Path
func NewSQLiteRepository(opts Options) (*SQLiteRepository, error) {
	dbPath := opts.Path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, domain.NewStorageError("open", "failed to get home directory", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, domain.NewStorageError("open", "failed to create directory", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newQueryLogger(opts.TraceQuery),
	})
	if err != nil {
		return nil, domain.NewStorageError("open", dbPath, err)
	}

	// A corrupt or foreign file fails here rather than on first write
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		closeDB(db)
		return nil, domain.NewStorageError("open", dbPath, err).
			WithSuggestion("Move the file aside or pass --db to use another database")
	}
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&DailyUsageModel{}); err != nil {
		closeDB(db)
		return nil, domain.NewStorageError("migrate", "failed to migrate daily_usage schema", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, domain.NewStorageError("open", dbPath, err)
	}
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	logging.Logger.Debug("Usage database opened", "path", dbPath, "trace_query", opts.TraceQuery)

	return &SQLiteRepository{
		db:       db,
		lockPath: dbPath + ".lock",
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Upsert implements UsageWriter.Upsert.
// The existence check and the write share one transaction.
func (r *SQLiteRepository) Upsert(ctx context.Context, record domain.UsageRecord) (bool, error) {
	if record.TokenCount < 0 {
		return false, domain.NewStorageError("upsert", record.DateString(), fmt.Errorf("negative token count %d", record.TokenCount))
	}

	model := domainToDailyUsageModel(record)
	model.LastUpdated = r.now()

	var inserted bool
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing DailyUsageModel
			err := tx.Where("date = ?", model.Date).Take(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				inserted = true
				return tx.Create(&model).Error
			}
			if err != nil {
				return err
			}

			inserted = false
			// Map form so zero counts are written too
			return tx.Model(&DailyUsageModel{}).Where("date = ?", model.Date).Updates(map[string]any{
				"cache_read_tokens":  model.CacheReadTokens,
				"cache_write_tokens": model.CacheWriteTokens,
				"input_tokens":       model.InputTokens,
				"last_updated":       model.LastUpdated,
				"output_tokens":      model.OutputTokens,
				"token_count":        model.TokenCount,
				"total_cost":         model.TotalCost,
			}).Error
		})
	}, maxBusyRetries)
	if err != nil {
		return false, domain.NewStorageError("upsert", model.Date, err)
	}

	logging.Logger.Debug("Usage record stored", "date", model.Date, "tokens", model.TokenCount, "inserted", inserted)
	return inserted, nil
}

// Status implements UsageReader.Status
func (r *SQLiteRepository) Status(ctx context.Context) (domain.StoreStatus, error) {
	var row struct {
		Count    int64
		Earliest sql.NullString
		Latest   sql.NullString
		Total    int64
	}

	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Model(&DailyUsageModel{}).
			Select("COUNT(*) AS count, MIN(date) AS earliest, MAX(date) AS latest, COALESCE(SUM(token_count), 0) AS total").
			Scan(&row).Error
	}, maxBusyRetries)
	if err != nil {
		return domain.StoreStatus{}, domain.NewStorageError("status", "failed to query daily_usage", err)
	}

	status := domain.StoreStatus{Count: row.Count, TotalTokens: row.Total}
	if row.Count == 0 {
		return status, nil
	}

	earliest, err := domain.ParseDate(row.Earliest.String)
	if err != nil {
		return domain.StoreStatus{}, domain.NewStorageError("status", "corrupt row", err)
	}
	latest, err := domain.ParseDate(row.Latest.String)
	if err != nil {
		return domain.StoreStatus{}, domain.NewStorageError("status", "corrupt row", err)
	}
	status.Earliest = &earliest
	status.Latest = &latest
	return status, nil
}

// All implements UsageReader.All. Rows are streamed, not loaded up front.
func (r *SQLiteRepository) All(ctx context.Context) iter.Seq2[domain.UsageRecord, error] {
	return func(yield func(domain.UsageRecord, error) bool) {
		rows, err := r.db.WithContext(ctx).Model(&DailyUsageModel{}).Order("date ASC").Rows()
		if err != nil {
			yield(domain.UsageRecord{}, domain.NewStorageError("list", "failed to query daily_usage", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var m DailyUsageModel
			if err := r.db.ScanRows(rows, &m); err != nil {
				yield(domain.UsageRecord{}, domain.NewStorageError("list", "failed to scan row", err))
				return
			}
			record, err := dailyUsageModelToDomain(m)
			if err != nil {
				yield(domain.UsageRecord{}, domain.NewStorageError("list", m.Date, err))
				return
			}
			if !yield(record, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(domain.UsageRecord{}, domain.NewStorageError("list", "row iteration failed", err))
		}
	}
}

// Lock implements UsageWriter.Lock using an advisory lock on <db>.lock.
// It waits for other processes until ctx is done or lockTimeout elapses.
func (r *SQLiteRepository) Lock(ctx context.Context) (func() error, error) {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	f, err := os.OpenFile(r.lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, domain.NewStorageError("lock", r.lockPath, err)
	}

	for {
		acquired, err := tryLockFile(f)
		if err != nil {
			f.Close()
			return nil, domain.NewStorageError("lock", r.lockPath, err)
		}
		if acquired {
			break
		}

		logging.Logger.Debug("Waiting for usage store lock", "path", r.lockPath)
		select {
		case <-ctx.Done():
			f.Close()
			return nil, domain.NewStorageError("lock", "usage store is locked by another process", ctx.Err())
		case <-time.After(lockPollInterval):
		}
	}

	return func() error {
		defer f.Close()
		return unlockFile(f)
	}, nil
}

// withRetry retries operations on SQLITE_BUSY with linear backoff
func withRetry(fn func() error, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries: %w", maxRetries, err)
}
