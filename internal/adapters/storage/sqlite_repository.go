package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plexlevi/webcorder/internal/config"
	"github.com/plexlevi/webcorder/internal/domain"
	"github.com/plexlevi/webcorder/internal/logging"
	"github.com/plexlevi/webcorder/internal/ports"
)

// SQLiteRepository implements ports.SourceRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.SourceRepository = (*SQLiteRepository)(nil)

// gormLogger wraps the webcorder logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("WEBCORDER_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository creates a new SQLiteRepository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbPath = config.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&SourceModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to migrate Source schema: %w", err)
		}
	}

	// Sessions are created by hand to get the cascading foreign key
	if !db.Migrator().HasTable(&SessionModel{}) {
		if err := db.Exec(`
			CREATE TABLE IF NOT EXISTS sessions (
				id TEXT PRIMARY KEY,
				source_key TEXT NOT NULL,
				started_at DATETIME NOT NULL,
				ended_at DATETIME,
				output_path TEXT NOT NULL,
				media_url TEXT NOT NULL DEFAULT '',
				termination TEXT NOT NULL DEFAULT 'none' CHECK (termination IN ('none','normal','error','cancelled')),
				exit_code INTEGER,
				escalated INTEGER NOT NULL DEFAULT 0,
				bytes_written INTEGER NOT NULL DEFAULT 0,
				error TEXT NOT NULL DEFAULT '',
				created_at DATETIME,
				updated_at DATETIME,
				FOREIGN KEY (source_key) REFERENCES sources(source_key) ON UPDATE CASCADE ON DELETE CASCADE
			)
		`).Error; err != nil {
			return nil, fmt.Errorf("failed to create sessions table: %w", err)
		}
		if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_session_source ON sessions(source_key)`).Error; err != nil {
			return nil, fmt.Errorf("failed to create sessions index: %w", err)
		}
		if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_session_started ON sessions(started_at)`).Error; err != nil {
			return nil, fmt.Errorf("failed to create sessions index: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetSource implements SourceReader.GetSource
func (r *SQLiteRepository) GetSource(ctx context.Context, key string) (*domain.Source, error) {
	var model SourceModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("source_key = ?", key).First(&model).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, key)
		}
		return nil, err
	}

	source := sourceModelToDomain(model)
	return &source, nil
}

// ListSources implements SourceReader.ListSources
func (r *SQLiteRepository) ListSources(ctx context.Context) ([]domain.Source, error) {
	var models []SourceModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Order("created_at ASC, source_key ASC").Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}

	sources := make([]domain.Source, 0, len(models))
	for _, m := range models {
		sources = append(sources, sourceModelToDomain(m))
	}
	return sources, nil
}

// AddSource implements SourceWriter.AddSource
func (r *SQLiteRepository) AddSource(ctx context.Context, source domain.Source) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&SourceModel{}).Where("source_key = ?", source.Key).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%w: %s", domain.ErrSourceExists, source.Key)
			}

			model := domainToSourceModel(source)
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to create source: %w", err)
			}
			return nil
		})
	}, 3)
}

// DeleteSource implements SourceWriter.DeleteSource.
// Archived sessions of the source are removed by the foreign key cascade.
func (r *SQLiteRepository) DeleteSource(ctx context.Context, key string) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Where("source_key = ?", key).Delete(&SourceModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrSourceNotFound, key)
		}
		return nil
	}, 3)
}

// SetWatchEnabled implements SourceWriter.SetWatchEnabled
func (r *SQLiteRepository) SetWatchEnabled(ctx context.Context, key string, enabled bool) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Model(&SourceModel{}).
			Where("source_key = ?", key).
			Update("watch_enabled", enabled)
		if result.Error != nil {
			return fmt.Errorf("failed to update watch flag: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrSourceNotFound, key)
		}
		return nil
	}, 3)
}

// PollRecorded implements RecordingJournal.PollRecorded
func (r *SQLiteRepository) PollRecorded(ctx context.Context, key string, live bool, at time.Time) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Model(&SourceModel{}).
			Where("source_key = ?", key).
			Updates(map[string]any{
				"last_live":      live,
				"last_polled_at": at,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to record poll: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrSourceNotFound, key)
		}
		return nil
	}, 3)
}

// SessionStarted implements RecordingJournal.SessionStarted
func (r *SQLiteRepository) SessionStarted(ctx context.Context, session domain.Session) error {
	return withRetry(func() error {
		model := domainToSessionModel(session)
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		return nil
	}, 3)
}

// SessionEnded implements RecordingJournal.SessionEnded.
// A session whose start was never journaled is inserted whole.
func (r *SQLiteRepository) SessionEnded(ctx context.Context, session domain.Session) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			model := domainToSessionModel(session)
			result := tx.Model(&SessionModel{}).
				Where("id = ?", session.ID).
				Updates(map[string]any{
					"bytes_written": model.BytesWritten,
					"ended_at":      model.EndedAt,
					"error":         model.Error,
					"escalated":     model.Escalated,
					"exit_code":     model.ExitCode,
					"termination":   model.Termination,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to finish session: %w", result.Error)
			}
			if result.RowsAffected > 0 {
				return nil
			}
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}
			return nil
		})
	}, 3)
}

// ListSessions implements SessionReader.ListSessions, newest first
func (r *SQLiteRepository) ListSessions(ctx context.Context, filter domain.SessionFilter) ([]domain.Session, error) {
	var models []SessionModel

	err := withRetry(func() error {
		query := r.db.WithContext(ctx).Order("started_at DESC")
		if filter.SourceKey != "" {
			query = query.Where("source_key = ?", filter.SourceKey)
		}
		if filter.ActiveOnly {
			query = query.Where("ended_at IS NULL")
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
		return query.Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]domain.Session, 0, len(models))
	for _, m := range models {
		sessions = append(sessions, sessionModelToDomain(m))
	}
	return sessions, nil
}

// withRetry retries operations on SQLITE_BUSY with linear backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
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
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
