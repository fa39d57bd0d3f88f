package telemetry

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/santhosh1815/hmi/internal/errors"
	"github.com/santhosh1815/hmi/internal/logger"
	"github.com/santhosh1815/hmi/internal/simulation"
)

type sqliteRepository struct {
	db            *sql.DB
	cfg           Config
	mu            sync.Mutex
	buffer        []*simulation.Sample
	flushTicker   *time.Ticker
	shutdownChan  chan struct{}
	flushDoneChan chan struct{}
}

func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	logger.Debug().Msgf("Initializing telemetry repository at: %s", cfg.DBPath)

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	// Open database with specific pragmas for better performance and safety
	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	repo := &sqliteRepository{
		db:            db,
		cfg:           cfg,
		buffer:        make([]*simulation.Sample, 0, cfg.BatchSize),
		shutdownChan:  make(chan struct{}),
		flushDoneChan: make(chan struct{}),
	}

	repo.flushTicker = time.NewTicker(time.Duration(cfg.BatchTimeout) * time.Second)
	go repo.flusher()

	return repo, nil
}

func (r *sqliteRepository) Record(sample *simulation.Sample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = append(r.buffer, sample)

	if len(r.buffer) >= r.cfg.BatchSize {
		return r.flush()
	}

	return nil
}

func (r *sqliteRepository) Close() error {
	errFactory := errors.New()

	// Signal the flusher goroutine to stop and wait for its final flush
	close(r.shutdownChan)
	r.flushTicker.Stop()
	<-r.flushDoneChan

	// Checkpoint WAL and cleanup on close
	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}

	if err := r.db.Close(); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}

	logger.Debug().Msg("Telemetry repository closed gracefully")

	return nil
}

func (r *sqliteRepository) flusher() {
	defer close(r.flushDoneChan)

	for {
		select {
		case <-r.flushTicker.C:
			r.mu.Lock()
			if err := r.flush(); err != nil {
				logger.ErrorWithCode(err).Msg("Periodic telemetry flush failed")
			}
			r.mu.Unlock()
		case <-r.shutdownChan:
			r.mu.Lock()
			if err := r.flush(); err != nil {
				logger.ErrorWithCode(err).Msg("Final telemetry flush failed")
			}
			r.mu.Unlock()
			return
		}
	}
}

func (r *sqliteRepository) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}

	errFactory := errors.New()

	tx, err := r.db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	stmt, err := tx.Prepare(insertSampleSQL())
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to roll back transaction")
		}
		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer stmt.Close()

	for _, sample := range r.buffer {
		_, err := stmt.Exec(
			sample.Timestamp.UnixMilli(),
			sample.Voltage,
			sample.Current,
			sample.Power,
			sample.Temperature,
			sample.Frequency,
			sample.Efficiency,
			string(sample.Status),
		)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error().Err(rbErr).Msg("Failed to roll back transaction")
			}
			return errFactory.Wrap(ErrTransactionFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	logger.Debug().Int("records", len(r.buffer)).Msg("Flushed telemetry samples to database")
	r.buffer = r.buffer[:0]

	return nil
}
