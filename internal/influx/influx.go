package influx

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"
	"github.com/ultitrack/recorder/internal/config"
	"github.com/ultitrack/recorder/pkg/core"
)

var (
	// ErrDisabled is returned by Init when influx.enabled is false.
	ErrDisabled = errors.New("influx telemetry is disabled")
	// ErrNoSink is returned when the server is unreachable and no backup path is set.
	ErrNoSink = errors.New("influxdb unreachable and no backup path configured")
)

const (
	pingTimeout     = 5 * time.Second
	retentionPeriod = 60 * 60 * 24 * 90 // 90 days
)

// Backend writes one point per match lifecycle call to InfluxDB. When the
// server cannot be reached at Init it writes gzip line protocol to the
// backup file instead.
type Backend struct {
	cfg    config.InfluxConfig
	logger zerolog.Logger

	client       influxdb2.Client
	writer       influxdb2_api.WriteAPI
	backupFile   *os.File
	backupWriter *gzip.Writer
	valid        bool

	match core.Match
	mu    sync.Mutex
}

// New creates an influx backend. Nothing connects until Init.
func New(cfg config.InfluxConfig, logger zerolog.Logger) *Backend {
	return &Backend{
		cfg:    cfg,
		logger: logger.With().Str("component", "influx").Logger(),
	}
}

// URL is the server address built from protocol, host and port.
func (b *Backend) URL() string {
	return fmt.Sprintf("%s://%s:%s", b.cfg.Protocol, b.cfg.Host, b.cfg.Port)
}

// Valid reports whether points go to the server rather than the backup file.
func (b *Backend) Valid() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.valid
}

// Init connects and validates the server, falling back to the backup file.
func (b *Backend) Init() error {
	if !b.cfg.Enabled {
		return ErrDisabled
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.client = influxdb2.NewClientWithOptions(
		b.URL(),
		b.cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	running, err := b.client.Ping(ctx)
	if err != nil || !running {
		b.client.Close()
		b.client = nil
		return b.openBackup(err)
	}

	if err := b.setupOrganizationAndBucket(ctx); err != nil {
		b.client.Close()
		b.client = nil
		return err
	}
	b.createWriter()
	b.valid = true
	b.logger.Info().Str("url", b.URL()).Str("bucket", b.cfg.Bucket).Msg("InfluxDB client initialized")
	return nil
}

func (b *Backend) openBackup(cause error) error {
	if b.cfg.BackupPath == "" {
		if cause != nil {
			return fmt.Errorf("%w: %v", ErrNoSink, cause)
		}
		return ErrNoSink
	}

	b.logger.Warn().Err(cause).Str("backupPath", b.cfg.BackupPath).
		Msg("Failed to reach InfluxDB, writing to backup file")

	file, err := os.OpenFile(b.cfg.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating backup file: %w", err)
	}
	b.backupFile = file
	b.backupWriter = gzip.NewWriter(file)
	return nil
}

func (b *Backend) setupOrganizationAndBucket(ctx context.Context) error {
	orgs := b.client.OrganizationsAPI()

	org, err := orgs.FindOrganizationByName(ctx, b.cfg.Org)
	if err != nil {
		b.logger.Info().Str("org", b.cfg.Org).Msg("Organization not found, creating")
		org, err = orgs.CreateOrganizationWithName(ctx, b.cfg.Org)
		if err != nil {
			return fmt.Errorf("error creating organization %q: %w", b.cfg.Org, err)
		}
	}

	buckets := b.client.BucketsAPI()
	if _, err := buckets.FindBucketByName(ctx, b.cfg.Bucket); err != nil {
		b.logger.Info().Str("bucket", b.cfg.Bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = buckets.CreateBucketWithName(ctx, org, b.cfg.Bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: retentionPeriod,
		})
		if err != nil {
			return fmt.Errorf("error creating bucket %q: %w", b.cfg.Bucket, err)
		}
	}
	return nil
}

func (b *Backend) createWriter() {
	b.writer = b.client.WriteAPI(b.cfg.Org, b.cfg.Bucket)

	errorsCh := b.writer.Errors()
	go func() {
		for writeErr := range errorsCh {
			b.logger.Error().Err(writeErr).Str("bucket", b.cfg.Bucket).
				Msg("Error sending data to InfluxDB")
		}
	}()
}

// writePoint sends p to the server or appends it to the backup file.
// Caller holds the lock.
func (b *Backend) writePoint(p *influxdb2_write.Point) error {
	if b.valid {
		b.writer.WritePoint(p)
		return nil
	}
	if b.backupWriter == nil {
		return errors.New("influxDB client not initialized and backup writer not available")
	}

	line := influxdb2_write.PointToLineProtocol(p, time.Nanosecond)
	if _, err := b.backupWriter.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// Close flushes pending points and releases the client or backup file.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error
	if b.writer != nil {
		b.writer.Flush()
		b.writer = nil
	}
	if b.client != nil {
		b.client.Close()
		b.client = nil
	}
	if b.backupWriter != nil {
		errs = append(errs, b.backupWriter.Close())
		b.backupWriter = nil
	}
	if b.backupFile != nil {
		errs = append(errs, b.backupFile.Close())
		b.backupFile = nil
	}
	b.valid = false
	return errors.Join(errs...)
}

// StartMatch records the fixture and tags all later points with its name.
func (b *Backend) StartMatch(match core.Match, _ core.Roster) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.match = match
	b.logger.Debug().Str("match", match.Name).Msg("Match started")
	return b.writePoint(MatchStartPoint(match))
}

// RecordEvent writes the accepted event with the score it produced.
func (b *Backend) RecordEvent(e core.GameEvent, state core.GameState) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writePoint(EventPoint(b.match.Name, e, state))
}

// UndoEvent writes a marker for the removed event.
func (b *Backend) UndoEvent(e core.GameEvent, state core.GameState) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writePoint(UndoPoint(b.match.Name, e, state))
}

// EndMatch writes the final score and flushes.
func (b *Backend) EndMatch(final core.GameState) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.writePoint(MatchEndPoint(b.match.Name, final, time.Now())); err != nil {
		return err
	}
	if b.writer != nil {
		b.writer.Flush()
	}
	if b.backupWriter != nil {
		return b.backupWriter.Flush()
	}
	return nil
}
