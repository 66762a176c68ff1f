package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/ultitrack/recorder/internal/config"
	"github.com/ultitrack/recorder/internal/dispatcher"
	"github.com/ultitrack/recorder/internal/engine"
	"github.com/ultitrack/recorder/internal/geo"
	"github.com/ultitrack/recorder/internal/handlers"
	"github.com/ultitrack/recorder/internal/influx"
	"github.com/ultitrack/recorder/internal/input"
	"github.com/ultitrack/recorder/internal/logging"
	"github.com/ultitrack/recorder/internal/match"
	intOtel "github.com/ultitrack/recorder/internal/otel"
	"github.com/ultitrack/recorder/internal/parser"
	"github.com/ultitrack/recorder/internal/roster"
	"github.com/ultitrack/recorder/internal/storage"
	"github.com/ultitrack/recorder/pkg/core"
)

type sessionOptions struct {
	ConfigDir  string
	LogLevel   string
	RosterFile string
	MatchName  string
}

// session wires one recording run: config, logging, telemetry, the engine
// and the dispatcher that drives it.
type session struct {
	start time.Time

	logFile     *os.File
	logFilePath string
	slogManager *logging.SlogManager
	logger      *slog.Logger
	otel        *intOtel.Provider

	match      *match.Context
	teams      roster.Teams
	backend    storage.Backend
	service    *handlers.Service
	parser     *parser.Parser
	dispatcher *dispatcher.Dispatcher
}

func newSession(opts sessionOptions) (_ *session, err error) {
	s := &session{
		start:       time.Now(),
		slogManager: logging.NewSlogManager(),
		match:       match.NewContext(),
	}

	// Bootstrap logging to stderr until the log file exists
	s.slogManager.Setup(os.Stderr, "warn", nil, nil)
	s.logger = s.slogManager.Logger()

	if err := config.Load(opts.ConfigDir); err != nil {
		s.logger.Warn("Failed to load config, using defaults", "error", err)
	}
	level := viper.GetString("logLevel")
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}

	s.openLogFile()
	defer func() {
		if err != nil {
			_ = s.close()
		}
	}()

	// Initialize OTel provider if enabled (after log file is created)
	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		var logWriter io.Writer
		if s.logFile != nil {
			logWriter = s.logFile
		}
		p, err := intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    logWriter,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			s.logger.Error("Failed to initialize OTel provider", "error", err)
		} else {
			s.otel = p
		}
	}

	// Re-setup logging with file output, optional OTel and match context
	var otelLogProvider *sdklog.LoggerProvider
	if s.otel != nil {
		otelLogProvider = s.otel.LoggerProvider()
	}
	var out io.Writer = os.Stderr
	if s.logFile != nil {
		out = s.logFile
	}
	s.slogManager.Setup(out, level, otelLogProvider, s.match.LogAttrs)
	s.logger = s.slogManager.Logger()
	if s.logFilePath != "" {
		s.logger.Info("Logging to file", "path", s.logFilePath)
	}

	zl := logging.NewZerolog(out, level)

	// Roster and match
	rosterPath := config.GetRosterConfig().File
	if opts.RosterFile != "" {
		rosterPath = opts.RosterFile
	}
	teams, err := roster.Load(rosterPath)
	if err != nil {
		return nil, err
	}
	s.teams = teams
	reg, err := roster.New(teams.Roster)
	if err != nil {
		return nil, err
	}

	m := s.matchFromConfig(opts)
	s.match.SetMatch(m)

	// Engine
	gameCfg := config.GetGameConfig()
	eng, err := newEngine(reg, gameCfg, config.GetFieldConfig(), s.slogManager.Component("engine"))
	if err != nil {
		return nil, err
	}

	// Sinks
	s.backend = s.initBackend(eng.Field(), zl)

	// Dispatcher and handlers
	d, err := dispatcher.New(logging.NewDispatcherLogger(zl.With().Str("component", "dispatcher").Logger()))
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}
	s.dispatcher = d
	s.parser = parser.NewParser(s.slogManager.Component("parser"))
	s.service = handlers.NewService(handlers.Dependencies{
		Surface: input.New(eng, gameCfg.LineupSize),
		Parser:  s.parser,
		Match:   s.match,
		Backend: s.backend,
		Logger:  s.slogManager.Component("handlers"),
	})
	s.service.RegisterHandlers(d)

	s.logger.Info("Session ready",
		"version", CurrentVersion,
		"home", m.HomeTeam,
		"away", m.AwayTeam,
		"undoMode", gameCfg.UndoMode,
	)
	return s, nil
}

func (s *session) openLogFile() {
	logsDir := viper.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		s.logger.Error("Failed to create logs directory", "error", err, "path", logsDir)
		return
	}

	path := logging.LogFilePath(logsDir, AppName, s.start)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		s.logger.Error("Failed to create/open log file", "error", err, "path", path)
		return
	}
	s.logFile = f
	s.logFilePath = path
}

func (s *session) matchFromConfig(opts sessionOptions) core.Match {
	cfg := config.GetMatchConfig()
	m := core.Match{
		Name:            cfg.Name,
		HomeTeam:        cfg.HomeTeam,
		AwayTeam:        cfg.AwayTeam,
		StartTime:       s.start,
		RecorderVersion: CurrentVersion,
	}
	if opts.MatchName != "" {
		m.Name = opts.MatchName
	}
	if m.HomeTeam == "" {
		m.HomeTeam = s.teams.HomeName
	}
	if m.AwayTeam == "" {
		m.AwayTeam = s.teams.AwayName
	}
	return m
}

func newEngine(reg *roster.Registry, game config.GameConfig, field config.FieldConfig, logger *slog.Logger) (*engine.Engine, error) {
	mode, err := engine.ParseUndoMode(game.UndoMode)
	if err != nil {
		return nil, err
	}
	side, err := core.ParseTeamSide(game.StartingSide)
	if err != nil {
		return nil, fmt.Errorf("game.startingSide: %w", err)
	}
	return engine.New(reg, engine.Options{
		Field: geo.Field{
			Width:        field.Width,
			Length:       field.Length,
			EndzoneDepth: field.EndzoneDepth,
		},
		StartingSide: side,
		UndoMode:     mode,
		LineupSize:   game.LineupSize,
		Logger:       logger,
	}), nil
}

// initBackend builds the configured store plus the optional influx sink.
// A sink that fails to initialize is left out rather than failing the run.
func (s *session) initBackend(field geo.Field, zl zerolog.Logger) storage.Backend {
	var backends []storage.Backend

	store, err := storage.NewBackend(config.GetStorageConfig(), field)
	if err != nil {
		s.logger.Error("Failed to create storage backend", "error", err)
	} else if err := store.Init(); err != nil {
		s.logger.Error("Failed to initialize storage backend", "error", err)
	} else {
		backends = append(backends, store)
	}

	influxCfg := config.GetInfluxConfig()
	if influxCfg.Enabled {
		ib := influx.New(influxCfg, zl)
		if err := ib.Init(); err != nil {
			s.logger.Error("Failed to initialize InfluxDB sink", "error", err)
		} else {
			backends = append(backends, ib)
		}
	}

	if len(backends) == 0 {
		return nil
	}
	return storage.NewMulti(backends...)
}

// close releases sinks, flushes telemetry and closes the log file.
func (s *session) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if s.backend != nil {
		errs = append(errs, s.backend.Close())
	}
	if err := s.slogManager.Flush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("log flush failed: %w", err))
	}
	if s.otel != nil {
		errs = append(errs, s.otel.Shutdown(ctx))
	}
	s.logger.Info("Session closed", "duration", time.Since(s.start).String())
	if s.logFile != nil {
		errs = append(errs, s.logFile.Close())
	}
	return errors.Join(errs...)
}
