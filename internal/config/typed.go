package config

import (
	"time"

	"github.com/spf13/viper"
)

// MatchConfig names the fixture being recorded
type MatchConfig struct {
	Name     string `json:"name" mapstructure:"name"`
	HomeTeam string `json:"homeTeam" mapstructure:"homeTeam"`
	AwayTeam string `json:"awayTeam" mapstructure:"awayTeam"`
}

// FieldConfig holds pitch dimensions in metres
type FieldConfig struct {
	Width        float64 `json:"width" mapstructure:"width"`
	Length       float64 `json:"length" mapstructure:"length"`
	EndzoneDepth float64 `json:"endzoneDepth" mapstructure:"endzoneDepth"`
}

// GameConfig holds engine behaviour settings
type GameConfig struct {
	LineupSize   int    `json:"lineupSize" mapstructure:"lineupSize"`
	StartingSide string `json:"startingSide" mapstructure:"startingSide"`
	UndoMode     string `json:"undoMode" mapstructure:"undoMode"`
}

// RosterConfig points at an optional YAML roster file
type RosterConfig struct {
	File string `json:"file" mapstructure:"file"`
}

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// StorageConfig selects the match sink
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
}

// InfluxConfig holds event telemetry settings
type InfluxConfig struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	Host       string `json:"host" mapstructure:"host"`
	Port       string `json:"port" mapstructure:"port"`
	Protocol   string `json:"protocol" mapstructure:"protocol"`
	Token      string `json:"token" mapstructure:"token"`
	Org        string `json:"org" mapstructure:"org"`
	Bucket     string `json:"bucket" mapstructure:"bucket"`
	BackupPath string `json:"backupPath" mapstructure:"backupPath"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

func GetMatchConfig() MatchConfig {
	return MatchConfig{
		Name:     viper.GetString("match.name"),
		HomeTeam: viper.GetString("match.homeTeam"),
		AwayTeam: viper.GetString("match.awayTeam"),
	}
}

func GetFieldConfig() FieldConfig {
	return FieldConfig{
		Width:        viper.GetFloat64("field.width"),
		Length:       viper.GetFloat64("field.length"),
		EndzoneDepth: viper.GetFloat64("field.endzoneDepth"),
	}
}

func GetGameConfig() GameConfig {
	return GameConfig{
		LineupSize:   viper.GetInt("game.lineupSize"),
		StartingSide: viper.GetString("game.startingSide"),
		UndoMode:     viper.GetString("game.undoMode"),
	}
}

func GetRosterConfig() RosterConfig {
	return RosterConfig{File: viper.GetString("roster.file")}
}

// GetStorageConfig returns the storage configuration
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
	}
}

// GetInfluxConfig returns the InfluxDB configuration
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:    viper.GetBool("influx.enabled"),
		Host:       viper.GetString("influx.host"),
		Port:       viper.GetString("influx.port"),
		Protocol:   viper.GetString("influx.protocol"),
		Token:      viper.GetString("influx.token"),
		Org:        viper.GetString("influx.org"),
		Bucket:     viper.GetString("influx.bucket"),
		BackupPath: viper.GetString("influx.backupPath"),
	}
}

// GetOTelConfig returns the OpenTelemetry configuration
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}
