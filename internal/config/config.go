package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "ultitrack.cfg.json"

// EnvPrefix namespaces environment overrides: game.undoMode is read from
// ULTITRACK_GAME_UNDOMODE.
const EnvPrefix = "ULTITRACK"

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. A .env file next to
// it is loaded into the environment first; existing variables win.
func Load(configDir string) error {
	setDefaults()

	envFile := filepath.Join(configDir, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading %s: %w", envFile, err)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// LoadDefaults applies defaults and environment overrides without a config
// file.
func LoadDefaults() {
	setDefaults()
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./ultitrack-logs")

	viper.SetDefault("match.name", "Pickup game")
	viper.SetDefault("match.homeTeam", "")
	viper.SetDefault("match.awayTeam", "")

	viper.SetDefault("field.width", 37.0)
	viper.SetDefault("field.length", 100.0)
	viper.SetDefault("field.endzoneDepth", 18.0)

	viper.SetDefault("game.lineupSize", 7)
	viper.SetDefault("game.startingSide", "home")
	viper.SetDefault("game.undoMode", "replay")

	viper.SetDefault("roster.file", "")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./matches")
	viper.SetDefault("storage.memory.compressOutput", false)

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "ultitrack")
	viper.SetDefault("influx.bucket", "events")
	viper.SetDefault("influx.backupPath", "")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "ultitrack")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// WriteExample writes a config file holding every default to dir. It
// refuses to overwrite an existing file.
func WriteExample(dir string) (string, error) {
	setDefaults()
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists: %s", path)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("error writing config file: %w", err)
	}
	return path, nil
}
