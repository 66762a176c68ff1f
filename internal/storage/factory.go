// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/ultitrack/recorder/internal/config"
	"github.com/ultitrack/recorder/internal/geo"
	"github.com/ultitrack/recorder/internal/storage/memory"
)

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, field geo.Field) (Backend, error) {
	switch cfg.Type {
	case "memory", "":
		return memory.New(cfg.Memory, field), nil
	case "none":
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
