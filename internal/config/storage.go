package config

import (
	"log"
	"strings"
	"sync"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type StorageConfig struct {
	Driver string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		driver := strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory))
		switch driver {
		case StorageMemory, StoragePostgres, StorageRedis:
		default:
			log.Printf("Warning: unknown STORAGE_DRIVER %q, falling back to %s", driver, StorageMemory)
			driver = StorageMemory
		}
		storageConfig = &StorageConfig{Driver: driver}
	})
	return storageConfig
}
