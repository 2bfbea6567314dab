package factory

import (
	"errors"
	"fmt"

	"github.com/mcoot/elotrack/internal/storage"
	boltstorage "github.com/mcoot/elotrack/internal/storage/bolt"
	filestorage "github.com/mcoot/elotrack/internal/storage/file"
	"github.com/mcoot/elotrack/internal/storage/memory"
	redisstorage "github.com/mcoot/elotrack/internal/storage/redis"
	sqlitestorage "github.com/mcoot/elotrack/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeBolt   = "bolt"
	StorageTypeSQLite = "sqlite"
	StorageTypeRedis  = "redis"
	StorageTypeMemory = "memory"
)

// Default data paths per backend
const (
	DefaultBoltPath   = "elo.db"
	DefaultSQLitePath = "elo.sqlite"
)

// StorageTypes lists every accepted storage type
var StorageTypes = []string{
	StorageTypeFile,
	StorageTypeBolt,
	StorageTypeSQLite,
	StorageTypeRedis,
	StorageTypeMemory,
}

func storageTypeOrDefault(storageType string) string {
	if storageType == "" {
		return StorageTypeFile
	}
	return storageType
}

// OpenStorage opens the named backend. path is ignored by redis and memory.
func OpenStorage(storageType, path string, redisCfg *redisstorage.Config) (storage.Storage, error) {
	var (
		store storage.Storage
		err   error
	)

	switch storageTypeOrDefault(storageType) {
	case StorageTypeFile:
		store, err = asStorage(filestorage.New(path))
	case StorageTypeBolt:
		if path == "" {
			path = DefaultBoltPath
		}
		store, err = asStorage(boltstorage.New(path))
	case StorageTypeSQLite:
		if path == "" {
			path = DefaultSQLitePath
		}
		store, err = asStorage(sqlitestorage.New(path))
	case StorageTypeRedis:
		if redisCfg == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		store, err = asStorage(redisstorage.New(*redisCfg))
	case StorageTypeMemory:
		store = memory.New()
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be one of %v", storageType, StorageTypes)
	}

	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", storageTypeOrDefault(storageType), err)
	}
	return store, nil
}

// asStorage keeps a failed constructor's nil pointer out of the interface
func asStorage[T storage.Storage](store T, err error) (storage.Storage, error) {
	if err != nil {
		return nil, err
	}
	return store, nil
}
