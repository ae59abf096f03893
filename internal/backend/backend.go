// Package backend selects and wires the storage backend for the API
// server based on configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/srxshiv/personal-finance-tracker/internal/config"
	"github.com/srxshiv/personal-finance-tracker/internal/store"
)

// BackendType names a storage backend.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer.
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid reports whether the backend type is known.
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result holds the wired store plus its cleanup hook. Publisher is
// non-nil only when ledger sync is configured.
type Result struct {
	Store     store.Store
	Publisher SyncPublisher
	Cleanup   CleanupFunc
}

// SyncPublisher mirrors the service layer's publish contract so the
// factory can hand the AMQP client straight to the service.
type SyncPublisher interface {
	PublishLedgerSync(ctx context.Context, transactionID, action string) error
}

// Config holds everything needed to build a backend.
type Config struct {
	Type BackendType

	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// FromAppConfig converts the application config into a backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}, nil
}

// Factory creates backends from configuration.
type Factory interface {
	CreateBackend(ctx context.Context, cfg Config) (*Result, error)
}
