package backend

import (
	"context"
	"fmt"

	"github.com/srxshiv/personal-finance-tracker/internal/amqp"
	applog "github.com/srxshiv/personal-finance-tracker/internal/log"
	"github.com/srxshiv/personal-finance-tracker/internal/storage"
	"github.com/srxshiv/personal-finance-tracker/internal/store/memory"
)

// DefaultFactory implements Factory.
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates the default backend factory.
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend builds the store named by cfg.Type.
func (f *DefaultFactory) CreateBackend(ctx context.Context, cfg Config) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(cfg)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(cfg Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	var publisher SyncPublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without ledger sync", applog.FieldError, err.Error())
		} else {
			publisher = amqpClient
			f.logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	f.logger.Info("Initialized SQLite backend",
		applog.FieldPath, cfg.SQLiteDBPath,
		"ledger_sync", publisher != nil)

	return &Result{
		Store:     repo,
		Publisher: publisher,
		Cleanup: func() error {
			if amqpClient != nil {
				if err := amqpClient.Close(); err != nil {
					return err
				}
			}
			return repo.Close()
		},
	}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	f.logger.Info("Initialized in-memory backend")
	return &Result{
		Store:   memory.New(),
		Cleanup: nil,
	}, nil
}
