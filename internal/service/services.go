package service

import (
	"github.com/MKhiriev/go-study-keeper/internal/adapter"
	"github.com/MKhiriev/go-study-keeper/internal/config"
	"github.com/MKhiriev/go-study-keeper/internal/logger"
	"github.com/MKhiriev/go-study-keeper/internal/store"
)

type Services struct {
	Resolver ConflictResolver
	Engine   SyncEngine
	Job      SyncJob
}

func NewServices(storages *store.Storages, remote adapter.RemoteAdapter, cfg config.Engine, node string, log *logger.Logger) *Services {
	resolver := NewConflictResolver(log)
	engine := NewSyncEngine(storages, remote, resolver, cfg, node, log)

	return &Services{
		Resolver: resolver,
		Engine:   engine,
		Job:      NewSyncJob(engine),
	}
}
