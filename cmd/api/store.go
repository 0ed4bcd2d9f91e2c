package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/cadastro-clientes/internal/domain/repository"
	"github.com/jhoicas/cadastro-clientes/internal/infrastructure/memory"
	"github.com/jhoicas/cadastro-clientes/internal/infrastructure/mongodb"
	"github.com/jhoicas/cadastro-clientes/internal/infrastructure/postgres"
	"github.com/jhoicas/cadastro-clientes/pkg/config"
	"github.com/jhoicas/cadastro-clientes/pkg/logger"
)

// openStore conecta el driver configurado y prepara índices/tablas.
// El close devuelto libera la conexión al apagar.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.CustomerRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreMongoDB:
		client, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a MongoDB: %w", err)
		}
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.TimeoutDuration())
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				log.Error().Err(err).Msg("cerrar conexión a MongoDB")
			}
		}
		repo := mongodb.NewCustomerRepository(client, cfg.Mongo.Database)
		if err := repo.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("índices de MongoDB: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("MongoDB conectado")
		return repo, closeFn, nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, postgres.NewTxRunner(pool)); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migración de PostgreSQL: %w", err)
		}
		log.Info().Str("database", cfg.DB.DBName).Msg("PostgreSQL conectado")
		return postgres.NewCustomerRepository(pool), pool.Close, nil

	case config.StoreMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return memory.NewCustomerRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("STORE_DRIVER no soportado: %q", cfg.Store.Driver)
}
