package postgres

import (
	"context"
	"fmt"
)

// schemaStatements crea la tabla de clientes con los índices únicos de email y CPF.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS clientes (
		id            TEXT PRIMARY KEY,
		nome          TEXT NOT NULL,
		email         TEXT NOT NULL,
		telefone      TEXT NOT NULL,
		cpf           TEXT NOT NULL,
		rua           TEXT NOT NULL,
		numero        TEXT NOT NULL,
		complemento   TEXT NOT NULL DEFAULT '',
		bairro        TEXT NOT NULL,
		cidade        TEXT NOT NULL,
		estado        TEXT NOT NULL,
		cep           TEXT NOT NULL,
		data_cadastro TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT clientes_email_unique UNIQUE (email),
		CONSTRAINT clientes_cpf_unique UNIQUE (cpf)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_clientes_data_cadastro ON clientes (data_cadastro DESC)`,
}

// Migrate aplica el esquema en una sola transacción. Se llama una vez al arrancar; es idempotente.
func Migrate(ctx context.Context, runner *TxRunner) error {
	return runner.Run(ctx, func(q Querier) error {
		return applySchema(ctx, q)
	})
}

func applySchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrar esquema: %w", err)
		}
	}
	return nil
}
