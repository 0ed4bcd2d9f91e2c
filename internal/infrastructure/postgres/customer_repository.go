package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cadastro-clientes/internal/domain"
	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
	"github.com/jhoicas/cadastro-clientes/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, nome, email, telefone, cpf, rua, numero, complemento, bairro, cidade, estado, cep, data_cadastro`

// CustomerRepo implementación de CustomerRepository sobre la tabla clientes.
type CustomerRepo struct {
	pool *pgxpool.Pool
	q    Querier
	now  func() time.Time
}

// NewCustomerRepository construye el adaptador sobre el pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool, q: pool, now: time.Now}
}

func (r *CustomerRepo) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes ORDER BY data_cadastro DESC, id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CustomerRepo) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) FindByEmailOrTaxID(ctx context.Context, email, taxID, excludeID string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes
		WHERE (email = $1 OR cpf = $2) AND ($3 = '' OR id <> $3)
		LIMIT 1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, email, taxID, excludeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar cliente por email o cpf: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	id := uuid.New().String()
	registeredAt := r.now().UTC().Truncate(time.Microsecond)
	a := customer.Address

	query := `INSERT INTO clientes (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		id, customer.Name, customer.Email, customer.Phone, customer.TaxID,
		a.Street, a.Number, a.Complement, a.Neighborhood, a.City, a.State, a.PostalCode,
		registeredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	customer.ID = id
	customer.RegisteredAt = registeredAt
	return nil
}

func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	a := customer.Address
	query := `UPDATE clientes SET nome = $2, email = $3, telefone = $4, cpf = $5,
			rua = $6, numero = $7, complemento = $8, bairro = $9, cidade = $10, estado = $11, cep = $12
		WHERE id = $1
		RETURNING data_cadastro`
	var registeredAt time.Time
	err := r.q.QueryRow(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.TaxID,
		a.Street, a.Number, a.Complement, a.Neighborhood, a.City, a.State, a.PostalCode,
	).Scan(&registeredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	customer.RegisteredAt = registeredAt.UTC()
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	a := &c.Address
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.TaxID,
		&a.Street, &a.Number, &a.Complement, &a.Neighborhood, &a.City, &a.State, &a.PostalCode,
		&c.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	c.RegisteredAt = c.RegisteredAt.UTC()
	return &c, nil
}
