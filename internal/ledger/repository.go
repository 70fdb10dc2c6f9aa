package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository defines persistence operations for the account catalog.
type Repository interface {
	GetByCode(ctx context.Context, code string) (Account, error)
	GetByID(ctx context.Context, id int64) (Account, error)
	List(ctx context.Context) ([]Account, error)
	UpdateField(ctx context.Context, id int64, field Field, value decimal.Decimal) (int64, error)
	TriggerRecompute(ctx context.Context) error
	ResetAll(ctx context.Context) error
}

const accountColumns = `id, codigo, nombre, parent_id, tipo, COALESCE(grupo, ''), COALESCE(subgrupo, ''), monto, monto_sin_depreciacion, depreciacion`

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// GetByCode fetches an account by its catalog code.
func (r *PGRepository) GetByCode(ctx context.Context, code string) (Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM cuentas WHERE codigo = $1`, code)
	return scanAccount(row)
}

// GetByID fetches an account by primary key.
func (r *PGRepository) GetByID(ctx context.Context, id int64) (Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM cuentas WHERE id = $1`, id)
	return scanAccount(row)
}

// List returns every account ordered by code, so downstream aggregation
// sees types, groups, and subgroups in code order.
func (r *PGRepository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+accountColumns+` FROM cuentas ORDER BY codigo`)
	if err != nil {
		return nil, fmt.Errorf("ledger: list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// UpdateField writes a single monetary column on one account and reports
// the affected row count. The field name comes from the Field enum, never
// from user input.
func (r *PGRepository) UpdateField(ctx context.Context, id int64, field Field, value decimal.Decimal) (int64, error) {
	var column string
	switch field {
	case FieldGrossAmount:
		column = "monto_sin_depreciacion"
	case FieldDepreciation:
		column = "depreciacion"
	default:
		return 0, fmt.Errorf("ledger: unknown field %q", field)
	}
	tag, err := r.pool.Exec(ctx, `UPDATE cuentas SET `+column+` = $1 WHERE id = $2`, value, id)
	if err != nil {
		return 0, fmt.Errorf("ledger: update %s: %w", column, err)
	}
	return tag.RowsAffected(), nil
}

// TriggerRecompute runs the stored procedure that refreshes the
// server-side rollup amounts. The procedure is idempotent.
func (r *PGRepository) TriggerRecompute(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `CALL actualizar_monto()`); err != nil {
		return fmt.Errorf("%w: %v", ErrRecomputeFailed, err)
	}
	return nil
}

// ResetAll zeroes the three monetary columns on every account.
func (r *PGRepository) ResetAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `UPDATE cuentas SET monto = 0, monto_sin_depreciacion = 0, depreciacion = 0`)
	if err != nil {
		return fmt.Errorf("ledger: reset accounts: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (Account, error) {
	var (
		acc  Account
		tipo *string
	)
	err := row.Scan(&acc.ID, &acc.Code, &acc.Name, &acc.ParentID, &tipo, &acc.Group, &acc.Subgroup,
		&acc.Amount, &acc.AmountWithoutDepreciation, &acc.Depreciation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, fmt.Errorf("ledger: scan account: %w", err)
	}
	if tipo != nil {
		acc.Type = *tipo
	}
	return acc, nil
}

var _ Repository = (*PGRepository)(nil)
