package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/dbx"
	"github.com/dmitrijs2005/linkify/internal/ledger"
)

// PostgresRepository keeps accounts in the accounts table. Lamports are a
// BIGINT column, so balances above math.MaxInt64 are refused.
type PostgresRepository struct {
	db       dbx.DBTX
	lockRows bool
}

// NewPostgresRepository returns the repository operations execute against.
// Get locks the rows it reads.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, lockRows: true}
}

// NewPostgresReader returns a repository whose reads take no row locks, for
// queries running in a read-only transaction.
func NewPostgresReader(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func storedLamports(acc *ledger.Account) (int64, error) {
	if acc.Lamports > math.MaxInt64 {
		return 0, fmt.Errorf("%w: balance of %s exceeds storage range", common.ErrInvalidInput, acc.Address)
	}
	return int64(acc.Lamports), nil
}

func storedData(acc *ledger.Account) []byte {
	if acc.Data == nil {
		return []byte{}
	}
	return acc.Data
}

func (r *PostgresRepository) Get(ctx context.Context, addr address.Pubkey) (*ledger.Account, error) {
	query := `
		SELECT lamports, data
		FROM accounts
		WHERE address = $1
	`
	if r.lockRows {
		query += "FOR UPDATE"
	}
	acc := &ledger.Account{Address: addr}
	var lamports int64
	if err := r.db.QueryRowContext(ctx, query, addr[:]).Scan(&lamports, &acc.Data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", common.ErrAccountNotFound, addr)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	acc.Lamports = uint64(lamports)
	if len(acc.Data) == 0 {
		acc.Data = nil
	}
	return acc, nil
}

func (r *PostgresRepository) Create(ctx context.Context, acc *ledger.Account) error {
	lamports, err := storedLamports(acc)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO accounts (address, lamports, data)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, acc.Address[:], lamports, storedData(acc)); err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", common.ErrAccountAlreadyExists, acc.Address)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, acc *ledger.Account) error {
	lamports, err := storedLamports(acc)
	if err != nil {
		return err
	}
	query := `
		UPDATE accounts
		SET lamports = $2, data = $3, updated_at = now()
		WHERE address = $1
	`
	res, err := r.db.ExecContext(ctx, query, acc.Address[:], lamports, storedData(acc))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res, acc.Address)
}

func (r *PostgresRepository) Delete(ctx context.Context, addr address.Pubkey) error {
	query := `
		DELETE FROM accounts
		WHERE address = $1
	`
	res, err := r.db.ExecContext(ctx, query, addr[:])
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res, addr)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*ledger.Account, error) {
	query := `
		SELECT address, lamports, data
		FROM accounts
		ORDER BY address
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*ledger.Account
	for rows.Next() {
		var raw []byte
		var lamports int64
		acc := &ledger.Account{}
		if err := rows.Scan(&raw, &lamports, &acc.Data); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if acc.Address, err = address.FromBytes(raw); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		acc.Lamports = uint64(lamports)
		if len(acc.Data) == 0 {
			acc.Data = nil
		}
		out = append(out, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func requireRow(res sql.Result, addr address.Pubkey) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", common.ErrAccountNotFound, addr)
	}
	return nil
}
