package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/linkify/internal/common"
	"github.com/dmitrijs2005/linkify/internal/dbx"
	"github.com/dmitrijs2005/linkify/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create assigns r.ID when empty and stores r.
func (r *PostgresRepository) Create(ctx context.Context, rec *models.Receipt) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	query := `
		INSERT INTO transactions (id, signature, signer, kind, account, status, error, raw)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		rec.ID, rec.Signature, rec.Signer, rec.Kind, rec.Account, rec.Status, rec.Error, rec.Raw,
	).Scan(&rec.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", common.ErrDuplicateTransaction, rec.Signature)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const selectReceipt = `
		SELECT id, signature, signer, kind, account, status, error, raw, created_at
		FROM transactions
`

func scanReceipt(row interface{ Scan(...any) error }) (*models.Receipt, error) {
	rec := &models.Receipt{}
	err := row.Scan(&rec.ID, &rec.Signature, &rec.Signer, &rec.Kind, &rec.Account, &rec.Status, &rec.Error, &rec.Raw, &rec.CreatedAt)
	return rec, err
}

func (r *PostgresRepository) Get(ctx context.Context, signature string) (*models.Receipt, error) {
	query := selectReceipt + `		WHERE signature = $1`
	rec, err := scanReceipt(r.db.QueryRowContext(ctx, query, signature))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) ListBySigner(ctx context.Context, signer string, limit int) ([]*models.Receipt, error) {
	query := selectReceipt + `		WHERE signer = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, signer, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
