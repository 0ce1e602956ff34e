package keys

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/client/models"
	"github.com/dmitrijs2005/linkify/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, key *models.Key) error {
	query := `INSERT INTO keys (name, pubkey, salt, nonce, ciphertext, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, key.Name, key.Pubkey.String(),
		key.Sealed.Salt, key.Sealed.Nonce, key.Sealed.Ciphertext, key.CreatedAt.UnixMilli())
	if err != nil {
		// modernc reports constraint failures only through the message.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrKeyExists, key.Name)
		}
		return fmt.Errorf("failed to insert key: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (*models.Key, error) {
	query := `SELECT name, pubkey, salt, nonce, ciphertext, created_at FROM keys WHERE name = ?`
	key, err := scanKey(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key[%s]: %w", name, err)
	}
	return key, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Key, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, pubkey, salt, nonce, ciphertext, created_at FROM keys ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var result []*models.Key
	for rows.Next() {
		key, err := scanKey(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan key row: %w", err)
		}
		result = append(result, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate key rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM keys WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete key[%s]: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanKey(row scanner) (*models.Key, error) {
	var (
		key       models.Key
		pubkey    string
		createdAt int64
	)
	if err := row.Scan(&key.Name, &pubkey, &key.Sealed.Salt, &key.Sealed.Nonce, &key.Sealed.Ciphertext, &createdAt); err != nil {
		return nil, err
	}
	pk, err := address.Parse(pubkey)
	if err != nil {
		return nil, err
	}
	key.Pubkey = pk
	key.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &key, nil
}
