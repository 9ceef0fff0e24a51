// Package storage persists received payments in SQLite. Amounts are stored
// as the ₹-prefixed two-decimal strings produced by the extractor; the SUM
// aggregation strips the glyph and casts in SQL, so the two-decimal format
// is a hard requirement on anything written here.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"soundpay/internal/core"

	_ "modernc.org/sqlite"
)

const defaultRecentLimit = 50

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save inserts a payment record and returns its ID.
func (r *SQLiteRepository) Save(ctx context.Context, p core.Payment) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, fmt.Errorf("validate payment: %w", err)
	}

	var sender sql.NullString
	if p.SenderName != "" {
		sender = sql.NullString{String: p.SenderName, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (amount, sender_name, app_name, timestamp, notification_text)
		 VALUES (?, ?, ?, ?, ?)`,
		p.Amount, sender, p.AppName, p.TimestampMillis, p.NotificationText)
	if err != nil {
		return 0, fmt.Errorf("insert payment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Payment saved",
		"id", id,
		"amount", p.Amount,
		"app", p.AppName,
		"has_sender", sender.Valid)

	return id, nil
}

// Recent returns the latest payments, newest first. A non-positive limit
// falls back to the default.
func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]core.Payment, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, sender_name, app_name, timestamp, notification_text
		 FROM payments ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent payments: %w", err)
	}
	defer rows.Close()

	var payments []core.Payment
	for rows.Next() {
		var (
			p      core.Payment
			sender sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Amount, &sender, &p.AppName, &p.TimestampMillis, &p.NotificationText); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.SenderName = sender.String
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}

	return payments, nil
}

// SumAmounts totals the payments received at or after sinceMillis.
func (r *SQLiteRepository) SumAmounts(ctx context.Context, sinceMillis int64) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CAST(REPLACE(amount, '₹', '') AS REAL)), 0)
		 FROM payments WHERE timestamp >= ?`, sinceMillis).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum amounts: %w", err)
	}
	return total, nil
}

// Count returns the number of payments received at or after sinceMillis.
func (r *SQLiteRepository) Count(ctx context.Context, sinceMillis int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payments WHERE timestamp >= ?`, sinceMillis).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return count, nil
}

// Delete removes a single payment by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// DeleteAll clears the payment history.
func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM payments`); err != nil {
		return fmt.Errorf("delete all payments: %w", err)
	}
	slog.InfoContext(ctx, "Payment history cleared")
	return nil
}
