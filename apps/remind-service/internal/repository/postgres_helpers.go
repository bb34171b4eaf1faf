package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ms-You/poje-remind/pkg/database"
)

// isUniqueViolation reports a postgres unique_violation (23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func notFoundOr(err error, result pgconn.CommandTag, notFound error) error {
	if err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

// sendBatch runs batch on the connection bound to ctx and hands each result row to scan
func sendBatch(ctx context.Context, pool *pgxpool.Pool, batch *pgx.Batch, scan func(i int, row pgx.Row) error) error {
	results := database.Conn(ctx, pool).SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if err := scan(i, results.QueryRow()); err != nil {
			results.Close()
			return fmt.Errorf("batch item %d: %w", i, err)
		}
	}
	return results.Close()
}
