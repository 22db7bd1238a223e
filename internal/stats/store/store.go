package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/roastery/internal/stats"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal

	query := `SELECT COALESCE(SUM(amount), 0)::text FROM invoices WHERE status = 'paid'`
	if err := s.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing paid invoices: %w", err)
	}

	return total, nil
}

func (s *Store) InvoiceCount(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting invoices: %w", err)
	}

	return n, nil
}

func (s *Store) PendingDeliveries(ctx context.Context) (int64, error) {
	var n int64

	query := `SELECT COUNT(*) FROM deliveries WHERE status = 'pending'`
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting pending deliveries: %w", err)
	}

	return n, nil
}

// TopClients only considers clients with at least one paid invoice. Equal totals are ordered by id.
func (s *Store) TopClients(ctx context.Context, limit int) ([]stats.ClientTotal, error) {
	query := `
		SELECT c.id, c.name, SUM(i.amount)::text AS total
		FROM clients c
		JOIN invoices i ON i.client_id = c.id
		WHERE i.status = 'paid'
		GROUP BY c.id, c.name
		ORDER BY SUM(i.amount) DESC, c.id ASC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking clients: %w", err)
	}
	defer rows.Close()

	top := []stats.ClientTotal{}

	for rows.Next() {
		var c stats.ClientTotal
		if err := rows.Scan(&c.ID, &c.Name, &c.Total); err != nil {
			return nil, fmt.Errorf("scanning client total: %w", err)
		}

		top = append(top, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client totals: %w", err)
	}

	return top, nil
}
