package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	clientstore "github.com/MrJamesThe3rd/roastery/internal/client/store"
	"github.com/MrJamesThe3rd/roastery/internal/database"
	invoicestore "github.com/MrJamesThe3rd/roastery/internal/invoice/store"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const columns = `d.id, d.invoice_id, d.delivery_date, d.status, d.notes, d.created_at`

type row struct {
	d schema.Delivery

	date  sql.Null[schema.Date]
	notes sql.Null[string]
}

func (r *row) dest() []any {
	return []any{&r.d.ID, &r.d.InvoiceID, &r.date, &r.d.Status, &r.notes, &r.d.CreatedAt}
}

func (r *row) delivery() schema.Delivery {
	d := r.d
	d.DeliveryDate = database.Ptr(r.date)
	d.Notes = database.Ptr(r.notes)

	return d
}

func scanDelivery(s database.Scanner) (*schema.Delivery, error) {
	var r row
	if err := s.Scan(r.dest()...); err != nil {
		return nil, err
	}

	d := r.delivery()

	return &d, nil
}

func (s *Store) ListDeliveries(ctx context.Context) ([]*schema.DeliveryWithInvoice, error) {
	query := `SELECT ` + columns + `, ` + invoicestore.Columns + `, ` + clientstore.Columns + `
		FROM deliveries d
		JOIN invoices i ON i.id = d.invoice_id
		JOIN clients c ON c.id = i.client_id
		ORDER BY d.delivery_date DESC NULLS FIRST, d.created_at DESC, d.id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing deliveries: %w", err)
	}
	defer rows.Close()

	deliveries := []*schema.DeliveryWithInvoice{}

	for rows.Next() {
		var (
			r   row
			inv invoicestore.JoinedRow
		)

		if err := rows.Scan(append(r.dest(), inv.Dest()...)...); err != nil {
			return nil, fmt.Errorf("scanning delivery: %w", err)
		}

		deliveries = append(deliveries, &schema.DeliveryWithInvoice{
			Delivery: r.delivery(),
			Invoice:  inv.InvoiceWithClient(),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deliveries: %w", err)
	}

	return deliveries, nil
}

func (s *Store) CreateDelivery(ctx context.Context, in schema.InsertDelivery) (*schema.Delivery, error) {
	query := `
		INSERT INTO deliveries AS d (invoice_id, delivery_date, status, notes, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING ` + columns

	d, err := scanDelivery(s.db.QueryRowContext(ctx, query,
		in.InvoiceID,
		nullDate(in.DeliveryDate),
		in.StatusOrDefault(),
		database.NullString(in.Notes),
	))
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, unknownInvoice(in.InvoiceID)
		}

		return nil, fmt.Errorf("creating delivery: %w", err)
	}

	return d, nil
}

func (s *Store) UpdateDelivery(ctx context.Context, id int64, in schema.UpdateDelivery) (*schema.Delivery, error) {
	var set database.Assignments

	if in.InvoiceID != nil {
		set.Add("invoice_id", *in.InvoiceID)
	}

	if in.DeliveryDate != nil {
		set.Add("delivery_date", nullDate(in.DeliveryDate))
	}

	if in.Status != nil {
		set.Add("status", *in.Status)
	}

	if in.Notes != nil {
		set.Add("notes", database.NullString(in.Notes))
	}

	if set.Empty() {
		return s.getDelivery(ctx, id)
	}

	query, args := set.Update("deliveries d", columns, id)

	d, err := scanDelivery(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, schema.ErrNotFound
		case database.IsForeignKeyViolation(err) && in.InvoiceID != nil:
			return nil, unknownInvoice(*in.InvoiceID)
		}

		return nil, fmt.Errorf("updating delivery %d: %w", id, err)
	}

	return d, nil
}

func (s *Store) getDelivery(ctx context.Context, id int64) (*schema.Delivery, error) {
	query := `SELECT ` + columns + ` FROM deliveries d WHERE d.id = $1`

	d, err := scanDelivery(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, schema.ErrNotFound
		}

		return nil, fmt.Errorf("getting delivery %d: %w", id, err)
	}

	return d, nil
}

// nullDate maps nil and the zero Date to NULL.
func nullDate(d *schema.Date) sql.Null[schema.Date] {
	if d == nil || d.IsZero() {
		return sql.Null[schema.Date]{}
	}

	return sql.Null[schema.Date]{V: *d, Valid: true}
}

func unknownInvoice(id int64) error {
	return schema.Invalid("invoiceId", "invoice %d does not exist", id)
}
