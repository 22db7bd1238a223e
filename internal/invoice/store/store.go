package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	clientstore "github.com/MrJamesThe3rd/roastery/internal/client/store"
	"github.com/MrJamesThe3rd/roastery/internal/database"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Columns selects an invoice aliased as i. NUMERIC is read as text so no float is involved.
const Columns = `i.id, i.client_id, i.invoice_number, i.amount::text, i.date, i.status, i.created_at`

// Row holds the scan targets of Columns.
type Row struct {
	inv schema.Invoice
}

func (r *Row) Dest() []any {
	return []any{
		&r.inv.ID, &r.inv.ClientID, &r.inv.InvoiceNumber, &r.inv.Amount, &r.inv.Date,
		&r.inv.Status, &r.inv.CreatedAt,
	}
}

func (r *Row) Invoice() schema.Invoice {
	return r.inv
}

// JoinedRow scans Columns followed by the client columns.
type JoinedRow struct {
	Row
	client clientstore.Row
}

func (r *JoinedRow) Dest() []any {
	return append(r.Row.Dest(), r.client.Dest()...)
}

func (r *JoinedRow) InvoiceWithClient() schema.InvoiceWithClient {
	return schema.InvoiceWithClient{Invoice: r.Invoice(), Client: r.client.Client()}
}

func scanInvoice(s database.Scanner) (*schema.Invoice, error) {
	var r Row
	if err := s.Scan(r.Dest()...); err != nil {
		return nil, err
	}

	inv := r.Invoice()

	return &inv, nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]*schema.InvoiceWithClient, error) {
	query := `SELECT ` + Columns + `, ` + clientstore.Columns + `
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		ORDER BY i.date DESC, i.created_at DESC, i.id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	invoices := []*schema.InvoiceWithClient{}

	for rows.Next() {
		var r JoinedRow
		if err := rows.Scan(r.Dest()...); err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		inv := r.InvoiceWithClient()
		invoices = append(invoices, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}

	return invoices, nil
}

func (s *Store) GetInvoice(ctx context.Context, id int64) (*schema.Invoice, error) {
	query := `SELECT ` + Columns + ` FROM invoices i WHERE i.id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, schema.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice %d: %w", id, err)
	}

	return inv, nil
}

func (s *Store) CreateInvoice(ctx context.Context, in schema.InsertInvoice) (*schema.Invoice, error) {
	query := `
		INSERT INTO invoices AS i (client_id, invoice_number, amount, date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING ` + Columns

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query,
		in.ClientID,
		in.InvoiceNumber,
		*in.Amount,
		in.Date,
		in.StatusOrDefault(),
	))
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, unknownClient(in.ClientID)
		}

		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, id int64, in schema.UpdateInvoice) (*schema.Invoice, error) {
	var set database.Assignments

	if in.ClientID != nil {
		set.Add("client_id", *in.ClientID)
	}

	if in.InvoiceNumber != nil {
		set.Add("invoice_number", *in.InvoiceNumber)
	}

	if in.Amount != nil {
		set.Add("amount", *in.Amount)
	}

	if in.Date != nil {
		set.Add("date", *in.Date)
	}

	if in.Status != nil {
		set.Add("status", *in.Status)
	}

	if set.Empty() {
		return s.GetInvoice(ctx, id)
	}

	query, args := set.Update("invoices i", Columns, id)

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, schema.ErrNotFound
		case database.IsForeignKeyViolation(err) && in.ClientID != nil:
			return nil, unknownClient(*in.ClientID)
		}

		return nil, fmt.Errorf("updating invoice %d: %w", id, err)
	}

	return inv, nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("deleting invoice %d: %w", id, schema.ErrReferenced)
		}

		return fmt.Errorf("deleting invoice %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting invoice %d: %w", id, err)
	}

	if n == 0 {
		return schema.ErrNotFound
	}

	return nil
}

func unknownClient(id int64) error {
	return schema.Invalid("clientId", "client %d does not exist", id)
}
