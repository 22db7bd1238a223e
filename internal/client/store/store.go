package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/roastery/internal/database"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Columns selects a client aliased as c. Keep in step with Row.Dest.
const Columns = `c.id, c.name, c.cafe_name, c.address, c.phone, c.email, c.created_at`

// Row holds the scan targets of Columns. The invoice and delivery stores embed it in their joins.
type Row struct {
	c schema.Client

	cafeName, address, phone, email sql.Null[string]
}

func (r *Row) Dest() []any {
	return []any{&r.c.ID, &r.c.Name, &r.cafeName, &r.address, &r.phone, &r.email, &r.c.CreatedAt}
}

func (r *Row) Client() schema.Client {
	c := r.c
	c.CafeName = database.Ptr(r.cafeName)
	c.Address = database.Ptr(r.address)
	c.Phone = database.Ptr(r.phone)
	c.Email = database.Ptr(r.email)

	return c
}

func scanClient(s database.Scanner) (*schema.Client, error) {
	var r Row
	if err := s.Scan(r.Dest()...); err != nil {
		return nil, err
	}

	c := r.Client()

	return &c, nil
}

func (s *Store) ListClients(ctx context.Context) ([]*schema.Client, error) {
	query := `SELECT ` + Columns + ` FROM clients c ORDER BY c.created_at DESC, c.id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	clients := []*schema.Client{}

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}

	return clients, nil
}

func (s *Store) GetClient(ctx context.Context, id int64) (*schema.Client, error) {
	query := `SELECT ` + Columns + ` FROM clients c WHERE c.id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, schema.ErrNotFound
		}

		return nil, fmt.Errorf("getting client %d: %w", id, err)
	}

	return c, nil
}

const insertClient = `
	INSERT INTO clients AS c (name, cafe_name, address, phone, email, created_at)
	VALUES ($1, $2, $3, $4, $5, NOW())
	RETURNING ` + Columns

func insertArgs(in schema.InsertClient) []any {
	return []any{
		in.Name,
		database.NullString(in.CafeName),
		database.NullString(in.Address),
		database.NullString(in.Phone),
		database.NullString(in.Email),
	}
}

func (s *Store) CreateClient(ctx context.Context, in schema.InsertClient) (*schema.Client, error) {
	c, err := scanClient(s.db.QueryRowContext(ctx, insertClient, insertArgs(in)...))
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return c, nil
}

func (s *Store) CreateClients(ctx context.Context, in []schema.InsertClient) ([]*schema.Client, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, insertClient)
	if err != nil {
		return nil, fmt.Errorf("preparing client insert: %w", err)
	}
	defer stmt.Close()

	created := make([]*schema.Client, 0, len(in))

	for i, ic := range in {
		c, err := scanClient(stmt.QueryRowContext(ctx, insertArgs(ic)...))
		if err != nil {
			return nil, fmt.Errorf("creating client %d of %d: %w", i+1, len(in), err)
		}

		created = append(created, c)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}

	return created, nil
}

func (s *Store) UpdateClient(ctx context.Context, id int64, in schema.UpdateClient) (*schema.Client, error) {
	var set database.Assignments

	if in.Name != nil {
		set.Add("name", *in.Name)
	}

	if in.CafeName != nil {
		set.Add("cafe_name", database.NullString(in.CafeName))
	}

	if in.Address != nil {
		set.Add("address", database.NullString(in.Address))
	}

	if in.Phone != nil {
		set.Add("phone", database.NullString(in.Phone))
	}

	if in.Email != nil {
		set.Add("email", database.NullString(in.Email))
	}

	if set.Empty() {
		return s.GetClient(ctx, id)
	}

	query, args := set.Update("clients c", Columns, id)

	c, err := scanClient(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, schema.ErrNotFound
		}

		return nil, fmt.Errorf("updating client %d: %w", id, err)
	}

	return c, nil
}

func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("deleting client %d: %w", id, schema.ErrReferenced)
		}

		return fmt.Errorf("deleting client %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting client %d: %w", id, err)
	}

	if n == 0 {
		return schema.ErrNotFound
	}

	return nil
}
