package store_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/roastery/internal/invoice/store"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

var (
	invoiceCols = []string{"id", "client_id", "invoice_number", "amount", "date", "status", "created_at"}
	joinedCols  = append(append([]string{}, invoiceCols...),
		"id", "name", "cafe_name", "address", "phone", "email", "created_at")
	createdAt   = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	invoiceDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
)

func newStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return store.New(db), mock
}

func TestStore_ListInvoices(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN clients c ON c.id = i.client_id")).
		WillReturnRows(sqlmock.NewRows(joinedCols).
			AddRow(int64(2), int64(1), "INV-002", "80.50", invoiceDate, "paid", createdAt,
				int64(1), "Ana", "Grão Fino", nil, nil, nil, createdAt))

	got, err := s.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "80.50", got[0].Amount.String())
	assert.Equal(t, "2024-03-01", got[0].Date.String())
	assert.Equal(t, schema.InvoiceStatusPaid, got[0].Status)
	assert.Equal(t, "Ana", got[0].Client.Name)
	assert.Equal(t, new("Grão Fino"), got[0].Client.CafeName)
}

func TestStore_CreateInvoice(t *testing.T) {
	amount := schema.MustMoney("150")

	in := schema.InsertInvoice{
		ClientID:      1,
		InvoiceNumber: "INV-001",
		Amount:        &amount,
		Date:          schema.NewDate(2024, 3, 1),
	}

	type testCase struct {
		name      string
		setup     func(mock sqlmock.Sqlmock)
		wantField string
	}

	tests := []testCase{
		{
			name: "Created",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices AS i")).
					WithArgs(int64(1), "INV-001", "150.00", invoiceDate, "pending").
					WillReturnRows(sqlmock.NewRows(invoiceCols).
						AddRow(int64(1), int64(1), "INV-001", "150.00", invoiceDate, "pending", createdAt))
			},
		},
		{
			name: "UnknownClient",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO invoices").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
			},
			wantField: "clientId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStore(t)
			tt.setup(mock)

			got, err := s.CreateInvoice(context.Background(), in)
			if tt.wantField != "" {
				ve, ok := schema.AsValidation(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantField, ve.Field)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "150.00", got.Amount.String())
			assert.Equal(t, schema.InvoiceStatusPending, got.Status)
		})
	}
}

func TestStore_UpdateInvoice(t *testing.T) {
	s, mock := newStore(t)

	paid := schema.InvoiceStatusPaid

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE invoices AS i SET status = $1 WHERE i.id = $2 RETURNING")).
		WithArgs("paid", int64(3)).
		WillReturnRows(sqlmock.NewRows(invoiceCols).
			AddRow(int64(3), int64(1), "INV-003", "10.00", invoiceDate, "paid", createdAt))

	got, err := s.UpdateInvoice(context.Background(), 3, schema.UpdateInvoice{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, schema.InvoiceStatusPaid, got.Status)
}

func TestStore_GetInvoice_NotFound(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM invoices i WHERE i.id = $1")).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(invoiceCols))

	_, err := s.GetInvoice(context.Background(), 8)
	assert.ErrorIs(t, err, schema.ErrNotFound)
}

func TestStore_DeleteInvoice(t *testing.T) {
	type testCase struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}

	tests := []testCase{
		{
			name: "Deleted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM invoices WHERE id = $1")).
					WithArgs(int64(6)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "Missing",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM invoices").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: schema.ErrNotFound,
		},
		{
			name: "HasDeliveries",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM invoices").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
			},
			wantErr: schema.ErrReferenced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStore(t)
			tt.setup(mock)

			err := s.DeleteInvoice(context.Background(), 6)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}
