package store_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/roastery/internal/stats/store"
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

func TestStore_TotalSales(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(amount), 0)::text FROM invoices WHERE status = 'paid'")).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("350.50"))

	got, err := s.TotalSales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "350.5", got.String())
}

func TestStore_Counts(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM invoices")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM deliveries WHERE status = 'pending'")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	invoices, err := s.InvoiceCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), invoices)

	pending, err := s.PendingDeliveries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), pending)
}

func TestStore_TopClients(t *testing.T) {
	type testCase struct {
		name    string
		rows    *sqlmock.Rows
		wantIDs []int64
	}

	tests := []testCase{
		{
			name: "Ranked",
			rows: sqlmock.NewRows([]string{"id", "name", "total"}).
				AddRow(int64(2), "B", "200.50").
				AddRow(int64(1), "A", "150.00"),
			wantIDs: []int64{2, 1},
		},
		{
			name:    "NoPaidInvoices",
			rows:    sqlmock.NewRows([]string{"id", "name", "total"}),
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStore(t)

			mock.ExpectQuery(regexp.QuoteMeta("ORDER BY SUM(i.amount) DESC, c.id ASC")).
				WithArgs(5).
				WillReturnRows(tt.rows)

			got, err := s.TopClients(context.Background(), 5)
			require.NoError(t, err)
			require.NotNil(t, got)

			ids := []int64{}
			for _, c := range got {
				ids = append(ids, c.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
