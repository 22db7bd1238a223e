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

	"github.com/MrJamesThe3rd/roastery/internal/client/store"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

var clientCols = []string{"id", "name", "cafe_name", "address", "phone", "email", "created_at"}

var createdAt = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

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

func TestStore_ListClients(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients c ORDER BY c.created_at DESC")).
		WillReturnRows(sqlmock.NewRows(clientCols).
			AddRow(int64(2), "Bruno", "Café Central", nil, nil, "bruno@example.com", createdAt).
			AddRow(int64(1), "Ana", nil, nil, nil, nil, createdAt))

	got, err := s.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Bruno", got[0].Name)
	assert.Equal(t, new("Café Central"), got[0].CafeName)
	assert.Nil(t, got[0].Address)
	assert.Nil(t, got[1].CafeName)
}

func TestStore_ListClients_EmptyIsNotNil(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery("FROM clients").WillReturnRows(sqlmock.NewRows(clientCols))

	got, err := s.ListClients(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_GetClient_NotFound(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(clientCols))

	_, err := s.GetClient(context.Background(), 99)
	assert.ErrorIs(t, err, schema.ErrNotFound)
}

func TestStore_CreateClient(t *testing.T) {
	s, mock := newStore(t)

	// Empty optional strings are stored as NULL.
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clients AS c")).
		WithArgs("Ana", "Grão Fino", nil, nil, nil).
		WillReturnRows(sqlmock.NewRows(clientCols).
			AddRow(int64(1), "Ana", "Grão Fino", nil, nil, nil, createdAt))

	got, err := s.CreateClient(context.Background(), schema.InsertClient{
		Name:     "Ana",
		CafeName: new("Grão Fino"),
		Phone:    new(""),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, createdAt, got.CreatedAt)
}

func TestStore_CreateClients(t *testing.T) {
	type testCase struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr bool
	}

	tests := []testCase{
		{
			name: "CommitsAll",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO clients AS c"))
				prep.ExpectQuery().WithArgs("Ana", nil, nil, nil, nil).
					WillReturnRows(sqlmock.NewRows(clientCols).AddRow(int64(1), "Ana", nil, nil, nil, nil, createdAt))
				prep.ExpectQuery().WithArgs("Bruno", nil, nil, nil, nil).
					WillReturnRows(sqlmock.NewRows(clientCols).AddRow(int64(2), "Bruno", nil, nil, nil, nil, createdAt))
				mock.ExpectCommit()
			},
		},
		{
			name: "RollsBackOnFailure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO clients AS c"))
				prep.ExpectQuery().WithArgs("Ana", nil, nil, nil, nil).
					WillReturnRows(sqlmock.NewRows(clientCols).AddRow(int64(1), "Ana", nil, nil, nil, nil, createdAt))
				prep.ExpectQuery().WithArgs("Bruno", nil, nil, nil, nil).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStore(t)
			tt.setup(mock)

			got, err := s.CreateClients(context.Background(), []schema.InsertClient{{Name: "Ana"}, {Name: "Bruno"}})
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Len(t, got, 2)
		})
	}
}

func TestStore_UpdateClient(t *testing.T) {
	type testCase struct {
		name    string
		in      schema.UpdateClient
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}

	tests := []testCase{
		{
			name: "OnlyGivenColumns",
			in:   schema.UpdateClient{Phone: new("912"), Email: new("")},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("UPDATE clients AS c SET phone = $1, email = $2 WHERE c.id = $3 RETURNING")).
					WithArgs("912", nil, int64(5)).
					WillReturnRows(sqlmock.NewRows(clientCols).AddRow(int64(5), "Ana", nil, nil, "912", nil, createdAt))
			},
		},
		{
			name: "EmptyUpdateReadsBack",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT " + store.Columns + " FROM clients c WHERE c.id = $1")).
					WithArgs(int64(5)).
					WillReturnRows(sqlmock.NewRows(clientCols).AddRow(int64(5), "Ana", nil, nil, nil, nil, createdAt))
			},
		},
		{
			name: "NotFound",
			in:   schema.UpdateClient{Name: new("Ana")},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("UPDATE clients").WillReturnRows(sqlmock.NewRows(clientCols))
			},
			wantErr: schema.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStore(t)
			tt.setup(mock)

			got, err := s.UpdateClient(context.Background(), 5, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(5), got.ID)
		})
	}
}

func TestStore_DeleteClient(t *testing.T) {
	type testCase struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}

	tests := []testCase{
		{
			name: "Deleted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clients WHERE id = $1")).
					WithArgs(int64(4)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "Missing",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM clients").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: schema.ErrNotFound,
		},
		{
			name: "HasInvoices",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM clients").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
			},
			wantErr: schema.ErrReferenced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStore(t)
			tt.setup(mock)

			err := s.DeleteClient(context.Background(), 4)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}
