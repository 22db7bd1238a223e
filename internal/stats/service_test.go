package stats_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/roastery/internal/stats"
)

func TestService_Snapshot(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *stats.MockRepository)
		wantJSON  string
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "NoPaidInvoices",
			setupMock: func(m *stats.MockRepository) {
				m.EXPECT().TotalSales(gomock.Any()).Return(decimal.Zero, nil)
				m.EXPECT().InvoiceCount(gomock.Any()).Return(int64(2), nil)
				m.EXPECT().PendingDeliveries(gomock.Any()).Return(int64(1), nil)
				m.EXPECT().TopClients(gomock.Any(), stats.TopClientsLimit).Return([]stats.ClientTotal{}, nil)
			},
			wantJSON: `{"totalSales":0,"invoiceCount":2,"pendingDeliveries":1,"topClients":[]}`,
		},
		{
			name: "RankedDescending",
			setupMock: func(m *stats.MockRepository) {
				m.EXPECT().TotalSales(gomock.Any()).Return(decimal.RequireFromString("350.50"), nil)
				m.EXPECT().InvoiceCount(gomock.Any()).Return(int64(3), nil)
				m.EXPECT().PendingDeliveries(gomock.Any()).Return(int64(0), nil)
				m.EXPECT().TopClients(gomock.Any(), 5).Return([]stats.ClientTotal{
					{ID: 2, Name: "B", Total: decimal.RequireFromString("200.50")},
					{ID: 1, Name: "A", Total: decimal.RequireFromString("150.00")},
				}, nil)
			},
			wantJSON: `{"totalSales":350.5,"invoiceCount":3,"pendingDeliveries":0,"topClients":[` +
				`{"id":2,"name":"B","totalAmount":200.5},{"id":1,"name":"A","totalAmount":150}]}`,
		},
		{
			name: "StopsAtFirstFailure",
			setupMock: func(m *stats.MockRepository) {
				m.EXPECT().TotalSales(gomock.Any()).Return(decimal.Zero, nil)
				m.EXPECT().InvoiceCount(gomock.Any()).Return(int64(0), errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := stats.NewMockRepository(ctrl)
			tt.setupMock(repo)

			snap, err := stats.NewService(repo).Snapshot(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)

			got, err := json.Marshal(snap.Contract())
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(got))
		})
	}
}

func TestSnapshot_ContractKeepsCents(t *testing.T) {
	snap := stats.Snapshot{
		TotalSales: decimal.RequireFromString("0.10").Add(decimal.RequireFromString("0.20")),
	}

	assert.Equal(t, 0.3, snap.Contract().TotalSales)
	assert.NotNil(t, snap.Contract().TopClients)
}
