// Package stats aggregates the dashboard figures. Sums stay decimal until the snapshot is
// rendered into its wire shape.
package stats

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

// TopClientsLimit is how many clients the ranking keeps.
const TopClientsLimit = 5

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=stats
type Repository interface {
	// TotalSales sums the amounts of paid invoices.
	TotalSales(ctx context.Context) (decimal.Decimal, error)
	InvoiceCount(ctx context.Context) (int64, error)
	PendingDeliveries(ctx context.Context) (int64, error)
	// TopClients ranks clients by their paid total, largest first.
	TopClients(ctx context.Context, limit int) ([]ClientTotal, error)
}

type ClientTotal struct {
	ID    int64
	Name  string
	Total decimal.Decimal
}

type Snapshot struct {
	TotalSales        decimal.Decimal
	InvoiceCount      int64
	PendingDeliveries int64
	TopClients        []ClientTotal
}

// Contract renders the snapshot in its wire shape. Amounts become float64 here and nowhere
// earlier; two-digit decimals below 10^8 convert without visible loss.
func (s *Snapshot) Contract() schema.Stats {
	top := make([]schema.TopClient, 0, len(s.TopClients))
	for _, c := range s.TopClients {
		top = append(top, schema.TopClient{
			ID:          c.ID,
			Name:        c.Name,
			TotalAmount: c.Total.Round(2).InexactFloat64(),
		})
	}

	return schema.Stats{
		TotalSales:        s.TotalSales.Round(2).InexactFloat64(),
		InvoiceCount:      s.InvoiceCount,
		PendingDeliveries: s.PendingDeliveries,
		TopClients:        top,
	}
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Snapshot runs the aggregate queries one after another. The figures are not read in a single
// transaction, so a write landing in between may show in some and not others.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	total, err := s.repo.TotalSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("summing sales: %w", err)
	}

	invoices, err := s.repo.InvoiceCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting invoices: %w", err)
	}

	pending, err := s.repo.PendingDeliveries(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting pending deliveries: %w", err)
	}

	top, err := s.repo.TopClients(ctx, TopClientsLimit)
	if err != nil {
		return nil, fmt.Errorf("ranking clients: %w", err)
	}

	return &Snapshot{
		TotalSales:        total,
		InvoiceCount:      invoices,
		PendingDeliveries: pending,
		TopClients:        top,
	}, nil
}
