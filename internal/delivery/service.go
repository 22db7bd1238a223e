package delivery

import (
	"context"

	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=delivery
type Repository interface {
	ListDeliveries(ctx context.Context) ([]*schema.DeliveryWithInvoice, error)
	CreateDelivery(ctx context.Context, in schema.InsertDelivery) (*schema.Delivery, error)
	UpdateDelivery(ctx context.Context, id int64, in schema.UpdateDelivery) (*schema.Delivery, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every delivery with its invoice and client. Deliveries without a date come
// first, then the latest delivery date.
func (s *Service) List(ctx context.Context) ([]*schema.DeliveryWithInvoice, error) {
	return s.repo.ListDeliveries(ctx)
}

func (s *Service) Create(ctx context.Context, in schema.InsertDelivery) (*schema.Delivery, error) {
	if err := schema.Validate(in); err != nil {
		return nil, err
	}

	in.Status = in.StatusOrDefault()

	return s.repo.CreateDelivery(ctx, in)
}

func (s *Service) Update(ctx context.Context, id int64, in schema.UpdateDelivery) (*schema.Delivery, error) {
	if err := schema.Validate(in); err != nil {
		return nil, err
	}

	return s.repo.UpdateDelivery(ctx, id, in)
}
