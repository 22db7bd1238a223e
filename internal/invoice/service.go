package invoice

import (
	"context"

	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	ListInvoices(ctx context.Context) ([]*schema.InvoiceWithClient, error)
	GetInvoice(ctx context.Context, id int64) (*schema.Invoice, error)
	CreateInvoice(ctx context.Context, in schema.InsertInvoice) (*schema.Invoice, error)
	UpdateInvoice(ctx context.Context, id int64, in schema.UpdateInvoice) (*schema.Invoice, error)
	DeleteInvoice(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every invoice with its client, most recent invoice date first.
func (s *Service) List(ctx context.Context) ([]*schema.InvoiceWithClient, error) {
	return s.repo.ListInvoices(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*schema.Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

// Create stores a new invoice. The status defaults to pending.
func (s *Service) Create(ctx context.Context, in schema.InsertInvoice) (*schema.Invoice, error) {
	if err := schema.Validate(in); err != nil {
		return nil, err
	}

	in.Status = in.StatusOrDefault()

	return s.repo.CreateInvoice(ctx, in)
}

func (s *Service) Update(ctx context.Context, id int64, in schema.UpdateInvoice) (*schema.Invoice, error) {
	if err := schema.Validate(in); err != nil {
		return nil, err
	}

	return s.repo.UpdateInvoice(ctx, id, in)
}

// Delete fails with schema.ErrReferenced while deliveries still point at the invoice.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteInvoice(ctx, id)
}
