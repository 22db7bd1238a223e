package client

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	ListClients(ctx context.Context) ([]*schema.Client, error)
	GetClient(ctx context.Context, id int64) (*schema.Client, error)
	CreateClient(ctx context.Context, in schema.InsertClient) (*schema.Client, error)
	// CreateClients inserts every row or none of them.
	CreateClients(ctx context.Context, in []schema.InsertClient) ([]*schema.Client, error)
	UpdateClient(ctx context.Context, id int64, in schema.UpdateClient) (*schema.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every client, newest first.
func (s *Service) List(ctx context.Context) ([]*schema.Client, error) {
	return s.repo.ListClients(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*schema.Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) Create(ctx context.Context, in schema.InsertClient) (*schema.Client, error) {
	if err := schema.Validate(in); err != nil {
		return nil, err
	}

	return s.repo.CreateClient(ctx, in)
}

func (s *Service) Update(ctx context.Context, id int64, in schema.UpdateClient) (*schema.Client, error) {
	if err := schema.Validate(in); err != nil {
		return nil, err
	}

	return s.repo.UpdateClient(ctx, id, in)
}

// Delete fails with schema.ErrReferenced while invoices still belong to the client.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteClient(ctx, id)
}

// Import creates a batch of clients atomically. A single invalid entry rejects the batch and
// the error message names its 1-based position.
func (s *Service) Import(ctx context.Context, in []schema.InsertClient) ([]*schema.Client, error) {
	if len(in) == 0 {
		return nil, &schema.ValidationError{Message: "no clients to import"}
	}

	for i, c := range in {
		if err := schema.Validate(c); err != nil {
			ve, _ := schema.AsValidation(err)
			return nil, schema.Invalid(ve.Field, "entry %d: %s", i+1, ve.Message)
		}
	}

	created, err := s.repo.CreateClients(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("importing %d clients: %w", len(in), err)
	}

	return created, nil
}
