package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/MrJamesThe3rd/roastery/internal/api"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

func idParam(id int64) api.Params {
	return api.Params{"id": strconv.FormatInt(id, 10)}
}

func (c *Client) Stats(ctx context.Context) (*schema.Stats, error) {
	var out schema.Stats
	if err := c.do(ctx, api.Stats.Get, nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListClients(ctx context.Context) ([]schema.Client, error) {
	var out []schema.Client
	if err := c.do(ctx, api.Clients.List, nil, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) GetClient(ctx context.Context, id int64) (*schema.Client, error) {
	var out schema.Client
	if err := c.do(ctx, api.Clients.Get, idParam(id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) CreateClient(ctx context.Context, in schema.InsertClient) (*schema.Client, error) {
	var out schema.Client
	if err := c.do(ctx, api.Clients.Create, nil, in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateClient(ctx context.Context, id int64, in schema.UpdateClient) (*schema.Client, error) {
	var out schema.Client
	if err := c.do(ctx, api.Clients.Update, idParam(id), in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	return c.do(ctx, api.Clients.Delete, idParam(id), nil, nil)
}

// ImportClients uploads a CSV of clients. Either every row is created or none is.
func (c *Client) ImportClients(ctx context.Context, filename string, csv io.Reader) ([]schema.Client, error) {
	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	if _, err := io.Copy(fw, csv); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	var out []schema.Client
	if err := c.send(ctx, api.Clients.Import, nil, &body, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) ListInvoices(ctx context.Context) ([]schema.InvoiceWithClient, error) {
	var out []schema.InvoiceWithClient
	if err := c.do(ctx, api.Invoices.List, nil, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) GetInvoice(ctx context.Context, id int64) (*schema.Invoice, error) {
	var out schema.Invoice
	if err := c.do(ctx, api.Invoices.Get, idParam(id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) CreateInvoice(ctx context.Context, in schema.InsertInvoice) (*schema.Invoice, error) {
	var out schema.Invoice
	if err := c.do(ctx, api.Invoices.Create, nil, in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateInvoice(ctx context.Context, id int64, in schema.UpdateInvoice) (*schema.Invoice, error) {
	var out schema.Invoice
	if err := c.do(ctx, api.Invoices.Update, idParam(id), in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteInvoice(ctx context.Context, id int64) error {
	return c.do(ctx, api.Invoices.Delete, idParam(id), nil, nil)
}

func (c *Client) ListDeliveries(ctx context.Context) ([]schema.DeliveryWithInvoice, error) {
	var out []schema.DeliveryWithInvoice
	if err := c.do(ctx, api.Deliveries.List, nil, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) CreateDelivery(ctx context.Context, in schema.InsertDelivery) (*schema.Delivery, error) {
	var out schema.Delivery
	if err := c.do(ctx, api.Deliveries.Create, nil, in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateDelivery(ctx context.Context, id int64, in schema.UpdateDelivery) (*schema.Delivery, error) {
	var out schema.Delivery
	if err := c.do(ctx, api.Deliveries.Update, idParam(id), in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
