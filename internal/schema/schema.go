// Package schema declares the shapes exchanged between the roastery API and its consumers.
//
// Each entity has a read shape (Client, Invoice, Delivery), an insert shape that omits the
// server-generated fields, and an update shape where every field is optional. The `validate`
// struct tags on the insert and update shapes are the runtime contract; see Validate.
package schema

import (
	"time"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// DeliveryStatus is the fulfilment state of a delivery.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

// Client is a café the roastery supplies.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CafeName  *string   `json:"cafeName"`
	Address   *string   `json:"address"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type InsertClient struct {
	Name     string  `json:"name" validate:"notblank"`
	CafeName *string `json:"cafeName,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// UpdateClient is a partial update. Nil fields are left untouched; an empty string clears an
// optional field.
type UpdateClient struct {
	Name     *string `json:"name,omitempty" validate:"omitnil,notblank"`
	CafeName *string `json:"cafeName,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// Invoice is a bill issued to a client. InvoiceNumber is caller-supplied and not unique.
type Invoice struct {
	ID            int64         `json:"id"`
	ClientID      int64         `json:"clientId"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Amount        Money         `json:"amount"`
	Date          Date          `json:"date"`
	Status        InvoiceStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type InsertInvoice struct {
	ClientID      int64         `json:"clientId" validate:"required,gt=0"`
	InvoiceNumber string        `json:"invoiceNumber" validate:"notblank"`
	Amount        *Money        `json:"amount" validate:"required,money"`
	Date          Date          `json:"date" validate:"required"`
	Status        InvoiceStatus `json:"status,omitempty" validate:"omitempty,oneof=pending paid"`
}

// StatusOrDefault returns the requested status, or pending when none was given.
func (in InsertInvoice) StatusOrDefault() InvoiceStatus {
	if in.Status == "" {
		return InvoiceStatusPending
	}

	return in.Status
}

type UpdateInvoice struct {
	ClientID      *int64         `json:"clientId,omitempty" validate:"omitnil,gt=0"`
	InvoiceNumber *string        `json:"invoiceNumber,omitempty" validate:"omitnil,notblank"`
	Amount        *Money         `json:"amount,omitempty" validate:"omitnil,money"`
	Date          *Date          `json:"date,omitempty" validate:"omitnil,required"`
	Status        *InvoiceStatus `json:"status,omitempty" validate:"omitnil,oneof=pending paid"`
}

// InvoiceWithClient is an invoice together with the client that owns it.
type InvoiceWithClient struct {
	Invoice
	Client Client `json:"client"`
}

// Delivery records getting the goods of one invoice to the café. Nothing prevents several
// deliveries for the same invoice.
type Delivery struct {
	ID           int64          `json:"id"`
	InvoiceID    int64          `json:"invoiceId"`
	DeliveryDate *Date          `json:"deliveryDate"`
	Status       DeliveryStatus `json:"status"`
	Notes        *string        `json:"notes"`
	CreatedAt    time.Time      `json:"createdAt"`
}

type InsertDelivery struct {
	InvoiceID    int64          `json:"invoiceId" validate:"required,gt=0"`
	DeliveryDate *Date          `json:"deliveryDate,omitempty"`
	Status       DeliveryStatus `json:"status,omitempty" validate:"omitempty,oneof=pending delivered"`
	Notes        *string        `json:"notes,omitempty"`
}

// StatusOrDefault returns the requested status, or pending when none was given.
func (in InsertDelivery) StatusOrDefault() DeliveryStatus {
	if in.Status == "" {
		return DeliveryStatusPending
	}

	return in.Status
}

// UpdateDelivery is a partial update. A DeliveryDate of "" clears the date.
type UpdateDelivery struct {
	InvoiceID    *int64          `json:"invoiceId,omitempty" validate:"omitnil,gt=0"`
	DeliveryDate *Date           `json:"deliveryDate,omitempty"`
	Status       *DeliveryStatus `json:"status,omitempty" validate:"omitnil,oneof=pending delivered"`
	Notes        *string         `json:"notes,omitempty"`
}

// DeliveryWithInvoice is a delivery with its invoice and the invoice's client.
type DeliveryWithInvoice struct {
	Delivery
	Invoice InvoiceWithClient `json:"invoice"`
}

// Stats is the dashboard snapshot. Amounts are plain numbers on the wire.
type Stats struct {
	TotalSales        float64     `json:"totalSales"`
	InvoiceCount      int64       `json:"invoiceCount"`
	PendingDeliveries int64       `json:"pendingDeliveries"`
	TopClients        []TopClient `json:"topClients"`
}

type TopClient struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	TotalAmount float64 `json:"totalAmount"`
}
