package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Invoice is a billing record as the finance endpoints return it.
type Invoice struct {
	ID         string     `json:"id"`
	PropertyID string     `json:"propertyId"`
	TenantID   string     `json:"tenantId"`
	AmountDue  int64      `json:"amountDue"` // minor currency units
	Currency   string     `json:"currency"`
	DueDate    time.Time  `json:"dueDate"`
	Status     string     `json:"status"` // open, paid, overdue, void
	PaidAt     *time.Time `json:"paidAt,omitempty"`
}

// Payment is one recorded payment against an invoice.
type Payment struct {
	ID        string    `json:"id"`
	InvoiceID string    `json:"invoiceId"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	PaidAt    time.Time `json:"paidAt"`
}

// CollectionReport summarizes collections for one month.
type CollectionReport struct {
	Month          string  `json:"month"` // YYYY-MM
	Billed         int64   `json:"billed"`
	Collected      int64   `json:"collected"`
	Outstanding    int64   `json:"outstanding"`
	CollectionRate float64 `json:"collectionRate"`
}

// InvoiceListOptions filters invoice listings. Zero values mean no filter.
type InvoiceListOptions struct {
	PropertyID string
	Status     string
	Limit      int
	Offset     int
}

// FinanceService wraps the /finances and /reports endpoints.
type FinanceService struct {
	client *Client
}

// ListInvoices fetches invoices matching the options.
func (s *FinanceService) ListInvoices(ctx context.Context, opts InvoiceListOptions) ([]Invoice, error) {
	q := url.Values{}
	if opts.PropertyID != "" {
		q.Set("propertyId", opts.PropertyID)
	}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}

	path := "/finances/invoices"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var invoices []Invoice
	if err := s.client.get(ctx, path, &invoices); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// ListPayments fetches the payments recorded against an invoice.
func (s *FinanceService) ListPayments(ctx context.Context, invoiceID string) ([]Payment, error) {
	var payments []Payment
	path := "/finances/invoices/" + url.PathEscape(invoiceID) + "/payments"
	if err := s.client.get(ctx, path, &payments); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// CollectionReport fetches the collection summary for a month (YYYY-MM).
func (s *FinanceService) CollectionReport(ctx context.Context, month string) (*CollectionReport, error) {
	q := url.Values{}
	q.Set("month", month)

	var report CollectionReport
	if err := s.client.get(ctx, "/reports/collections?"+q.Encode(), &report); err != nil {
		return nil, fmt.Errorf("collection report: %w", err)
	}
	return &report, nil
}
