package resources

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/client"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/normalize"
)

// FeeStructure defines a chargeable fee for a class or term.
type FeeStructure struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Amount    normalize.FlexFloat `json:"amount"`
	Frequency string              `json:"frequency"`
	ClassID   string              `json:"classId"`
	Class     *ClassRef           `json:"class"`

	ClassName string `json:"-"`
}

// Invoice is a fee demand against a student. Amounts arrive stringified from
// some endpoints; Status is the backend enum, StatusLabel its display form.
type Invoice struct {
	ID         string              `json:"id"`
	StudentID  string              `json:"studentId"`
	Student    *studentRef         `json:"student"`
	Amount     normalize.FlexFloat `json:"amount"`
	AmountPaid normalize.FlexFloat `json:"amountPaid"`
	Status     string              `json:"status"`
	DueDate    normalize.Timestamp `json:"dueDate"`
	CreatedAt  normalize.Timestamp `json:"createdAt"`

	StudentName string `json:"-"`
	StatusLabel string `json:"-"`
}

type studentRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (i *Invoice) derive() {
	if i.Student != nil {
		i.StudentName = i.Student.FirstName + " " + i.Student.LastName
		if i.StudentID == "" {
			i.StudentID = i.Student.ID
		}
	}
	i.StatusLabel = normalize.DisplayLabel(i.Status)
}

// Payment is a recorded payment against an invoice.
type Payment struct {
	ID        string              `json:"id"`
	InvoiceID string              `json:"invoiceId"`
	Amount    normalize.FlexFloat `json:"amount"`
	Method    string              `json:"method"`
	Reference string              `json:"reference"`
	PaidAt    normalize.Timestamp `json:"paidAt"`

	MethodLabel string `json:"-"`
}

// PaymentInput records a payment.
type PaymentInput struct {
	InvoiceID string  `json:"invoiceId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Reference string  `json:"reference,omitempty"`
}

// InvoiceQuery filters an invoice listing.
type InvoiceQuery struct {
	StudentID string
	Status    string
}

// FeeService manages fee structures, invoices, and payments.
type FeeService interface {
	ListStructures(ctx context.Context) ([]FeeStructure, error)
	ListInvoices(ctx context.Context, query InvoiceQuery) (Paged[Invoice], error)
	RecordPayment(ctx context.Context, input PaymentInput) (*Payment, error)
	ListPayments(ctx context.Context, invoiceID string) ([]Payment, error)
}

type feeService struct {
	client Doer
	logger *slog.Logger
}

// NewFeeService creates the fee service.
func NewFeeService(d Doer, logger *slog.Logger) FeeService {
	return &feeService{client: d, logger: logger}
}

func (s *feeService) ListStructures(ctx context.Context) ([]FeeStructure, error) {
	page, err := fetchList[FeeStructure](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/fees/structures",
	}, "structures")
	if err != nil {
		return nil, err
	}
	for i := range page.Items {
		if page.Items[i].Class != nil {
			page.Items[i].ClassName = page.Items[i].Class.Name
		}
	}
	return page.Items, nil
}

func (s *feeService) ListInvoices(ctx context.Context, query InvoiceQuery) (Paged[Invoice], error) {
	values := url.Values{}
	if query.StudentID != "" {
		values.Set("studentId", query.StudentID)
	}
	if query.Status != "" {
		values.Set("status", query.Status)
	}

	page, err := fetchList[Invoice](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/fees/invoices",
		Query:  values,
	}, "invoices")
	if err != nil {
		return page, err
	}
	for i := range page.Items {
		page.Items[i].derive()
	}
	return page, nil
}

func (s *feeService) RecordPayment(ctx context.Context, input PaymentInput) (*Payment, error) {
	payment, err := fetchOne[Payment](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/fees/payments",
		Body:   input,
	})
	if err != nil || payment == nil {
		return payment, err
	}
	payment.MethodLabel = normalize.DisplayLabel(payment.Method)
	return payment, nil
}

func (s *feeService) ListPayments(ctx context.Context, invoiceID string) ([]Payment, error) {
	values := url.Values{}
	if invoiceID != "" {
		values.Set("invoiceId", invoiceID)
	}

	page, err := fetchList[Payment](ctx, s.client, client.Request{
		Method: http.MethodGet,
		Path:   "/fees/payments",
		Query:  values,
	}, "payments")
	if err != nil {
		return nil, err
	}
	for i := range page.Items {
		page.Items[i].MethodLabel = normalize.DisplayLabel(page.Items[i].Method)
	}
	return page.Items, nil
}
