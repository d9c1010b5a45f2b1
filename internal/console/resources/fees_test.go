package resources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeService_ListInvoices(t *testing.T) {
	doer := newFakeDoer()
	doer.respond("GET", "/fees/invoices", `{
		"data": [
			{"id":"i1","amount":"1500.50","amountPaid":1500.5,"status":"PAID",
			 "student":{"id":"s1","firstName":"Amina","lastName":"Khan"},
			 "dueDate":"2025-04-01"}
		],
		"meta": {"total": 1, "page": 1, "limit": 10}
	}`)

	svc := NewFeeService(doer, testLogger())
	page, err := svc.ListInvoices(context.Background(), InvoiceQuery{Status: "PAID"})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	invoice := page.Items[0]
	assert.InDelta(t, 1500.5, invoice.Amount.Float64(), 0.001, "stringified amount coerced")
	assert.Equal(t, "Paid", invoice.StatusLabel)
	assert.Equal(t, "Amina Khan", invoice.StudentName)
	assert.Equal(t, "2025-04-01", invoice.DueDate.DateOnly())

	assert.Equal(t, "PAID", doer.lastRequest().Query.Get("status"))
}

func TestFeeService_PartiallyPaidLabel(t *testing.T) {
	doer := newFakeDoer()
	doer.respond("GET", "/fees/invoices",
		`[{"id":"i2","amount":900,"status":"PARTIALLY_PAID"}]`)

	svc := NewFeeService(doer, testLogger())
	page, err := svc.ListInvoices(context.Background(), InvoiceQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Partially Paid", page.Items[0].StatusLabel)
}

func TestFeeService_RecordPayment(t *testing.T) {
	doer := newFakeDoer()
	doer.respond("POST", "/fees/payments",
		`{"data":{"id":"p1","invoiceId":"i1","amount":"500","method":"BANK_TRANSFER","paidAt":"2025-04-02T10:30:00Z"}}`)

	svc := NewFeeService(doer, testLogger())
	payment, err := svc.RecordPayment(context.Background(), PaymentInput{
		InvoiceID: "i1",
		Amount:    500,
		Method:    "BANK_TRANSFER",
	})
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.InDelta(t, 500, payment.Amount.Float64(), 0.001)
	assert.Equal(t, "Bank Transfer", payment.MethodLabel)
	assert.Equal(t, "10:30", payment.PaidAt.TimeOnly())
}
