package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/venuebook/backend/internal/domain/booking"
)

// receiptData is what the receipt template renders
type receiptData struct {
	ReceiptNumber  string
	IssuedAt       string
	VenueName      string
	CustomerName   string
	EventDate      string
	PaymentType    string
	PaymentMethod  string
	TotalAmount    string
	PaidAmount     string
	BalanceAmount  string
	BalanceDueDate string
	FullyPaid      bool
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Payment Receipt {{.ReceiptNumber}}</title>
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; color: #222; margin: 0; }
  .receipt { max-width: 640px; margin: 0 auto; padding: 24px; }
  .header { border-bottom: 2px solid #222; padding-bottom: 12px; margin-bottom: 20px; }
  .header h1 { margin: 0; font-size: 22px; }
  .header .meta { color: #666; font-size: 12px; margin-top: 4px; }
  table { width: 100%; border-collapse: collapse; font-size: 14px; }
  td { padding: 6px 0; }
  td.label { color: #666; width: 45%; }
  td.value { text-align: right; }
  .amounts { margin-top: 16px; border-top: 1px solid #ddd; padding-top: 12px; }
  .total td { font-weight: bold; font-size: 16px; border-top: 1px solid #222; padding-top: 10px; }
  .paid-stamp { margin-top: 24px; text-align: center; color: #2e7d32; font-weight: bold;
    font-size: 18px; letter-spacing: 2px; }
  .due-note { margin-top: 24px; text-align: center; color: #b26a00; font-size: 13px; }
</style>
</head>
<body>
<div class="receipt">
  <div class="header">
    <h1>Payment Receipt</h1>
    <div class="meta">Receipt {{.ReceiptNumber}} &middot; Issued {{.IssuedAt}}</div>
  </div>
  <table>
    <tr><td class="label">Venue</td><td class="value">{{.VenueName}}</td></tr>
    <tr><td class="label">Customer</td><td class="value">{{.CustomerName}}</td></tr>
    <tr><td class="label">Event date</td><td class="value">{{.EventDate}}</td></tr>
    <tr><td class="label">Payment type</td><td class="value">{{.PaymentType}}</td></tr>
    <tr><td class="label">Payment method</td><td class="value">{{.PaymentMethod}}</td></tr>
  </table>
  <table class="amounts">
    <tr><td class="label">Booking total</td><td class="value">&#8377; {{.TotalAmount}}</td></tr>
    <tr class="total"><td class="label">Amount paid</td><td class="value">&#8377; {{.PaidAmount}}</td></tr>
    {{if not .FullyPaid}}
    <tr><td class="label">Balance due</td><td class="value">&#8377; {{.BalanceAmount}}</td></tr>
    {{end}}
  </table>
  {{if .FullyPaid}}
  <div class="paid-stamp">PAID IN FULL</div>
  {{else}}
  <div class="due-note">Balance of &#8377; {{.BalanceAmount}} is due by {{.BalanceDueDate}}.</div>
  {{end}}
</div>
</body>
</html>`

var receiptTmpl = template.Must(template.New("receipt").Parse(receiptTemplate))

// BuildReceiptHTML renders the receipt document for a recorded payment
func BuildReceiptHTML(b *booking.Booking, p *booking.Payment, issuedAt time.Time) (string, error) {
	data := receiptData{
		ReceiptNumber: fmt.Sprintf("RCP-%s", shortID(p.ID.String())),
		IssuedAt:      issuedAt.Format("02 Jan 2006 15:04"),
		VenueName:     b.VenueName,
		CustomerName:  b.CustomerName,
		EventDate:     b.EventDate.Format("02 Jan 2006"),
		PaymentType:   string(p.PaymentType),
		PaymentMethod: p.PaymentMethod,
		TotalAmount:   formatAmount(p.TotalAmount),
		PaidAmount:    formatAmount(p.PaidAmount),
		BalanceAmount: formatAmount(p.BalanceAmount),
		FullyPaid:     p.BalanceAmount.IsZero(),
	}
	if b.BalanceDueDate != nil {
		data.BalanceDueDate = b.BalanceDueDate.Format("02 Jan 2006")
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render receipt template: %w", err)
	}
	return buf.String(), nil
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
