package render

import (
	"bytes"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice #{{.Invoice.ID}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: #1a1f36;
      background: #f7f9fc;
    }
    .invoice-card {
      background: #ffffff;
      max-width: 760px;
      margin: 0 auto;
      padding: 60px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    h1 { margin: 0 0 24px; font-size: 24px; }
    .label {
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      margin-bottom: 6px;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    .value { font-size: 14px; line-height: 1.5; margin-bottom: 16px; }
    table { width: 100%; border-collapse: collapse; margin: 30px 0; }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 11px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 10px 0;
    }
    td { padding: 14px 0; border-bottom: 1px solid #e3e8ee; font-size: 14px; }
    .td-right { text-align: right; }
    .total { text-align: right; font-weight: 700; font-size: 16px; }
  </style>
</head>
<body>
  <div class="invoice-card">
    <h1>Invoice #{{.Invoice.ID}}</h1>

    <div class="label">Customer</div>
    <div class="value">{{.Invoice.CustomerName}}</div>

    <div class="label">Date</div>
    <div class="value">{{formatDate .Invoice.InvoiceDate}}</div>

    <table>
      <thead>
        <tr>
          <th style="width: 50%;">Description</th>
          <th class="td-right">Qty</th>
          <th class="td-right">Unit Price</th>
          <th class="td-right">Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{.Description}}</td>
          <td class="td-right">{{.Quantity}}</td>
          <td class="td-right">{{formatMoney .UnitPrice}}</td>
          <td class="td-right">{{formatMoney .LineTotal}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="total">Total {{formatMoney .Invoice.TotalAmount}}</div>
  </div>
</body>
</html>
`

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"formatMoney": formatMoney,
		"formatDate":  formatDate,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02")
}
