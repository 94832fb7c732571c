package domain

// Projections between the aggregate and its read models are plain functions
// with an enumerable field list. No reflection-based mapping.

func ToSummary(invoice Invoice) InvoiceSummary {
	return InvoiceSummary{
		ID:           invoice.ID,
		CustomerName: invoice.CustomerName,
		InvoiceDate:  invoice.InvoiceDate,
		TotalAmount:  invoice.TotalAmount,
		Status:       invoice.Status,
		ExportedBy:   invoice.ExportedBy,
		ExportedAt:   invoice.ExportedAt,
	}
}

func ToDetail(invoice Invoice) InvoiceDetail {
	items := make([]LineItemDetail, 0, len(invoice.LineItems))
	for _, item := range invoice.LineItems {
		items = append(items, LineItemDetail{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}
	return InvoiceDetail{
		ID:           invoice.ID,
		CustomerName: invoice.CustomerName,
		InvoiceDate:  invoice.InvoiceDate,
		TotalAmount:  invoice.TotalAmount,
		LineItems:    items,
	}
}
