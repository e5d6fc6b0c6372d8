package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendops/api/internal/database"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Orders"

var exportHeader = []interface{}{
	"Order Number", "Created At", "Status", "Items", "Total Amount",
	"Payment Method", "Payment Amount", "Transfer ID", "Transfer Date",
	"Customer Name", "Customer Email", "Customer Phone", "City", "Country",
	"Assembly Status", "Assembly Date",
}

// Export streams orders created in [start_date, end_date) as an XLSX
// workbook. Both bounds are optional.
func (h *OrderHandler) Export(w http.ResponseWriter, r *http.Request) {
	var params database.ListOrdersForExportParams
	for _, b := range []struct {
		name string
		dst  *time.Time
	}{
		{"start_date", &params.StartDate.Time},
		{"end_date", &params.EndDate.Time},
	} {
		v := r.URL.Query().Get(b.name)
		if v == "" {
			continue
		}
		t, err := parseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid "+b.name)
			return
		}
		*b.dst = t
	}
	params.StartDate.Valid = !params.StartDate.Time.IsZero()
	params.EndDate.Valid = !params.EndDate.Time.IsZero()

	orders, err := h.store.ListOrdersForExport(r.Context(), params)
	if err != nil {
		writeInternalError(w, "list orders for export", err)
		return
	}

	book, err := buildOrderWorkbook(orders)
	if err != nil {
		writeInternalError(w, "build order workbook", err)
		return
	}
	defer book.Close()

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if err := book.Write(w); err != nil {
		zap.L().Error("write order export", zap.Error(err))
	}
}

func buildOrderWorkbook(orders []database.Order) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		f.Close()
		return nil, err
	}

	total := decimal.Zero
	for i, o := range orders {
		row := orderExportRow(o)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
		total = total.Add(numericToDecimal(o.TotalAmount))
	}

	// Summary line under the data.
	summary := []interface{}{"TOTAL", "", "", "", total.StringFixed(2)}
	cell, err := excelize.CoordinatesToCellName(1, len(orders)+3)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, cell, &summary); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetColWidth(exportSheet, "A", "P", 18); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func orderExportRow(o database.Order) []interface{} {
	var paymentMethod, assemblyStatus string
	if o.PaymentMethod.Valid {
		paymentMethod = string(o.PaymentMethod.PaymentMethod)
	}
	if o.AssemblyStatus.Valid {
		assemblyStatus = string(o.AssemblyStatus.AssemblyScheduleStatus)
	}

	var name, email, phone, city, country string
	if c := o.CustomerInfo; c != nil {
		name, email, phone = c.Name, c.Email, c.Phone
		city, country = c.ShippingAddress.City, c.ShippingAddress.Country
	}

	payment := ""
	if o.PaymentAmount.Valid {
		payment = numericToString(o.PaymentAmount)
	}

	return []interface{}{
		o.OrderNumber,
		o.CreatedAt.UTC().Format(time.RFC3339),
		string(o.Status),
		o.ItemsCount,
		numericToString(o.TotalAmount),
		paymentMethod,
		payment,
		o.PaymentTransferID.String,
		formatOptionalTime(timePtr(o.PaymentTransferDate)),
		name,
		email,
		phone,
		city,
		country,
		assemblyStatus,
		formatOptionalTime(timePtr(o.AssemblyScheduledDate)),
	}
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
