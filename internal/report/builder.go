// Package report assembles the xlsx workbooks used by the admin UI and the
// notification emails: a single-order form with a fixed layout, and a
// two-sheet report covering every order and line item.
package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"
	pkgerrors "github.com/pkg/errors"

	"github.com/gustavopprado/ecommerce-fgv/internal/ordering"
)

const (
	// ContentType is the xlsx MIME type used on download and mail attachment.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	OrdersSheet = "Orders"
	ItemsSheet  = "Items"
	formSheet   = "Order Form"

	// Fixed form layout, kept compatible with the printed template:
	// item block starts at row 7, grand total sits at D23.
	formItemStartRow = 7
	formTotalCell    = "D23"
)

// OrdersHeader and ItemsHeader are a fixed contract with the admin UI.
var (
	OrdersHeader = []string{"Order ID", "Date", "Employee Name", "Sector", "Badge", "Status", "Installments", "Total"}
	ItemsHeader  = []string{"Order ID", "Product Code", "Description", "Quantity", "Unit Price", "Subtotal"}
)

var columns = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

const dateLayout = "2006-01-02 15:04"

type Builder struct {
	repo *ordering.Repository
}

func NewBuilder(repo *ordering.Repository) *Builder {
	return &Builder{repo: repo}
}

// OrderForm renders the single-order form workbook. It returns
// ordering.ErrOrderNotFound when the order does not exist.
func (b *Builder) OrderForm(orderID int64) (*bytes.Buffer, error) {
	detail, items, err := b.repo.GetOrderDetail(orderID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", formSheet)
	f.SetColWidth(formSheet, "A", "E", 22)

	f.SetCellValue(formSheet, "A1", "Internal Order Form")
	f.SetCellValue(formSheet, "B3", "Employee:")
	f.SetCellValue(formSheet, "C3", detail.EmployeeName)
	f.SetCellValue(formSheet, "A4", detail.Badge)
	f.SetCellValue(formSheet, "C4", detail.Installments)
	f.SetCellValue(formSheet, "D4", detail.Sector)
	f.SetCellValue(formSheet, "E4", detail.OrderDate.Format(dateLayout))

	headerRow := formItemStartRow - 1
	for col, title := range []string{"Quantity", "Code", "Description", "Unit Price", "Subtotal"} {
		f.SetCellValue(formSheet, axis(col, headerRow), title)
	}
	for i, it := range items {
		row := formItemStartRow + i
		f.SetCellValue(formSheet, axis(0, row), it.Quantity)
		f.SetCellValue(formSheet, axis(1, row), it.ProductCode)
		f.SetCellValue(formSheet, axis(2, row), it.Description)
		f.SetCellValue(formSheet, axis(3, row), it.UnitPrice)
		f.SetCellValue(formSheet, axis(4, row), it.Subtotal())
	}

	f.SetCellValue(formSheet, "C23", "Grand Total")
	f.SetCellValue(formSheet, formTotalCell, detail.Total)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "write order form")
	}
	return buf, nil
}

// FullOrdersReport renders the two-sheet workbook: one row per order on
// OrdersSheet (newest first) and one row per line item on ItemsSheet
// (by order id).
func (b *Builder) FullOrdersReport() (*bytes.Buffer, error) {
	orders, err := b.repo.ListOrders(ordering.PeriodFilter{})
	if err != nil {
		return nil, err
	}
	items, err := b.repo.ListAllItems()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", OrdersSheet)
	f.NewSheet(ItemsSheet)
	f.SetColWidth(OrdersSheet, "A", "H", 20)
	f.SetColWidth(ItemsSheet, "A", "F", 24)

	for col, title := range OrdersHeader {
		f.SetCellValue(OrdersSheet, axis(col, 1), title)
	}
	for i, o := range orders {
		row := i + 2
		f.SetCellValue(OrdersSheet, axis(0, row), strconv.FormatInt(o.ID, 10))
		f.SetCellValue(OrdersSheet, axis(1, row), o.OrderDate.Format(dateLayout))
		f.SetCellValue(OrdersSheet, axis(2, row), o.EmployeeName)
		f.SetCellValue(OrdersSheet, axis(3, row), o.Sector)
		f.SetCellValue(OrdersSheet, axis(4, row), o.Badge)
		f.SetCellValue(OrdersSheet, axis(5, row), o.Status)
		f.SetCellValue(OrdersSheet, axis(6, row), o.Installments)
		f.SetCellValue(OrdersSheet, axis(7, row), o.Total)
	}

	for col, title := range ItemsHeader {
		f.SetCellValue(ItemsSheet, axis(col, 1), title)
	}
	for i, it := range items {
		row := i + 2
		f.SetCellValue(ItemsSheet, axis(0, row), strconv.FormatInt(it.OrderID, 10))
		f.SetCellValue(ItemsSheet, axis(1, row), it.ProductCode)
		f.SetCellValue(ItemsSheet, axis(2, row), it.Description)
		f.SetCellValue(ItemsSheet, axis(3, row), it.Quantity)
		f.SetCellValue(ItemsSheet, axis(4, row), it.UnitPrice)
		f.SetCellValue(ItemsSheet, axis(5, row), it.Subtotal())
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "write orders report")
	}
	return buf, nil
}

func axis(col, row int) string {
	return fmt.Sprintf("%s%d", columns[col], row)
}
