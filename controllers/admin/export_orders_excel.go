package adminController

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/revista-gateway/checkout"
	"github.com/junaidrashid-git/revista-gateway/session"
	"github.com/tealeg/xlsx"
)

// GET /admin/orders/export-excel
// One row per placed order across every live session.
func ExportOrdersToExcel(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"Ref", "SessionID", "Timestamp", "PaymentMethod", "Items",
			"SubTotal", "Discount", "Tax", "Shipping", "Total",
			"ContactName", "City", "Phone",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, s := range registry.Sessions() {
			for _, o := range s.Store.Orders() {
				row := sheet.AddRow()
				row.AddCell().SetValue(o.Ref)
				row.AddCell().SetValue(s.ID)
				row.AddCell().SetValue(o.Timestamp.Format("2006-01-02 15:04:05"))
				row.AddCell().SetValue(string(o.PaymentMethod))

				names := make([]string, 0, len(o.Items))
				for _, item := range o.Items {
					names = append(names, item.Name)
				}
				row.AddCell().SetValue(strings.Join(names, ", "))

				row.AddCell().SetValue(checkout.FormatAmount(o.Totals.SubTotal))
				row.AddCell().SetValue(checkout.FormatAmount(o.Totals.TotalDiscount))
				row.AddCell().SetValue(checkout.FormatAmount(o.Totals.TotalTax))
				row.AddCell().SetValue(checkout.FormatAmount(o.Totals.TotalShipping))
				row.AddCell().SetValue(checkout.FormatAmount(o.Total))

				if o.Address != nil {
					row.AddCell().SetValue(o.Address.Name)
					row.AddCell().SetValue(o.Address.City)
					row.AddCell().SetValue(o.Address.Phone)
				}
			}
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
