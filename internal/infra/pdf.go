package infra

// Receipt generation using go-pdf/fpdf.
// Produces a narrow thermal-receipt style page with:
//   - Business name header
//   - Order reference, channel and timestamp
//   - Item table (name, quantity, line total)
//   - Subtotal, packaging, delivery and tax lines
//   - Bold total and payment mode
//
// The document is returned as bytes; the handler streams it.

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"chopengine/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateReceiptPDF renders a receipt for a stored order. Timestamps are
// printed in loc.
func GenerateReceiptPDF(order *model.Order, businessName string, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}

	// 80mm roll; height grows with the item count.
	height := 110 + float64(len(order.Items))*5
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 80, Ht: height},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(false, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, tr(businessName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Order Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Order info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	ref := strings.ToUpper(order.ID.String()[:8])
	pdf.CellFormat(contentW, 5, "Order #"+ref, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, order.CreatedAt.In(loc).Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Channel: "+order.OrderType, "", 1, "L", false, 0, "")
	if order.CustomerName != "" {
		pdf.CellFormat(contentW, 4, tr("Customer: "+order.CustomerName), "", 1, "L", false, 0, "")
	}
	if order.Address != nil && *order.Address != "" {
		pdf.MultiCell(contentW, 4, tr("Deliver to: "+*order.Address), "", "L", false)
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range order.Items {
		name := item.Name
		if len([]rune(name)) > 24 {
			name = string([]rune(name)[:23]) + "."
		}
		line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		pdf.CellFormat(col1, 5, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, naira(line), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	amountRow := func(label string, v decimal.Decimal) {
		pdf.CellFormat(col1+col2, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, naira(v), "", 1, "R", false, 0, "")
	}
	amountRow("Subtotal:", order.Subtotal)
	if !order.PackagingCost.IsZero() {
		amountRow("Packaging:", order.PackagingCost)
	}
	if !order.DeliveryFee.IsZero() {
		amountRow("Delivery:", order.DeliveryFee)
	}
	amountRow("Tax:", order.Tax)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, naira(order.Total), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Paid by "+order.PaymentMode, "", 1, "L", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you for your patronage!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// naira formats an amount with the NGN prefix; the core fonts lack the ₦ glyph.
func naira(v decimal.Decimal) string {
	return "NGN " + v.StringFixed(2)
}
