package donation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// receiptNumber is stable for a donation, so regenerating the PDF
// never produces a different reference.
func receiptNumber(d *DonationWithDonor) string {
	return fmt.Sprintf("ANJ-%d-%06d", d.CreatedAt.Year(), d.ID)
}

// renderReceipt builds the donation receipt PDF: letterhead, donor
// block, line-item table, totals and a payment-status badge.
func (s *service) renderReceipt(d *DonationWithDonor) ([]byte, string, error) {
	var items []LineItem
	if len(d.Items) > 0 {
		if err := json.Unmarshal(d.Items, &items); err != nil {
			return nil, "", fmt.Errorf("failed to decode donation items: %w", err)
		}
	}

	number := receiptNumber(d)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Letterhead
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "Anjuman Committee", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Donation Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(6)

	// Receipt metadata and donor block
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 6, "Receipt No:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(60, 6, number, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Date:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	date := d.CreatedAt
	if d.CompletedAt != nil {
		date = *d.CompletedAt
	}
	pdf.CellFormat(0, 6, date.Format("02 Jan 2006"), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 6, "Donor:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(60, 6, d.DonorName, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Khandan:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, d.KhandanName, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 6, "Transaction ID:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(60, 6, d.TransactionID, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Method:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, d.Method, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Line-item table
	pdf.SetFont("Arial", "B", 10)
	headers := []string{"#", "Category", "Qty", "Rate", "Amount"}
	widths := []float64{12, 88, 20, 30, 40}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for i, item := range items {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, item.CategoryName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprint(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", item.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	// Totals
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 6, "Subtotal", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", d.Amount), "1", 1, "R", false, 0, "")
	if d.CourierCharge > 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 6, "Courier Charge", "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", d.CourierCharge), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 7, fmt.Sprintf("Total (%s)", d.Currency), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 7, fmt.Sprintf("%.2f", d.TotalAmount), "1", 1, "R", false, 0, "")
	pdf.Ln(8)

	// Payment-status badge
	switch d.Status {
	case StatusCompleted:
		pdf.SetFillColor(46, 125, 50)
	case StatusFailed:
		pdf.SetFillColor(198, 40, 40)
	default:
		pdf.SetFillColor(245, 127, 23)
	}
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 8, fmt.Sprintf("  %s  ", d.Status), "", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 5, "This is a computer-generated receipt and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), number, nil
}
