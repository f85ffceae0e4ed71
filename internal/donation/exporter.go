package donation

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// ExportDonations renders the filtered donation list in the requested
// format. Pagination is bypassed so the export covers every match.
func (s *service) ExportDonations(ctx context.Context, filters DonationFilters, format string) ([]byte, string, error) {
	filters.Page = 1
	filters.Limit = 100000

	donations, _, err := s.repo.ListWithFilters(ctx, filters)
	if err != nil {
		return nil, "", err
	}

	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := exportDonationsCSV(donations)
		if err != nil {
			return nil, "", err
		}
		return data, fmt.Sprintf("donations_%s.csv", timestamp), nil

	case FormatExcel:
		data, err := exportDonationsExcel(donations)
		if err != nil {
			return nil, "", err
		}
		return data, fmt.Sprintf("donations_%s.xlsx", timestamp), nil

	case FormatPDF:
		data, err := exportDonationsPDF(donations)
		if err != nil {
			return nil, "", err
		}
		return data, fmt.Sprintf("donations_%s.pdf", timestamp), nil

	default:
		return nil, "", fmt.Errorf("unsupported export format: %s", format)
	}
}

var exportHeaders = []string{"ID", "Donor Name", "Khandan", "Donor Email", "Amount", "Courier", "Total", "Method", "Status", "Transaction ID", "Created At"}

func exportDonationsCSV(donations []DonationWithDonor) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, err
	}

	for _, d := range donations {
		record := []string{
			strconv.FormatUint(uint64(d.ID), 10),
			d.DonorName,
			d.KhandanName,
			d.DonorEmail,
			fmt.Sprintf("%.2f", d.Amount),
			fmt.Sprintf("%.2f", d.CourierCharge),
			fmt.Sprintf("%.2f", d.TotalAmount),
			d.Method,
			d.Status,
			d.TransactionID,
			d.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportDonationsExcel(donations []DonationWithDonor) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Donations"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, header)
	}

	for i, d := range donations {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), d.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), d.DonorName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), d.KhandanName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), d.DonorEmail)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), d.Amount)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), d.CourierCharge)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), d.TotalAmount)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), d.Method)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), d.Status)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), d.TransactionID)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), d.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportDonationsPDF(donations []DonationWithDonor) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Donations Report")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{12, 40, 35, 50, 22, 22, 18, 20, 40, 25}
	headers := []string{"ID", "Donor Name", "Khandan", "Donor Email", "Amount", "Total", "Method", "Status", "Transaction ID", "Date"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, d := range donations {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(d.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, d.DonorName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, d.KhandanName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, d.DonorEmail, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", d.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprintf("%.2f", d.TotalAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 6, d.Method, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[7], 6, d.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[8], 6, d.TransactionID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[9], 6, d.CreatedAt.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
