package booking

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/atifsayed22/bookit/domain"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// VoucherInfo is what the voucher prints besides the reservation itself.
type VoucherInfo struct {
	AgencyName  string
	AgencyPhone string
	AgencyEmail string
	VerifyURL   string
}

// GenerateVoucherPDF renders a single-page A4 voucher with a QR code that
// points at VerifyURL.
func GenerateVoucherPDF(r *domain.Reservation, info VoucherInfo) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	pdf.SetAutoPageBreak(false, 0)

	// --- Header ---
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(0, 15, "BOOKING VOUCHER")
	pdf.Ln(14)
	if info.AgencyName != "" {
		pdf.SetFont("Helvetica", "", 13)
		pdf.Cell(0, 8, info.AgencyName)
		pdf.Ln(10)
	}

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(8)

	// --- Summary + QR ---
	yStart := pdf.GetY()
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(15, yStart, 120, 55, "F")

	pdf.SetXY(20, yStart+7)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "RESERVATION")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		"Reservation: " + r.ReservationID,
		"Guest: " + r.CustomerName,
		"Package: " + r.PackageName,
		"When: " + when(r),
		fmt.Sprintf("Total: %.2f", r.TotalPrice),
	} {
		pdf.SetX(20)
		pdf.Cell(0, 8, line)
		pdf.Ln(6)
	}

	if info.VerifyURL != "" {
		qrBytes, err := qrcode.Encode(info.VerifyURL, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("failed to encode voucher QR: %w", err)
		}
		pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qrBytes))
		pdf.ImageOptions("qr", 145, yStart+5, 45, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")
	}

	pdf.SetY(yStart + 63)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, "Show this QR code to the agency on arrival.")
	pdf.Ln(10)

	// --- Pricing ---
	drawSectionTitle(pdf, "PRICING")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Subtotal: %.2f", r.Subtotal))
	pdf.Ln(6)
	if r.PromoApplied {
		pdf.Cell(0, 8, fmt.Sprintf("Promo %s: -%.2f", r.PromoCode, r.Discount))
		pdf.Ln(6)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", r.TotalPrice))
	pdf.Ln(10)

	// --- Travelers ---
	if len(r.Travelers) > 0 {
		drawSectionTitle(pdf, "TRAVELERS")
		pdf.SetFont("Helvetica", "", 12)
		maxTravelers := 8 // single-page fit
		for i, t := range r.Travelers {
			if i >= maxTravelers {
				pdf.Cell(0, 8, fmt.Sprintf("... and %d more travelers", len(r.Travelers)-maxTravelers))
				pdf.Ln(6)
				break
			}
			name := t.Name
			if name == "" {
				name = "(name to be provided)"
			}
			pdf.Cell(0, 8, fmt.Sprintf("%d. %s", i+1, name))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	// --- Notes ---
	if notes := strings.TrimSpace(r.AgencyNotes); notes != "" {
		drawSectionTitle(pdf, "NOTES FROM THE AGENCY")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 7, notes, "", "", false)
	}

	// --- Footer ---
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(15, 285, 195, 285)
	pdf.SetY(288)
	pdf.SetFont("Helvetica", "I", 10)
	contact := strings.Trim(strings.Join([]string{info.AgencyPhone, info.AgencyEmail}, " | "), " |")
	pdf.CellFormat(0, 8, contact, "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render voucher: %w", err)
	}
	return buf.Bytes(), nil
}

func when(r *domain.Reservation) string {
	if r.Kind == domain.KindSlot {
		return fmt.Sprintf("%s %s-%s", r.Date, r.StartTime, r.EndTime)
	}
	if r.DurationDays > 0 {
		return fmt.Sprintf("departs %s, %d days, %d travelers", r.Date, r.DurationDays, r.NumberOfTravelers)
	}
	return fmt.Sprintf("departs %s, %d travelers", r.Date, r.NumberOfTravelers)
}

func drawSectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 9, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
}
