// Package invoice projects a booking into a printable PDF. Rendering is a
// pure function of its input so the same booking always yields the same
// document.
package invoice

//go:generate go run go.uber.org/mock/mockgen -source=./invoice.go -destination=./mocks/invoice_mock.go -package=mocks

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"estate/shared/constant"
	"estate/shared/currency"
)

const (
	brandName    = "ESTATE"
	brandTagline = "Premium Property Rentals"
	footerNote   = "Thank you for choosing us. This is a computer generated invoice."
)

type Data struct {
	BookingID string
	Reference string

	BookingStatus string
	PaymentStatus string

	CheckInDate     time.Time
	CheckOutDate    time.Time
	DurationMonths  int
	Occupants       int
	SpecialRequests string

	MonthlyRent     float64
	SecurityDeposit float64
	DepositMonths   int
	TotalAmount     float64
	PaidAmount      float64

	PropertyName     string
	PropertyLocation string
	PropertyAddress  string
	PropertyType     string

	RenterName  string
	RenterEmail string
	RenterPhone string

	LandlordName  string
	LandlordEmail string

	IssuedAt time.Time
}

// Number is the human-facing invoice number: the booking reference when one
// exists, otherwise the tail of the storage key.
func (d *Data) Number() string {
	if d.Reference != constant.Empty {
		return d.Reference
	}

	id := d.BookingID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}

	return strings.ToUpper(id)
}

type Renderer interface {
	Render(data Data) ([]byte, error)
}

type rendererImpl struct{}

func New() Renderer {
	return &rendererImpl{}
}

func (r *rendererImpl) Render(data Data) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(data.IssuedAt)
	pdf.SetTitle(fmt.Sprintf("Booking Invoice %s", data.Number()), false)
	pdf.AddPage()

	r.header(pdf, data)
	r.parties(pdf, data)
	r.property(pdf, data)
	r.details(pdf, data)
	r.summary(pdf, data)

	if data.SpecialRequests != constant.Empty {
		r.specialRequests(pdf, data)
	}

	r.footer(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *rendererImpl) header(pdf *fpdf.Fpdf, data Data) {
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(100, 10, brandName, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(90, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(100, 5, brandTagline, "", 0, "L", false, 0, "")

	pdf.CellFormat(90, 5, fmt.Sprintf("Invoice No: %s", data.Number()), "", 1, "R", false, 0, "")
	pdf.CellFormat(100, 5, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(90, 5, fmt.Sprintf("Date: %s", data.IssuedAt.Format(constant.DisplayDateFormat)), "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetDrawColor(226, 232, 240)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(4)
}

func (r *rendererImpl) parties(pdf *fpdf.Fpdf, data Data) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(95, 6, "Billed To", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Booking", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(71, 85, 105)
	pdf.CellFormat(95, 5, data.RenterName, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 5, fmt.Sprintf("Reference: %s", data.Number()), "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 5, data.RenterEmail, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 5, fmt.Sprintf("Status: %s", strings.ToUpper(data.BookingStatus)), "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 5, data.RenterPhone, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 5, fmt.Sprintf("Landlord: %s", data.LandlordName), "", 1, "L", false, 0, "")

	pdf.Ln(5)
}

func (r *rendererImpl) property(pdf *fpdf.Fpdf, data Data) {
	pdf.SetFillColor(241, 245, 249)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(190, 7, "  Property", "", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(71, 85, 105)
	pdf.CellFormat(190, 6, "  "+data.PropertyName, "", 1, "L", true, 0, "")

	location := data.PropertyLocation
	if data.PropertyAddress != constant.Empty {
		location = fmt.Sprintf("%s, %s", data.PropertyAddress, data.PropertyLocation)
	}

	pdf.CellFormat(190, 6, fmt.Sprintf("  %s  |  %s", location, data.PropertyType), "", 1, "L", true, 0, "")
	pdf.Ln(5)
}

func (r *rendererImpl) details(pdf *fpdf.Fpdf, data Data) {
	rows := [][2]string{
		{"Check-in Date", data.CheckInDate.Format(constant.DisplayDateFormat)},
		{"Check-out Date", data.CheckOutDate.Format(constant.DisplayDateFormat)},
		{"Duration", fmt.Sprintf("%d month(s)", data.DurationMonths)},
		{"Occupants", fmt.Sprintf("%d", data.Occupants)},
		{"Monthly Rent", currency.Plain(data.MonthlyRent)},
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(190, 7, "Booking Details", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(71, 85, 105)

	for _, row := range rows {
		pdf.CellFormat(95, 6, row[0], "B", 0, "L", false, 0, "")
		pdf.CellFormat(95, 6, row[1], "B", 1, "R", false, 0, "")
	}

	pdf.Ln(5)
}

func (r *rendererImpl) summary(pdf *fpdf.Fpdf, data Data) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(190, 7, "Payment Summary", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(71, 85, 105)

	rent := data.MonthlyRent * float64(data.DurationMonths)
	pdf.CellFormat(95, 6, fmt.Sprintf("Rent (%d months)", data.DurationMonths), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, currency.Plain(rent), "", 1, "R", false, 0, "")

	pdf.CellFormat(95, 6, fmt.Sprintf("Security Deposit (%d months)", data.DepositMonths), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, currency.Plain(data.SecurityDeposit), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(95, 7, "Total Amount", "T", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, currency.Plain(data.TotalAmount), "T", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(71, 85, 105)
	pdf.CellFormat(95, 6, "Amount Paid", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, currency.Plain(data.PaidAmount), "", 1, "R", false, 0, "")

	pdf.CellFormat(95, 6, "Payment Status", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, strings.ToUpper(data.PaymentStatus), "", 1, "R", false, 0, "")

	pdf.Ln(5)
}

func (r *rendererImpl) specialRequests(pdf *fpdf.Fpdf, data Data) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(190, 7, "Special Requests", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(71, 85, 105)
	pdf.MultiCell(190, 5, data.SpecialRequests, "", "L", false)
	pdf.Ln(5)
}

func (r *rendererImpl) footer(pdf *fpdf.Fpdf) {
	pdf.SetY(-25)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(148, 163, 184)
	pdf.CellFormat(190, 5, footerNote, "", 1, "C", false, 0, "")
}
