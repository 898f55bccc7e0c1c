package usecase

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"trip-booking/internal/data/entity"
	"trip-booking/pkg/utils"

	"github.com/phpdave11/gofpdf"
)

// Receipt is a rendered PDF ready to be streamed to the client.
type Receipt struct {
	Number   string
	Filename string
	Content  []byte
}

func buildReceiptPDF(d *entity.BookingWithTrip, issuedAt time.Time) (*Receipt, error) {
	number := utils.GenerateReceiptNumber(d.ID, issuedAt)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt "+number, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Receipt No : "+number)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+issuedAt.UTC().Format("2006-01-02 15:04")+" UTC")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Traveler:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name  : %s", safe(d.Traveler.Name, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Phone : %s", safe(d.Traveler.Phone, "-")))
	pdf.Ln(10)

	desc := fmt.Sprintf("Trip %s -> %s on %s at %s, %d seat(s)",
		safe(d.Trip.Origin, "-"), safe(d.Trip.Destination, "-"),
		d.Trip.Date.Format("2006-01-02"), safe(d.Trip.Time, "-"),
		d.SeatsBooked,
	)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Price per seat : "+formatAmount(d.Trip.Price))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Payment method : "+safe(deref(d.PaymentMethod), "-"))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Transaction ID : "+safe(deref(d.TransactionID), "-"))
	pdf.Ln(6)
	if d.ConfirmedAt != nil {
		pdf.Cell(0, 6, "Confirmed at   : "+d.ConfirmedAt.UTC().Format("2006-01-02 15:04")+" UTC")
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total paid: "+formatAmount(d.AmountPaid))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Booking %s, status %s.", d.ID.String(), d.Status), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return &Receipt{
		Number:   number,
		Filename: number + ".pdf",
		Content:  buf.Bytes(),
	}, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
