package admin

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bookings"

var exportHeaders = []string{
	"BookingNumber", "Status", "RoomNumber", "GuestName", "GuestEmail",
	"CheckIn", "CheckOut", "Nights", "Adults", "Children",
	"Subtotal", "Taxes", "Discount", "Total",
	"PaymentMethod", "PaymentStatus", "RefundStatus", "CreatedAt",
}

// WriteBookingsXLSX renders rows as a single-sheet workbook.
func WriteBookingsXLSX(w io.Writer, rows []ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return err
		}
	}

	for i, r := range rows {
		b := r.Booking
		guest := b.GuestDetails.PrimaryGuest
		values := []interface{}{
			b.BookingNumber,
			string(b.Status),
			r.RoomNumber,
			guest.FirstName + " " + guest.LastName,
			guest.Email,
			b.CheckIn.Format("2006-01-02"),
			b.CheckOut.Format("2006-01-02"),
			b.Pricing.Nights,
			b.Guests.Adults,
			b.Guests.Children,
			b.Pricing.Subtotal,
			b.Pricing.Taxes,
			b.Pricing.Discount,
			b.Pricing.Total,
			string(b.Payment.Method),
			string(b.Payment.Status),
			string(b.Cancellation.RefundStatus),
			b.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return err
		}
	}

	return f.Write(w)
}
