package service

import (
	"fmt"

	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/pkg/printer"
)

// FormatFeeReceipt converts a FeeReceipt into ESC/POS bytes.
func FormatFeeReceipt(r *entity.FeeReceipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.SchoolName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Receipt info
	doc.KeyValue("Receipt:", r.ReceiptNumber).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	doc.KeyValue("Student:", r.StudentName)
	if r.ClassName != "" {
		doc.KeyValue("Class:", r.ClassName)
	}
	if r.Method != "" {
		doc.KeyValue("Payment:", r.Method)
	}

	doc.Separator('-')

	doc.Text(r.Description)

	doc.Separator('-')

	// Totals
	doc.SetBold(true).
		KeyValue("PAID:", fmt.Sprintf("%.2f", r.Amount)).
		SetBold(false)
	doc.KeyValue("Total Due:", fmt.Sprintf("%.2f", r.TotalDue)).
		KeyValue("Total Paid:", fmt.Sprintf("%.2f", r.TotalPaid)).
		KeyValue("Balance:", fmt.Sprintf("%.2f", r.Balance))

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
