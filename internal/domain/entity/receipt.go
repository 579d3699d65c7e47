package entity

// ReceiptHeader holds the school header printed at the top of a receipt.
type ReceiptHeader struct {
	SchoolName string `json:"school_name"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// FeeReceipt is a value object representing a printable fee payment receipt.
// It is NOT a database entity; it is composed from payment and ledger data
// at print time.
type FeeReceipt struct {
	Header        ReceiptHeader `json:"header"`
	ReceiptNumber string        `json:"receipt_number"`
	Date          string        `json:"date"`
	Cashier       string        `json:"cashier,omitempty"`
	StudentName   string        `json:"student_name"`
	ClassName     string        `json:"class_name,omitempty"`
	Description   string        `json:"description"` // e.g. "School Fees - Term 1, 2025/2026"
	Method        string        `json:"method"`
	Amount        float64       `json:"amount"`      // this payment
	TotalDue      float64       `json:"total_due"`   // amount due on the ledger record
	TotalPaid     float64       `json:"total_paid"`  // cumulative paid including this payment
	Balance       float64       `json:"balance"`     // clamped outstanding balance
}
