package request

// RecordPaymentRequest represents a payment against one ledger record
type RecordPaymentRequest struct {
	LedgerRecordID string  `json:"ledger_record_id" binding:"required,uuid"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	PaymentDate    string  `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	ReceiptNumber  string  `json:"receipt_number" binding:"omitempty,max=100"`
	Method         string  `json:"method" binding:"required,oneof=cash mobile_money bank cheque"`
}
