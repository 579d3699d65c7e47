package entity

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/enum"
)

// StudentDebtSummary is the read model behind "who owes what": one row per
// student, balances summed across all their unpaid ledger records, carrying
// the most severe status present.
type StudentDebtSummary struct {
	StudentID    uuid.UUID      `json:"student_id"`
	StudentName  string         `json:"student_name"`
	ClassID      uuid.UUID      `json:"class_id,omitempty"`
	ClassName    string         `json:"class_name,omitempty"`
	RecordCount  int            `json:"record_count"`
	TotalBalance int64          `json:"-"` // Stored in cents, excluded from JSON
	Status       enum.FeeStatus `json:"status"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s StudentDebtSummary) MarshalJSON() ([]byte, error) {
	type Alias StudentDebtSummary
	return json.Marshal(&struct {
		Alias
		TotalBalance float64 `json:"total_balance"`
	}{
		Alias:        Alias(s),
		TotalBalance: float64(s.TotalBalance) / 100,
	})
}
