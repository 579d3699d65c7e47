package enum

import (
	"encoding/json"
)

// FeeStatus represents the derived settlement state of a student ledger record.
// It is never stored; it is computed from amounts and due date at read time.
type FeeStatus int

const (
	FeeStatusPending FeeStatus = 0
	FeeStatusPartial FeeStatus = 1
	FeeStatusPaid    FeeStatus = 2
	FeeStatusOverdue FeeStatus = 3
)

func (s FeeStatus) String() string {
	return [...]string{"pending", "partial", "paid", "overdue"}[s]
}

// Severity orders statuses for debt aggregation: overdue > partial > pending.
// Paid records never reach the aggregator.
func (s FeeStatus) Severity() int {
	switch s {
	case FeeStatusOverdue:
		return 3
	case FeeStatusPartial:
		return 2
	case FeeStatusPending:
		return 1
	default:
		return 0
	}
}

func (s FeeStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *FeeStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = FeeStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = FeeStatusPending
	case "partial":
		*s = FeeStatusPartial
	case "paid":
		*s = FeeStatusPaid
	case "overdue":
		*s = FeeStatusOverdue
	}
	return nil
}

// ParseFeeStatus maps a query-string value to a status; ok is false for
// unknown values.
func ParseFeeStatus(str string) (FeeStatus, bool) {
	switch str {
	case "pending":
		return FeeStatusPending, true
	case "partial":
		return FeeStatusPartial, true
	case "paid":
		return FeeStatusPaid, true
	case "overdue":
		return FeeStatusOverdue, true
	}
	return FeeStatusPending, false
}
