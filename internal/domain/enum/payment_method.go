package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a fee payment was made
type PaymentMethod int

const (
	PaymentMethodCash        PaymentMethod = 0
	PaymentMethodMobileMoney PaymentMethod = 1
	PaymentMethodBank        PaymentMethod = 2
	PaymentMethodCheque      PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	return [...]string{"cash", "mobile_money", "bank", "cheque"}[m]
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "cash":
		*m = PaymentMethodCash
	case "mobile_money":
		*m = PaymentMethodMobileMoney
	case "bank":
		*m = PaymentMethodBank
	case "cheque":
		*m = PaymentMethodCheque
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}

// ParsePaymentMethod maps a request value to a method; ok is false for
// unrecognised values.
func ParsePaymentMethod(str string) (PaymentMethod, bool) {
	switch str {
	case "cash":
		return PaymentMethodCash, true
	case "mobile_money":
		return PaymentMethodMobileMoney, true
	case "bank":
		return PaymentMethodBank, true
	case "cheque":
		return PaymentMethodCheque, true
	default:
		return PaymentMethodCash, false
	}
}
