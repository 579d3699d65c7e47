package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateReceiptNumber generates a unique receipt number
func GenerateReceiptNumber() string {
	return "RCT-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateAdmissionNumber generates a unique student admission number
func GenerateAdmissionNumber(year string) string {
	return "ADM-" + year + "-" + strings.ToUpper(uuid.New().String()[:6])
}
