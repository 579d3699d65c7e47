package entity

import (
	"github.com/google/uuid"
)

// IssuanceOutcome classifies what a whole issuance run achieved.
type IssuanceOutcome string

const (
	// IssuanceOutcomeIssued means every targeted student record was written.
	IssuanceOutcomeIssued IssuanceOutcome = "issued"
	// IssuanceOutcomePartial means the run completed but some students failed.
	IssuanceOutcomePartial IssuanceOutcome = "issued_with_failures"
	// IssuanceOutcomeNotIssued means the run was rejected before any fan-out.
	IssuanceOutcomeNotIssued IssuanceOutcome = "not_issued"
)

// StudentIssuanceFailure records a single student whose ledger record could
// not be written during fan-out. Failures are collected, never raised.
type StudentIssuanceFailure struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"`
	Reason      string    `json:"reason"`
}

// ClassIssuance aggregates the fan-out result for one class.
type ClassIssuance struct {
	ClassID   uuid.UUID                `json:"class_id"`
	ClassName string                   `json:"class_name,omitempty"`
	Priced    bool                     `json:"priced"`    // catalog entry created or updated
	Created   int                      `json:"created"`   // new student fee records
	Updated   int                      `json:"updated"`   // re-priced existing records
	Unchanged int                      `json:"unchanged"` // already billed at this price
	Failed    int                      `json:"failed"`
	Failures  []StudentIssuanceFailure `json:"failures,omitempty"`
}

// IssuanceReport is the structured result of an issuance run. Callers inspect
// it instead of parsing log lines or alert strings.
type IssuanceReport struct {
	AcademicYear string          `json:"academic_year"`
	Term         int             `json:"term"`
	Classes      []ClassIssuance `json:"classes"`
}

// AddClass appends a per-class result to the report.
func (r *IssuanceReport) AddClass(c ClassIssuance) {
	r.Classes = append(r.Classes, c)
}

// TotalFailed counts individual student failures across all classes.
func (r *IssuanceReport) TotalFailed() int {
	total := 0
	for _, c := range r.Classes {
		total += c.Failed
	}
	return total
}

// TotalWritten counts ledger records created or updated across all classes.
func (r *IssuanceReport) TotalWritten() int {
	total := 0
	for _, c := range r.Classes {
		total += c.Created + c.Updated
	}
	return total
}

// Outcome lets a caller distinguish "fully issued", "issued with N failures"
// and "not issued" without inspecting individual classes.
func (r *IssuanceReport) Outcome() IssuanceOutcome {
	if len(r.Classes) == 0 {
		return IssuanceOutcomeNotIssued
	}
	if r.TotalFailed() > 0 {
		return IssuanceOutcomePartial
	}
	return IssuanceOutcomeIssued
}
