package entity

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/enum"
)

// CohortKey identifies a billing cohort: the group of students billed
// together under one catalog entry. School fees are scoped to a class;
// feeding fees are global, with a zero ScopeID.
type CohortKey struct {
	ScopeType    enum.FeeScope `json:"scope_type"`
	ScopeID      uuid.UUID     `json:"scope_id,omitempty"`
	AcademicYear string        `json:"academic_year"`
	Term         int           `json:"term"`
}

// ClassCohort builds the key for a class's termly school fees.
func ClassCohort(classID uuid.UUID, year string, term int) CohortKey {
	return CohortKey{
		ScopeType:    enum.FeeScopeClass,
		ScopeID:      classID,
		AcademicYear: year,
		Term:         term,
	}
}

// GlobalCohort builds the key for a termly feeding fee.
func GlobalCohort(year string, term int) CohortKey {
	return CohortKey{
		ScopeType:    enum.FeeScopeGlobal,
		AcademicYear: year,
		Term:         term,
	}
}

func (k CohortKey) String() string {
	if k.ScopeType == enum.FeeScopeClass {
		return fmt.Sprintf("class:%s/%s/T%d", k.ScopeID, k.AcademicYear, k.Term)
	}
	return fmt.Sprintf("global:%s/T%d", k.AcademicYear, k.Term)
}

// FeeComponents holds the termly fee breakdown in cents.
type FeeComponents struct {
	Tuition       int64 `json:"tuition"`
	Library       int64 `json:"library"`
	Lab           int64 `json:"lab"`
	Sports        int64 `json:"sports"`
	Transport     int64 `json:"transport"`
	Miscellaneous int64 `json:"miscellaneous"`
}

// Total sums all components.
func (c FeeComponents) Total() int64 {
	return c.Tuition + c.Library + c.Lab + c.Sports + c.Transport + c.Miscellaneous
}

// HasNegative reports whether any component is below zero.
func (c FeeComponents) HasNegative() bool {
	return c.Tuition < 0 || c.Library < 0 || c.Lab < 0 ||
		c.Sports < 0 || c.Transport < 0 || c.Miscellaneous < 0
}
