package repository

import (
	"context"
)

// CollectionTotals aggregates billed versus collected amounts in cents.
type CollectionTotals struct {
	Billed    int64 `json:"-"`
	Collected int64 `json:"-"`
	Records   int64 `json:"records"`
}

// TermCollection breaks collection totals down per academic term.
type TermCollection struct {
	AcademicYear string `json:"academic_year"`
	Term         int    `json:"term"`
	Billed       int64  `json:"-"`
	Collected    int64  `json:"-"`
}

// DashboardRepository answers the aggregate SUM queries behind the fees
// dashboard. Read-only.
type DashboardRepository interface {
	SchoolFeeTotals(ctx context.Context) (*CollectionTotals, error)
	FeedingFeeTotals(ctx context.Context) (*CollectionTotals, error)
	CollectionByTerm(ctx context.Context, year string) ([]TermCollection, error)
}
