package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
)

// FeeCatalogRepository owns fee structure and feeding fee rate persistence.
// Create calls must be atomic per cohort key: the store's composite unique
// indexes guarantee at most one catalog entry per key even under concurrent
// issuance, surfacing races as duplicate-key errors.
type FeeCatalogRepository interface {
	// Fee structures (per class, term, year)
	GetFeeStructure(ctx context.Context, classID uuid.UUID, year string, term int) (*entity.FeeStructure, error)
	GetFeeStructureByID(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error)
	CreateFeeStructure(ctx context.Context, fs *entity.FeeStructure) error
	UpdateFeeStructure(ctx context.Context, fs *entity.FeeStructure) error
	// DeleteFeeStructure removes the structure and every student fee and
	// payment that references it, in one transaction.
	DeleteFeeStructure(ctx context.Context, id uuid.UUID) error
	ListFeeStructures(ctx context.Context, params *FeeStructureFilterParams) ([]entity.FeeStructure, error)

	// Feeding fee rates (per term, year; not class-scoped)
	GetFeedingRate(ctx context.Context, year string, term int) (*entity.FeedingFeeRate, error)
	GetFeedingRateByID(ctx context.Context, id uuid.UUID) (*entity.FeedingFeeRate, error)
	CreateFeedingRate(ctx context.Context, rate *entity.FeedingFeeRate) error
	UpdateFeedingRate(ctx context.Context, rate *entity.FeedingFeeRate) error
	// DeleteFeedingRate removes the rate and its dependent student records,
	// supporting the delete-and-recreate flow.
	DeleteFeedingRate(ctx context.Context, id uuid.UUID) error
	ListFeedingRates(ctx context.Context, year string) ([]entity.FeedingFeeRate, error)
}

// FeeStructureFilterParams contains filtering parameters for catalog queries
type FeeStructureFilterParams struct {
	ClassID      *uuid.UUID
	AcademicYear string
	Term         *int
}
