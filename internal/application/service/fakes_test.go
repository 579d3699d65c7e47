package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/internal/domain/repository"
	"github.com/sekyere/schoolfees-api/pkg/pagination"
	"gorm.io/gorm"
)

// In-memory fakes backing the service tests. They enforce the same unique
// keys as the real store and surface violations as gorm.ErrDuplicatedKey,
// which is what the postgres layer reports with error translation on.

type fakeCatalogRepo struct {
	structures map[string]*entity.FeeStructure
	rates      map[string]*entity.FeedingFeeRate

	// Mirrors the store's cascade: deleting a rate removes its ledger rows.
	studentFeedingFees *fakeFeedingFeeRepo

	structureCreateErr error // injected once, consumed by the next create
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		structures: make(map[string]*entity.FeeStructure),
		rates:      make(map[string]*entity.FeedingFeeRate),
	}
}

// The fakes index catalog entries by the same cohort key the unique
// indexes encode, so key collisions behave like the real store.
func structureKey(classID uuid.UUID, year string, term int) string {
	return entity.ClassCohort(classID, year, term).String()
}

func rateKey(year string, term int) string {
	return entity.GlobalCohort(year, term).String()
}

func (r *fakeCatalogRepo) GetFeeStructure(ctx context.Context, classID uuid.UUID, year string, term int) (*entity.FeeStructure, error) {
	fs, ok := r.structures[structureKey(classID, year, term)]
	if !ok {
		return nil, nil
	}
	copied := *fs
	return &copied, nil
}

func (r *fakeCatalogRepo) GetFeeStructureByID(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	for _, fs := range r.structures {
		if fs.ID == id {
			copied := *fs
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCatalogRepo) CreateFeeStructure(ctx context.Context, fs *entity.FeeStructure) error {
	if err := r.structureCreateErr; err != nil {
		r.structureCreateErr = nil
		return err
	}
	key := fs.Cohort().String()
	if _, exists := r.structures[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	if fs.ID == uuid.Nil {
		fs.ID = uuid.New()
	}
	stored := *fs
	r.structures[key] = &stored
	return nil
}

func (r *fakeCatalogRepo) UpdateFeeStructure(ctx context.Context, fs *entity.FeeStructure) error {
	stored := *fs
	r.structures[fs.Cohort().String()] = &stored
	return nil
}

func (r *fakeCatalogRepo) DeleteFeeStructure(ctx context.Context, id uuid.UUID) error {
	for key, fs := range r.structures {
		if fs.ID == id {
			delete(r.structures, key)
			return nil
		}
	}
	return nil
}

func (r *fakeCatalogRepo) ListFeeStructures(ctx context.Context, params *repository.FeeStructureFilterParams) ([]entity.FeeStructure, error) {
	var out []entity.FeeStructure
	for _, fs := range r.structures {
		out = append(out, *fs)
	}
	return out, nil
}

func (r *fakeCatalogRepo) GetFeedingRate(ctx context.Context, year string, term int) (*entity.FeedingFeeRate, error) {
	rate, ok := r.rates[rateKey(year, term)]
	if !ok {
		return nil, nil
	}
	copied := *rate
	return &copied, nil
}

func (r *fakeCatalogRepo) GetFeedingRateByID(ctx context.Context, id uuid.UUID) (*entity.FeedingFeeRate, error) {
	for _, rate := range r.rates {
		if rate.ID == id {
			copied := *rate
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCatalogRepo) CreateFeedingRate(ctx context.Context, rate *entity.FeedingFeeRate) error {
	key := rate.Cohort().String()
	if _, exists := r.rates[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	if rate.ID == uuid.Nil {
		rate.ID = uuid.New()
	}
	stored := *rate
	r.rates[key] = &stored
	return nil
}

func (r *fakeCatalogRepo) UpdateFeedingRate(ctx context.Context, rate *entity.FeedingFeeRate) error {
	stored := *rate
	r.rates[rate.Cohort().String()] = &stored
	return nil
}

func (r *fakeCatalogRepo) DeleteFeedingRate(ctx context.Context, id uuid.UUID) error {
	for key, rate := range r.rates {
		if rate.ID == id {
			delete(r.rates, key)
			if r.studentFeedingFees != nil {
				kept := r.studentFeedingFees.fees[:0]
				for _, fee := range r.studentFeedingFees.fees {
					if fee.FeedingFeeID != id {
						kept = append(kept, fee)
					}
				}
				r.studentFeedingFees.fees = kept
			}
			return nil
		}
	}
	return nil
}

func (r *fakeCatalogRepo) ListFeedingRates(ctx context.Context, year string) ([]entity.FeedingFeeRate, error) {
	var out []entity.FeedingFeeRate
	for _, rate := range r.rates {
		if year == "" || rate.AcademicYear == year {
			out = append(out, *rate)
		}
	}
	return out, nil
}

type fakeStudentFeeRepo struct {
	fees []*entity.StudentFee

	// createErrs injects a failure for specific students during fan-out.
	createErrs map[uuid.UUID]error
	repriced   int
}

func newFakeStudentFeeRepo() *fakeStudentFeeRepo {
	return &fakeStudentFeeRepo{createErrs: make(map[uuid.UUID]error)}
}

func (r *fakeStudentFeeRepo) GetByStudentAndStructure(ctx context.Context, studentID, structureID uuid.UUID) (*entity.StudentFee, error) {
	for _, fee := range r.fees {
		if fee.StudentID == studentID && fee.FeeStructureID == structureID {
			copied := *fee
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeStudentFeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.StudentFee, error) {
	for _, fee := range r.fees {
		if fee.ID == id {
			copied := *fee
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeStudentFeeRepo) Create(ctx context.Context, fee *entity.StudentFee) error {
	if err, ok := r.createErrs[fee.StudentID]; ok {
		return err
	}
	for _, existing := range r.fees {
		if existing.StudentID == fee.StudentID && existing.FeeStructureID == fee.FeeStructureID {
			return gorm.ErrDuplicatedKey
		}
	}
	if fee.ID == uuid.Nil {
		fee.ID = uuid.New()
	}
	stored := *fee
	r.fees = append(r.fees, &stored)
	return nil
}

func (r *fakeStudentFeeRepo) Reprice(ctx context.Context, id uuid.UUID, amountDue int64, dueDate time.Time) error {
	for _, fee := range r.fees {
		if fee.ID == id {
			fee.AmountDue = amountDue
			fee.DueDate = dueDate
			r.repriced++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeStudentFeeRepo) List(ctx context.Context, params *repository.StudentFeeFilterParams) ([]entity.StudentFee, int64, error) {
	var out []entity.StudentFee
	for _, fee := range r.fees {
		if params.StructureID != nil && fee.FeeStructureID != *params.StructureID {
			continue
		}
		if params.StudentID != nil && fee.StudentID != *params.StudentID {
			continue
		}
		if params.ClassID != nil && fee.Student.ClassID != *params.ClassID {
			continue
		}
		out = append(out, *fee)
	}
	return out, int64(len(out)), nil
}

func (r *fakeStudentFeeRepo) ListOutstandingByClass(ctx context.Context, classID uuid.UUID) ([]entity.StudentFee, error) {
	var out []entity.StudentFee
	for _, fee := range r.fees {
		if fee.Student.ClassID != classID {
			continue
		}
		if fee.AmountDue <= fee.AmountPaid+fee.Discount {
			continue
		}
		out = append(out, *fee)
	}
	return out, nil
}

func (r *fakeStudentFeeRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.StudentFee, error) {
	var out []entity.StudentFee
	for _, fee := range r.fees {
		if fee.StudentID == studentID {
			out = append(out, *fee)
		}
	}
	return out, nil
}

// get returns the stored record, not a copy, for assertions on mutations.
func (r *fakeStudentFeeRepo) get(studentID, structureID uuid.UUID) *entity.StudentFee {
	for _, fee := range r.fees {
		if fee.StudentID == studentID && fee.FeeStructureID == structureID {
			return fee
		}
	}
	return nil
}

type fakeFeedingFeeRepo struct {
	fees []*entity.StudentFeedingFee
}

func newFakeFeedingFeeRepo() *fakeFeedingFeeRepo {
	return &fakeFeedingFeeRepo{}
}

func (r *fakeFeedingFeeRepo) GetByStudentAndRate(ctx context.Context, studentID, rateID uuid.UUID) (*entity.StudentFeedingFee, error) {
	for _, fee := range r.fees {
		if fee.StudentID == studentID && fee.FeedingFeeID == rateID {
			copied := *fee
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeFeedingFeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.StudentFeedingFee, error) {
	for _, fee := range r.fees {
		if fee.ID == id {
			copied := *fee
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeFeedingFeeRepo) Create(ctx context.Context, fee *entity.StudentFeedingFee) error {
	for _, existing := range r.fees {
		if existing.StudentID == fee.StudentID && existing.FeedingFeeID == fee.FeedingFeeID {
			return gorm.ErrDuplicatedKey
		}
	}
	if fee.ID == uuid.Nil {
		fee.ID = uuid.New()
	}
	stored := *fee
	r.fees = append(r.fees, &stored)
	return nil
}

func (r *fakeFeedingFeeRepo) Reprice(ctx context.Context, id uuid.UUID, amountDue int64) error {
	for _, fee := range r.fees {
		if fee.ID == id {
			fee.AmountDue = amountDue
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeFeedingFeeRepo) ListByRate(ctx context.Context, rateID uuid.UUID, params *pagination.PaginationParams) ([]entity.StudentFeedingFee, int64, error) {
	var out []entity.StudentFeedingFee
	for _, fee := range r.fees {
		if fee.FeedingFeeID == rateID {
			out = append(out, *fee)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeFeedingFeeRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.StudentFeedingFee, error) {
	var out []entity.StudentFeedingFee
	for _, fee := range r.fees {
		if fee.StudentID == studentID {
			out = append(out, *fee)
		}
	}
	return out, nil
}

func (r *fakeFeedingFeeRepo) ListOutstanding(ctx context.Context) ([]entity.StudentFeedingFee, error) {
	var out []entity.StudentFeedingFee
	for _, fee := range r.fees {
		if fee.AmountDue <= fee.AmountPaid {
			continue
		}
		out = append(out, *fee)
	}
	return out, nil
}

func (r *fakeFeedingFeeRepo) get(studentID, rateID uuid.UUID) *entity.StudentFeedingFee {
	for _, fee := range r.fees {
		if fee.StudentID == studentID && fee.FeedingFeeID == rateID {
			return fee
		}
	}
	return nil
}

// fakePaymentRepo mirrors the store transaction: the receipt uniqueness
// check happens before any mutation, so a rejected payment leaves the owning
// record untouched.
type fakePaymentRepo struct {
	studentFees *fakeStudentFeeRepo
	feedingFees *fakeFeedingFeeRepo

	feePayments     []entity.FeePayment
	feedingPayments []entity.FeedingFeePayment
	receipts        map[string]bool
}

func newFakePaymentRepo(studentFees *fakeStudentFeeRepo, feedingFees *fakeFeedingFeeRepo) *fakePaymentRepo {
	return &fakePaymentRepo{
		studentFees: studentFees,
		feedingFees: feedingFees,
		receipts:    make(map[string]bool),
	}
}

func (r *fakePaymentRepo) RecordFeePayment(ctx context.Context, payment *entity.FeePayment) error {
	if r.receipts[payment.ReceiptNumber] {
		return gorm.ErrDuplicatedKey
	}
	for _, fee := range r.studentFees.fees {
		if fee.ID == payment.StudentFeeID {
			if payment.ID == uuid.Nil {
				payment.ID = uuid.New()
			}
			r.receipts[payment.ReceiptNumber] = true
			r.feePayments = append(r.feePayments, *payment)
			fee.AmountPaid += payment.Amount
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakePaymentRepo) RecordFeedingPayment(ctx context.Context, payment *entity.FeedingFeePayment) error {
	if r.receipts[payment.ReceiptNumber] {
		return gorm.ErrDuplicatedKey
	}
	for _, fee := range r.feedingFees.fees {
		if fee.ID == payment.StudentFeedingFeeID {
			if payment.ID == uuid.Nil {
				payment.ID = uuid.New()
			}
			r.receipts[payment.ReceiptNumber] = true
			r.feedingPayments = append(r.feedingPayments, *payment)
			fee.AmountPaid += payment.Amount
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakePaymentRepo) ListFeePayments(ctx context.Context, studentFeeID uuid.UUID) ([]entity.FeePayment, error) {
	var out []entity.FeePayment
	for _, p := range r.feePayments {
		if p.StudentFeeID == studentFeeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListFeedingPayments(ctx context.Context, studentFeedingFeeID uuid.UUID) ([]entity.FeedingFeePayment, error) {
	var out []entity.FeedingFeePayment
	for _, p := range r.feedingPayments {
		if p.StudentFeedingFeeID == studentFeedingFeeID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeRoster struct {
	classes  []entity.Class
	students []entity.Student
}

func (r *fakeRoster) ListActiveStudents(ctx context.Context, classID uuid.UUID) ([]entity.Student, error) {
	var out []entity.Student
	for _, s := range r.students {
		if s.ClassID == classID && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRoster) ListAllActiveStudents(ctx context.Context) ([]entity.Student, error) {
	var out []entity.Student
	for _, s := range r.students {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRoster) ListActiveClasses(ctx context.Context) ([]entity.Class, error) {
	var out []entity.Class
	for _, c := range r.classes {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeRoster) GetClass(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	for _, c := range r.classes {
		if c.ID == id {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRoster) GetStudent(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	for _, s := range r.students {
		if s.ID == id {
			copied := s
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeCalendar struct {
	terms []entity.AcademicTerm
}

func (c *fakeCalendar) ActiveTerms(ctx context.Context) ([]entity.AcademicTerm, error) {
	var out []entity.AcademicTerm
	for _, t := range c.terms {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (c *fakeCalendar) FindTerm(ctx context.Context, year string, term int) (*entity.AcademicTerm, error) {
	for _, t := range c.terms {
		if t.AcademicYear == year && t.Term == term {
			copied := t
			return &copied, nil
		}
	}
	return nil, nil
}
