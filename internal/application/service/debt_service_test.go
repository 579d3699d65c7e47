package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/internal/domain/enum"
	"github.com/sekyere/schoolfees-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type debtFixture struct {
	svc         *DebtService
	studentFees *fakeStudentFeeRepo
	feedingFees *fakeFeedingFeeRepo
	roster      *fakeRoster
}

func newDebtFixture() *debtFixture {
	studentFees := newFakeStudentFeeRepo()
	feedingFees := newFakeFeedingFeeRepo()
	roster := &fakeRoster{}
	return &debtFixture{
		svc:         NewDebtService(studentFees, feedingFees, roster),
		studentFees: studentFees,
		feedingFees: feedingFees,
		roster:      roster,
	}
}

func (f *debtFixture) seedClass(name string) entity.Class {
	class := entity.Class{ID: uuid.New(), Name: name, IsActive: true}
	f.roster.classes = append(f.roster.classes, class)
	return class
}

func (f *debtFixture) seedStudentFee(student entity.Student, due, paid int64, dueDate time.Time) {
	f.studentFees.fees = append(f.studentFees.fees, &entity.StudentFee{
		ID:             uuid.New(),
		StudentID:      student.ID,
		FeeStructureID: uuid.New(),
		AmountDue:      due,
		AmountPaid:     paid,
		DueDate:        dueDate,
		Student:        student,
	})
}

func TestSchoolFeeOwersAggregatesPerStudent(t *testing.T) {
	f := newDebtFixture()
	class := f.seedClass("Primary 1")
	future := time.Now().AddDate(0, 1, 0)

	ama := entity.Student{ID: uuid.New(), FirstName: "Ama", LastName: "Mensah", ClassID: class.ID, IsActive: true}
	kofi := entity.Student{ID: uuid.New(), FirstName: "Kofi", LastName: "Owusu", ClassID: class.ID, IsActive: true}

	// Ama owes on two records, Kofi has settled his.
	f.seedStudentFee(ama, 2000, 0, future)
	f.seedStudentFee(ama, 3000, 0, future)
	f.seedStudentFee(kofi, 5000, 5000, future)

	summaries, err := f.svc.SchoolFeeOwers(context.Background(), class.ID)
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	summary := summaries[0]
	assert.Equal(t, ama.ID, summary.StudentID)
	assert.Equal(t, "Ama Mensah", summary.StudentName)
	assert.Equal(t, "Primary 1", summary.ClassName)
	assert.Equal(t, 2, summary.RecordCount)
	assert.Equal(t, int64(5000), summary.TotalBalance)
	assert.Equal(t, enum.FeeStatusPending, summary.Status)
}

func TestSchoolFeeOwersCarriesMostSevereStatus(t *testing.T) {
	f := newDebtFixture()
	class := f.seedClass("Primary 2")

	esi := entity.Student{ID: uuid.New(), FirstName: "Esi", LastName: "Appiah", ClassID: class.ID, IsActive: true}

	// One record partially paid and still open, one past its due date.
	f.seedStudentFee(esi, 4000, 1000, time.Now().AddDate(0, 1, 0))
	f.seedStudentFee(esi, 3000, 0, time.Now().AddDate(0, 0, -7))

	summaries, err := f.svc.SchoolFeeOwers(context.Background(), class.ID)
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	assert.Equal(t, enum.FeeStatusOverdue, summaries[0].Status)
	assert.Equal(t, int64(6000), summaries[0].TotalBalance)
}

func TestSchoolFeeOwersSortsByStudentName(t *testing.T) {
	f := newDebtFixture()
	class := f.seedClass("Primary 3")
	future := time.Now().AddDate(0, 1, 0)

	yaw := entity.Student{ID: uuid.New(), FirstName: "Yaw", LastName: "Agyeman", ClassID: class.ID, IsActive: true}
	abena := entity.Student{ID: uuid.New(), FirstName: "Abena", LastName: "Boateng", ClassID: class.ID, IsActive: true}

	f.seedStudentFee(yaw, 1000, 0, future)
	f.seedStudentFee(abena, 1000, 0, future)

	summaries, err := f.svc.SchoolFeeOwers(context.Background(), class.ID)
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, "Abena Boateng", summaries[0].StudentName)
	assert.Equal(t, "Yaw Agyeman", summaries[1].StudentName)
}

func TestSchoolFeeOwersUnknownClass(t *testing.T) {
	f := newDebtFixture()

	_, err := f.svc.SchoolFeeOwers(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestFeedingFeeOwersClassFilter(t *testing.T) {
	f := newDebtFixture()
	classA := f.seedClass("Primary 1")
	classB := f.seedClass("Primary 2")
	future := time.Now().AddDate(0, 1, 0)

	ama := entity.Student{ID: uuid.New(), FirstName: "Ama", LastName: "Mensah", ClassID: classA.ID, Class: classA, IsActive: true}
	kofi := entity.Student{ID: uuid.New(), FirstName: "Kofi", LastName: "Owusu", ClassID: classB.ID, Class: classB, IsActive: true}

	rateID := uuid.New()
	f.feedingFees.fees = append(f.feedingFees.fees,
		&entity.StudentFeedingFee{ID: uuid.New(), StudentID: ama.ID, FeedingFeeID: rateID, AmountDue: 5000, DueDate: future, Student: ama},
		&entity.StudentFeedingFee{ID: uuid.New(), StudentID: kofi.ID, FeedingFeeID: rateID, AmountDue: 5000, AmountPaid: 2000, DueDate: future, Student: kofi},
	)

	all, err := f.svc.FeedingFeeOwers(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyB, err := f.svc.FeedingFeeOwers(context.Background(), &classB.ID)
	require.NoError(t, err)
	require.Len(t, onlyB, 1)
	assert.Equal(t, kofi.ID, onlyB[0].StudentID)
	assert.Equal(t, int64(3000), onlyB[0].TotalBalance)
	assert.Equal(t, enum.FeeStatusPartial, onlyB[0].Status)
}
